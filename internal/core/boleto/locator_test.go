package boleto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanBlock(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  ACME\n  LTDA  ", "ACME / LTDA"},
		{"ACME\n\n\nLTDA", "ACME / LTDA"},
		{"A__B--C", "A B C"},
		{"ACME - LTDA", "ACME LTDA"},
		{"Rua   X,   10", "Rua X, 10"},
		{"   ", ""},
		{"---", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanBlock(tt.in), "input %q", tt.in)
	}
}

func TestBlockRule(t *testing.T) {
	rule, err := compileRule(KindText, Rule{
		Strategy: StrategyBlock,
		Match:    MatchFirst,
		Labels:   []string{"Cedente"},
		Stops:    []string{"CNPJ", "Vencimento"},
	})
	require.NoError(t, err)

	t.Run("stops at the earliest marker", func(t *testing.T) {
		got, ok := rule.locate("Cedente: ACME\nRua X\nVencimento 10/10/2024\nCNPJ 1")
		require.True(t, ok)
		assert.Equal(t, "ACME / Rua X", got)
	})

	t.Run("captures to the end without a marker", func(t *testing.T) {
		got, ok := rule.locate("cedente.\nFoo Bar\nRua Y")
		require.True(t, ok)
		assert.Equal(t, "Foo Bar / Rua Y", got)
	})

	t.Run("empty capture is a miss", func(t *testing.T) {
		_, ok := rule.locate("Cedente\n   \nCNPJ 123")
		assert.False(t, ok)
	})

	t.Run("missing label", func(t *testing.T) {
		_, ok := rule.locate("Beneficiário ACME")
		assert.False(t, ok)
	})
}

func TestSameLineMatchPolicy(t *testing.T) {
	text := "Vencimento 01/01/2024\nRecibo\nVencimento 02/02/2024\n"

	first, err := compileRule(KindDate, Rule{Strategy: StrategySameLine, Match: MatchFirst, Labels: []string{"Vencimento"}})
	require.NoError(t, err)
	last, err := compileRule(KindDate, Rule{Strategy: StrategySameLine, Match: MatchLast, Labels: []string{"Vencimento"}})
	require.NoError(t, err)

	got, ok := first.locate(text)
	require.True(t, ok)
	assert.Equal(t, "01/01/2024", got)

	got, ok = last.locate(text)
	require.True(t, ok)
	assert.Equal(t, "02/02/2024", got)
}

func TestSameLineGaps(t *testing.T) {
	text := "Vencimento\n15/12/2024"

	sameLine, err := compileRule(KindDate, Rule{Strategy: StrategySameLine, Match: MatchLast, Labels: []string{"Vencimento"}})
	require.NoError(t, err)
	_, ok := sameLine.locate(text)
	assert.False(t, ok, "same_line gap must not cross a line break")

	nextLine, err := compileRule(KindDate, Rule{Strategy: StrategySameLine, Match: MatchLast, Gap: GapNextLine, Labels: []string{"Vencimento"}})
	require.NoError(t, err)
	got, ok := nextLine.locate(text)
	require.True(t, ok)
	assert.Equal(t, "15/12/2024", got)

	unbounded, err := compileRule(KindCurrency, Rule{Strategy: StrategySameLine, Match: MatchLast, Labels: []string{"Valor Cobrado"}})
	require.NoError(t, err)
	got, ok = unbounded.locate("Valor Cobrado\n(R$)\n\n1.500,00")
	require.True(t, ok)
	assert.Equal(t, "1.500,00", got)
}

func TestSameLineIsCaseInsensitive(t *testing.T) {
	rule, err := compileRule(KindCode, Rule{Strategy: StrategySameLine, Match: MatchFirst, Labels: []string{`Nosso\sN[úu]mero`}})
	require.NoError(t, err)

	got, ok := rule.locate("NOSSO NÚMERO: 00012345-6")
	require.True(t, ok)
	assert.Equal(t, "00012345-6", got)
}
