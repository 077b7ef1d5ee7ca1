package boleto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"brazilian", "1.234,56", 1234.56},
		{"international", "1,234.56", 1234.56},
		{"currency marker", "R$ 150,00", 150},
		{"lowercase marker", "r$1.500,00", 1500},
		{"dot with one decimal is thousands", "1234.5", 12345},
		{"dot with two decimals", "1234.56", 1234.56},
		{"comma with one decimal is thousands", "1,5", 15},
		{"comma thousands", "1,500", 1500},
		{"several dot thousands", "1.234.567", 1234567},
		{"brazilian millions", "1.234.567,89", 1234567.89},
		{"international millions", "1,234,567.89", 1234567.89},
		{"plain integer", "150", 150},
		{"zero", "0,00", 0},
		{"ocr letter o", "1.2O4,5O", 1204.50},
		{"dot with three digits is thousands", "10.005", 10005},
		{"at the bound", "99.999.999,00", 99999999},
		{"trailing noise", "R$ 1.500,00 ", 1500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCurrency(tt.in)
			require.NotNil(t, got, "input %q", tt.in)
			assert.InDelta(t, tt.want, *got, 0.001)
		})
	}
}

func TestParseCurrencyRejects(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"R$",
		"abc",
		"O,OO",
		"R$ 100.000.000,00",
		".",
		",",
	} {
		assert.Nil(t, ParseCurrency(in), "input %q", in)
	}
}

func TestParseCurrencyCustomBound(t *testing.T) {
	spec, err := DefaultSpec()
	require.NoError(t, err)
	spec.MaxAmount = 1000

	e, err := NewEngine(spec, nil)
	require.NoError(t, err)

	assert.Nil(t, e.ParseCurrency("1.000,01"))
	got := e.ParseCurrency("999,99")
	require.NotNil(t, got)
	assert.InDelta(t, 999.99, *got, 0.001)
}
