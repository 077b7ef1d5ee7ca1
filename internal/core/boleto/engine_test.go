package boleto

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string   { return &s }
func num(f float64) *float64 { return &f }

const sampleBoleto = `Banco do Brasil | 001-9 | 00190.00009 01234.567004 00000.000172 1 95010000150000
Beneficiário
ACME SERVICOS LTDA
Rua das Flores, 100 - Centro
CNPJ 12.345.678/0001-90
Data do Documento 01/12/2024
Vencimento 15/12/2024
Nº do Documento 123456
Nosso Número 00012345-6
Valor do Documento R$ 1.500,00
(-) Desconto / Abatimento 0,00
(+) Juros / Multa 15,50
(=) Valor Cobrado R$ 1.515,50
Pagador
JOÃO DA SILVA
CPF 123.456.789-00
Instruções
Não receber após o vencimento
`

func TestExtractSample(t *testing.T) {
	got := Extract(sampleBoleto)

	want := Result{
		Recipient:        str("ACME SERVICOS LTDA / Rua das Flores, 100 Centro"),
		Drawee:           str("JOÃO DA SILVA / CPF 123.456.789 00"),
		DocumentDate:     str("2024-12-01"),
		DueDate:          str("2024-12-15"),
		DocumentAmount:   num(1500),
		Amount:           num(1515.5),
		Discount:         num(0),
		InterestAndFines: num(15.5),
		Barcode:          str(formattedDigits),
		GuideNumber:      str("123456"),
		PixQrCodeText:    nil,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractCRLFAndDecomposedAccents(t *testing.T) {
	// "Beneficiário" with a combining acute accent, CRLF line endings
	text := strings.ReplaceAll("Beneficia\u0301rio\nACME LTDA\nCNPJ 1\nVencimento 10/01/2025\n", "\n", "\r\n")
	got := Extract(text)

	require.NotNil(t, got.Recipient)
	assert.Equal(t, "ACME LTDA", *got.Recipient)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, "2025-01-10", *got.DueDate)
}

func TestExtractDatesUseLastOccurrence(t *testing.T) {
	text := "Recibo do Pagador\nVencimento 01/01/2024\n---- corte ----\nFicha de Compensação\nVencimento 15/01/2024\n"
	got := Extract(text)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, "2024-01-15", *got.DueDate)
}

func TestExtractAmountFallback(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantAmount *float64
		wantDoc    *float64
	}{
		{
			name:       "missing charged value",
			text:       "Valor do Documento 200,00\n",
			wantAmount: num(200),
			wantDoc:    num(200),
		},
		{
			name:       "zero charged value",
			text:       "Valor do Documento 200,00\n(=) Valor Cobrado 0,00\n",
			wantAmount: num(200),
			wantDoc:    num(200),
		},
		{
			name:       "charged value present",
			text:       "Valor do Documento 200,00\n(=) Valor Cobrado 210,00\n",
			wantAmount: num(210),
			wantDoc:    num(200),
		},
		{
			name:       "generic total label",
			text:       "Valor do Documento 200,00\nValor a Pagar: R$ 190,00\n",
			wantAmount: num(190),
			wantDoc:    num(200),
		},
		{
			name: "nothing to fall back to",
			text: "Boleto sem valores",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			assert.Equal(t, tt.wantDoc, got.DocumentAmount)
			assert.Equal(t, tt.wantAmount, got.Amount)
		})
	}
}

func TestExtractGuideNumberCascade(t *testing.T) {
	got := Extract("Nosso Número: 00012345-6\n")
	require.NotNil(t, got.GuideNumber)
	assert.Equal(t, "00012345-6", *got.GuideNumber)

	got = Extract("Nosso Número 999\nNº Documento/Guia: 2024.0001\n")
	require.NotNil(t, got.GuideNumber)
	assert.Equal(t, "2024.0001", *got.GuideNumber)

	got = Extract("Número do Documento\n  ABC-77\n")
	require.NotNil(t, got.GuideNumber)
	assert.Equal(t, "ABC-77", *got.GuideNumber)
}

func TestExtractFieldsAreIndependent(t *testing.T) {
	text := "Vencimento 99/99/9999\nValor do Documento R$ 10,00\nData do Documento 31/13/2024\n"
	got := Extract(text)

	assert.Nil(t, got.DueDate)
	assert.Nil(t, got.DocumentDate)
	require.NotNil(t, got.DocumentAmount)
	assert.InDelta(t, 10.0, *got.DocumentAmount, 0.001)
}

func TestExtractRecipientLabelDoesNotAffectOtherFields(t *testing.T) {
	type subset struct {
		Barcode, DueDate *string
		Amount           *float64
	}
	pick := func(r Result) subset { return subset{r.Barcode, r.DueDate, r.Amount} }

	base := Extract(sampleBoleto)
	require.NotNil(t, base.Recipient)

	for name, text := range map[string]string{
		"label garbled": strings.Replace(sampleBoleto, "Beneficiário", "Benef1c1ar1o", 1),
		"label removed": strings.Replace(sampleBoleto, "Beneficiário\n", "", 1),
	} {
		t.Run(name, func(t *testing.T) {
			got := Extract(text)
			if diff := cmp.Diff(pick(base), pick(got)); diff != "" {
				t.Errorf("fields changed with recipient label (-want +got):\n%s", diff)
			}
			if got.Recipient != nil {
				assert.NotEqual(t, *base.Recipient, *got.Recipient)
			}
		})
	}
}

func TestExtractSanityBoundRejectsField(t *testing.T) {
	got := Extract("Valor do Documento R$ 100.000.000,00\n(+) Juros / Multa 1,00\n")
	assert.Nil(t, got.DocumentAmount)
	assert.Nil(t, got.Amount)
	require.NotNil(t, got.InterestAndFines)
	assert.InDelta(t, 1.0, *got.InterestAndFines, 0.001)
}

func TestExtractEmptyTextSerializesEveryKey(t *testing.T) {
	res := Extract("")
	assert.Zero(t, res.Found())

	b, err := json.Marshal(res)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Len(t, m, len(FieldNames))
	for _, name := range FieldNames {
		v, ok := m[name]
		assert.True(t, ok, "missing key %s", name)
		assert.Nil(t, v, "key %s", name)
	}
}

func TestExtractIsDeterministicAndConcurrent(t *testing.T) {
	e := Default()
	want := e.Extract(sampleBoleto)

	var wg sync.WaitGroup
	results := make([]Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.Extract(sampleBoleto)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Empty(t, cmp.Diff(want, got))
	}
}

func TestExtractFieldUnknownName(t *testing.T) {
	assert.True(t, Default().ExtractField("nope", sampleBoleto).IsNull())
}

func TestResultGet(t *testing.T) {
	res := Extract(sampleBoleto)

	assert.Equal(t, "2024-12-15", res.Get(FieldDueDate).Any())
	assert.Equal(t, 1500.0, res.Get(FieldDocumentAmount).Any())
	assert.Nil(t, res.Get(FieldPixQrCodeText).Any())
	assert.Equal(t, 10, res.Found())
}
