package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boletoTxt = `Beneficiário
ACME LTDA
CNPJ 12.345.678/0001-90
Vencimento 15/12/2024
Valor do Documento R$ 1.500,00
00190.00009 01234.567004 00000.000172 1 95010000150000
`

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestExtractFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boleto.txt")
	require.NoError(t, os.WriteFile(path, []byte(boletoTxt), 0o600))

	stdout, _, err := run(t, "", "extract", "--validate", path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "ACME LTDA", got["recipient"])
	assert.Equal(t, 1500.0, got["amount"])
	assert.Equal(t, "00190000090123456700400000000172195010000150000", got["barcode"])
	assert.Contains(t, got, "pixQrCodeText")
}

func TestExtractStdin(t *testing.T) {
	stdout, _, err := run(t, boletoTxt, "extract", "-")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"dueDate":"2024-12-15"`)
}

func TestExtractFailurePrintsErrorObject(t *testing.T) {
	stdout, _, err := run(t, "", "extract", filepath.Join(t.TempDir(), "missing.pdf"))

	var exit exitError
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 1, exit.code)

	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &body))
	assert.Contains(t, body["error"], "failed to open file")
}

func TestExtractBlankStdin(t *testing.T) {
	for name, stdin := range map[string]string{
		"empty":      "",
		"whitespace": "  \n\t\r\n  ",
	} {
		t.Run(name, func(t *testing.T) {
			stdout, _, err := run(t, stdin, "extract", "-")

			var exit exitError
			require.ErrorAs(t, err, &exit)
			assert.Equal(t, 1, exit.code)

			var body map[string]string
			require.NoError(t, json.Unmarshal([]byte(stdout), &body))
			assert.Equal(t, "empty text", body["error"])
		})
	}
}

func TestBatchWritesReport(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte(boletoTxt), 0o600))
	out := filepath.Join(t.TempDir(), "report.xlsx")

	stdout, stderr, err := run(t, "", "batch", "--dir", dir, "--out", out, "--jsonl", "--workers", "2")
	require.NoError(t, err)

	assert.FileExists(t, out)
	assert.Contains(t, stdout, `"status":"OK"`)
	assert.Contains(t, stderr, "1 ok")
}

func TestBatchRequiresDir(t *testing.T) {
	_, _, err := run(t, "", "batch")
	assert.Error(t, err)
}
