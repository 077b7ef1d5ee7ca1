package boleto

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimviana/Gestor-de-Boleto/internal/common"
)

func TestDefaultSpecDeclaresEveryField(t *testing.T) {
	spec, err := DefaultSpec()
	require.NoError(t, err)

	var names []string
	for _, f := range spec.Fields {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, FieldNames, names)
	assert.Equal(t, DefaultMaxAmount, spec.MaxAmount)
}

func TestParseSpecErrors(t *testing.T) {
	base, err := os.ReadFile("fields.yaml")
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func(string) string
		wantMsg string
	}{
		{
			name:    "unknown strategy",
			mutate:  func(s string) string { return strings.Replace(s, "strategy: block", "strategy: fuzzy", 1) },
			wantMsg: "unknown strategy",
		},
		{
			name:    "bad match policy",
			mutate:  func(s string) string { return strings.Replace(s, "match: last", "match: middle", 1) },
			wantMsg: "match must be first or last",
		},
		{
			name:    "duplicate field",
			mutate:  func(s string) string { return strings.Replace(s, "name: pixQrCodeText", "name: recipient", 1) },
			wantMsg: "declared twice",
		},
		{
			name:    "unknown field",
			mutate:  func(s string) string { return strings.Replace(s, "name: discount", "name: rebate", 1) },
			wantMsg: `unknown field "rebate"`,
		},
		{
			name:    "bad noise key",
			mutate:  func(s string) string { return strings.Replace(s, `"0": ["O"`, `"zero": ["O"`, 1) },
			wantMsg: "not a single digit",
		},
		{
			name:    "non-positive bound",
			mutate:  func(s string) string { return strings.Replace(s, "max_amount: 99999999.00", "max_amount: 0", 1) },
			wantMsg: "max_amount must be positive",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSpec([]byte(tt.mutate(string(base))))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)

			var appErr *common.AppError
			assert.ErrorAs(t, err, &appErr)
		})
	}
}

func TestNewEngineRejectsBadRegex(t *testing.T) {
	spec, err := DefaultSpec()
	require.NoError(t, err)
	spec.Fields[0].Rules[0].Labels = []string{"(unclosed"}

	_, err = NewEngine(spec, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recipient")
}

func TestLoadSpecFileOverridesLabels(t *testing.T) {
	base, err := os.ReadFile("fields.yaml")
	require.NoError(t, err)
	custom := strings.Replace(string(base), "labels: ['Vencimento']", "labels: ['Vencimento', 'Pagar at[ée]']", 1)

	path := filepath.Join(t.TempDir(), "fields.yaml")
	require.NoError(t, os.WriteFile(path, []byte(custom), 0o600))

	spec, err := LoadSpecFile(path)
	require.NoError(t, err)
	e, err := NewEngine(spec, nil)
	require.NoError(t, err)

	res := e.Extract("Pagar até 20/03/2025")
	require.NotNil(t, res.DueDate)
	assert.Equal(t, "2025-03-20", *res.DueDate)
	assert.Nil(t, Extract("Pagar até 20/03/2025").DueDate)
}

func TestLoadSpecFileMissing(t *testing.T) {
	_, err := LoadSpecFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSpecFingerprint(t *testing.T) {
	base, err := os.ReadFile("fields.yaml")
	require.NoError(t, err)

	fp := Default().Fingerprint()
	require.Len(t, fp, 16)

	// formatting and comments do not change the fingerprint
	reformatted, err := ParseSpec([]byte("# local copy\n" + string(base) + "\n\n"))
	require.NoError(t, err)
	assert.Equal(t, fp, reformatted.Fingerprint())

	custom, err := ParseSpec([]byte(strings.Replace(string(base), "labels: ['Vencimento']", "labels: ['Vencimento', 'Pagar at[ée]']", 1)))
	require.NoError(t, err)
	assert.NotEqual(t, fp, custom.Fingerprint())

	e, err := NewEngine(custom, nil)
	require.NoError(t, err)
	assert.Equal(t, custom.Fingerprint(), e.Fingerprint())
}
