package app

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimviana/Gestor-de-Boleto/constants"
	"github.com/dimviana/Gestor-de-Boleto/internal/common"
)

const boletoTxt = `Beneficiário
ACME LTDA
CNPJ 12.345.678/0001-90
Vencimento 15/12/2024
Valor do Documento R$ 1.500,00
00190.00009 01234.567004 00000.000172 1 95010000150000
`

func testConfig() *common.Config {
	return &common.Config{
		Server: common.ServerConfig{HTTPAddr: ":0"},
		Text:   common.TextConfig{Backend: "pdftotext", MaxBytes: 1 << 20, Timeout: 5 * time.Second},
		Watch:  common.WatchConfig{Workers: 2, QueueSize: 8, Debounce: 20 * time.Millisecond},
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := New(testConfig(), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return a
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Text.Backend = "tesseract"
	_, err := New(cfg, nil)
	assert.Error(t, err)
}

func TestLoadEngineFromFile(t *testing.T) {
	_, err := LoadEngine(filepath.Join(t.TempDir(), "missing.yaml"), slog.New(slog.DiscardHandler))
	assert.Error(t, err)
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), boletoTxt)
	writeFile(t, filepath.Join(dir, "b.txt"), boletoTxt+"\nNosso Número 1\n")
	writeFile(t, filepath.Join(dir, "c.txt"), boletoTxt)
	writeFile(t, filepath.Join(dir, "d.txt"), "   ")

	outs, stats, err := newTestApp(t).Batch(context.Background(), dir, 3)
	require.NoError(t, err)
	require.Len(t, outs, 4)
	assert.Equal(t, uint32(4), stats.Matched)

	byName := map[string]constants.OutcomeStatus{}
	for _, o := range outs {
		byName[filepath.Base(o.File)] = o.Status
	}
	assert.Equal(t, constants.OutcomeOK, byName["a.txt"])
	assert.Equal(t, constants.OutcomeDuplicate, byName["b.txt"])
	assert.Equal(t, constants.OutcomeDuplicate, byName["c.txt"])
	assert.Equal(t, constants.OutcomeFailed, byName["d.txt"])
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	a := newTestApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Watch(ctx, dir) }()

	time.Sleep(100 * time.Millisecond)
	writeFile(t, filepath.Join(dir, "good.txt"), boletoTxt)
	writeFile(t, filepath.Join(dir, "empty.txt"), " ")

	require.Eventually(t, func() bool {
		_, okErr := os.Stat(filepath.Join(dir, constants.ProcessedDir, "good.json"))
		_, failErr := os.Stat(filepath.Join(dir, constants.FailedDir, "empty.json"))
		return okErr == nil && failErr == nil
	}, 5*time.Second, 20*time.Millisecond)

	assert.FileExists(t, filepath.Join(dir, constants.ProcessedDir, "good.txt"))
	assert.NoFileExists(t, filepath.Join(dir, "good.txt"))

	cancel()
	require.NoError(t, <-done)
}

func TestWatchRequiresDir(t *testing.T) {
	assert.Error(t, newTestApp(t).Watch(context.Background(), ""))
}
