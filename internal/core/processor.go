package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dimviana/Gestor-de-Boleto/constants"
	"github.com/dimviana/Gestor-de-Boleto/internal/common"
	"github.com/dimviana/Gestor-de-Boleto/internal/core/boleto"
	"github.com/dimviana/Gestor-de-Boleto/internal/core/extract"
	"github.com/dimviana/Gestor-de-Boleto/internal/core/textlayer"
)

// Outcome is everything known about one processed document.
type Outcome struct {
	ID      uuid.UUID               `json:"id"`
	File    string                  `json:"file"`
	SHA256  string                  `json:"sha256,omitempty"`
	Status  constants.OutcomeStatus `json:"status"`
	Result  *boleto.Result          `json:"result,omitempty"`
	Issues  []Issue                 `json:"issues,omitempty"`
	Error   string                  `json:"error,omitempty"`
	Method  string                  `json:"method,omitempty"`
	Pages   int                     `json:"pages,omitempty"`
	Score   float32                 `json:"score,omitempty"`
	Elapsed time.Duration           `json:"elapsedNs"`
}

// Processor coordinates text acquisition then field extraction.
type Processor struct {
	logger *slog.Logger
	text   extract.TextExtractor
	fields extract.FieldExtractor
}

func NewProcessor(logger *slog.Logger, text extract.TextExtractor, fields extract.FieldExtractor) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{logger: logger, text: text, fields: fields}
}

// ProcessFile acquires the text layer of path and extracts its fields.
// An acquisition failure is returned as an error together with a FAILED
// outcome; extraction itself never fails.
func (p *Processor) ProcessFile(ctx context.Context, path string) (Outcome, error) {
	start := time.Now()
	out := Outcome{ID: uuid.New(), File: filepath.Base(path)}

	hash, err := hashFile(path)
	if err != nil {
		return p.fail(ctx, out, start, common.AcquisitionError("failed to open file", err))
	}
	out.SHA256 = hash

	tr, err := p.text.Extract(ctx, path)
	if err != nil {
		return p.fail(ctx, out, start, err)
	}
	return p.finish(ctx, out, start, tr), nil
}

// ProcessUpload is ProcessFile for in-memory content.
func (p *Processor) ProcessUpload(ctx context.Context, name string, data []byte) (Outcome, error) {
	start := time.Now()
	sum := sha256.Sum256(data)
	out := Outcome{ID: uuid.New(), File: filepath.Base(name), SHA256: hex.EncodeToString(sum[:])}

	tr, err := p.text.ExtractBytes(ctx, name, data)
	if err != nil {
		return p.fail(ctx, out, start, err)
	}
	return p.finish(ctx, out, start, tr), nil
}

// ProcessText extracts fields from an already acquired text layer.
func (p *Processor) ProcessText(ctx context.Context, name, text string) Outcome {
	start := time.Now()
	sum := sha256.Sum256([]byte(text))
	out := Outcome{ID: uuid.New(), File: name, SHA256: hex.EncodeToString(sum[:])}
	cleaned := textlayer.Clean(text)
	return p.finish(ctx, out, start, textlayer.Result{Text: cleaned, Pages: 1, Method: "plain-text", Score: textlayer.Score(cleaned)})
}

func (p *Processor) finish(ctx context.Context, out Outcome, start time.Time, tr textlayer.Result) Outcome {
	logger := common.LoggerFrom(ctx, p.logger)

	res := p.fields.Extract(tr.Text)
	if err := p.fields.Validate(res); err != nil {
		logger.Error("extracted record does not match schema", "file", out.File, "error", err)
	}

	out.Result = &res
	out.Method = tr.Method
	out.Pages = tr.Pages
	out.Score = tr.Score
	out.Issues = Review(res)
	out.Status = StatusFor(out.Issues)
	out.Elapsed = time.Since(start)

	logger.Info("boleto processed",
		"id", out.ID,
		"file", out.File,
		"status", out.Status,
		"fields_found", res.Found(),
		"issues", len(out.Issues),
		"elapsed_ms", out.Elapsed.Milliseconds(),
	)
	return out
}

func (p *Processor) fail(ctx context.Context, out Outcome, start time.Time, err error) (Outcome, error) {
	out.Status = constants.OutcomeFailed
	out.Error = common.NewErrorBody(err).Error
	out.Elapsed = time.Since(start)
	common.LoggerFrom(ctx, p.logger).Error("boleto processing failed", "id", out.ID, "file", out.File, "error", err)
	return out, err
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
