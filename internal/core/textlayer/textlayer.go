package textlayer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"code.sajari.com/docconv"

	"github.com/dimviana/Gestor-de-Boleto/constants"
	"github.com/dimviana/Gestor-de-Boleto/internal/common"
)

// Backends for reading a PDF text layer.
const (
	BackendPdftotext = "pdftotext"
	BackendDocconv   = "docconv"
)

type Config struct {
	Backend   string // BackendPdftotext (default) or BackendDocconv
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Layout    bool   // pass -layout to pdftotext
	MaxPages  int    // 0 = no limit
	MaxBytes  int64  // 0 = no limit
	Timeout   time.Duration
}

type Result struct {
	Text       string
	Pages      int
	SourceType string // constants.PDF | constants.TXT
	Method     string // "pdf-text" | "docconv" | "plain-text"
	Duration   time.Duration
	Warnings   []string
	Score      float32
}

// Extractor acquires the plain-text layer of a boleto document. It does not
// render pages or run OCR: a PDF without a text layer is an acquisition failure.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendPdftotext
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// FromAppConfig maps application config onto a text layer Config.
func FromAppConfig(c common.TextConfig) Config {
	return Config{
		Backend:   c.Backend,
		Pdftotext: c.Pdftotext,
		MaxBytes:  c.MaxBytes,
		Timeout:   c.Timeout,
	}
}

// Extract picks a strategy based on file extension.
func (e *Extractor) Extract(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	e.logger.Debug("starting text extraction", "path", path, "backend", e.cfg.Backend, "ext", ext)

	st, err := os.Stat(path)
	if err != nil {
		return Result{}, common.AcquisitionError("failed to open file", err)
	}
	if e.cfg.MaxBytes > 0 && st.Size() > e.cfg.MaxBytes {
		return Result{}, common.AcquisitionError(
			fmt.Sprintf("file is %d bytes, limit is %d", st.Size(), e.cfg.MaxBytes), common.ErrInvalidInput)
	}

	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	var res Result
	switch constants.MapExtToFormat(ext) {
	case constants.PDF:
		res, err = e.extractPDF(ctx, path)
	case constants.TXT:
		res, err = e.extractPlain(path)
	default:
		e.logger.Error("unsupported extension", "extension", ext)
		return Result{}, common.NewAppError(common.CodeAcquisition,
			fmt.Sprintf("unsupported extension: %q", ext), common.ErrUnsupportedFormat)
	}
	res.Duration = time.Since(start)
	if err != nil {
		return res, err
	}

	res.Text = Clean(res.Text)
	if res.Text == "" {
		return res, common.AcquisitionError("document has no text layer (scanned documents are not supported)", nil)
	}
	res.Score = Score(res.Text)
	e.logger.Info("text extracted",
		"path", path,
		"method", res.Method,
		"pages", res.Pages,
		"chars", len(res.Text),
		"score", res.Score,
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

// ExtractBytes writes data to a temporary file named after name's extension
// and extracts it. Used for uploads.
func (e *Extractor) ExtractBytes(ctx context.Context, name string, data []byte) (Result, error) {
	ext := constants.NormalizeExt(filepath.Ext(name))
	if constants.MapExtToFormat(ext) == "" {
		return Result{}, common.NewAppError(common.CodeAcquisition,
			fmt.Sprintf("unsupported extension: %q", ext), common.ErrUnsupportedFormat)
	}

	f, err := os.CreateTemp("", "boleto-*."+ext)
	if err != nil {
		return Result{}, fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err := os.Remove(f.Name()); err != nil {
			e.logger.Warn("failed to remove temp file", "path", f.Name(), "error", err)
		}
	}()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return Result{}, fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return Result{}, fmt.Errorf("close temp file: %w", err)
	}
	return e.Extract(ctx, f.Name())
}

func (e *Extractor) extractPlain(path string) (Result, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Result{SourceType: constants.TXT}, common.AcquisitionError("failed to read text file", err)
	}
	return Result{Text: string(b), Pages: 1, SourceType: constants.TXT, Method: "plain-text"}, nil
}

func (e *Extractor) extractPDF(ctx context.Context, path string) (Result, error) {
	res := Result{SourceType: constants.PDF}
	switch e.cfg.Backend {
	case BackendDocconv:
		text, pages, err := e.docconvText(path)
		res.Method = "docconv"
		if err != nil {
			return res, common.AcquisitionError("failed to read PDF", err)
		}
		res.Text, res.Pages = text, pages
	default:
		text, pages, warns, err := e.pdfToText(ctx, path)
		res.Method = "pdf-text"
		res.Warnings = warns
		if err != nil {
			return res, common.AcquisitionError("failed to read PDF", err)
		}
		res.Text, res.Pages = text, pages
	}
	return res, nil
}

func (e *Extractor) pdfToText(ctx context.Context, path string) (text string, pages int, warnings []string, err error) {
	// pdftotext -enc UTF-8 -eol unix [-layout] [-l N] <path> -
	args := []string{"-enc", "UTF-8", "-eol", "unix"}
	if e.cfg.Layout {
		args = append(args, "-layout")
	}
	if e.cfg.MaxPages > 0 {
		args = append(args, "-l", strconv.Itoa(e.cfg.MaxPages))
	}
	args = append(args, path, "-")

	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, e.logger, args...)
	if err != nil {
		if msg := strings.TrimSpace(string(errb)); msg != "" {
			return "", 0, []string{msg}, fmt.Errorf("%w: %s", err, truncate(msg, 512))
		}
		return "", 0, nil, err
	}
	text = string(out)
	// a form feed closes every page
	pages = strings.Count(strings.TrimRight(text, "\n"), "\f")
	if !strings.HasSuffix(strings.TrimRight(text, "\n"), "\f") {
		pages++
	}
	return text, pages, nil, nil
}

func (e *Extractor) docconvText(path string) (string, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	resp, err := docconv.Convert(f, "application/pdf", false)
	if err != nil {
		return "", 0, err
	}
	pages, _ := strconv.Atoi(resp.Meta["Pages"])
	return resp.Body, pages, nil
}
