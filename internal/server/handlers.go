package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dimviana/Gestor-de-Boleto/constants"
	"github.com/dimviana/Gestor-de-Boleto/internal/cache"
	"github.com/dimviana/Gestor-de-Boleto/internal/common"
	"github.com/dimviana/Gestor-de-Boleto/internal/core"
)

// DocumentProcessor is the part of core.Processor the handlers need.
type DocumentProcessor interface {
	ProcessUpload(ctx context.Context, name string, data []byte) (core.Outcome, error)
	ProcessText(ctx context.Context, name, text string) core.Outcome
}

var _ DocumentProcessor = (*core.Processor)(nil)

type BoletoHandler struct {
	proc      DocumentProcessor
	cache     cache.ResultCache
	maxUpload int64
	logger    *slog.Logger
}

func NewBoletoHandler(proc DocumentProcessor, rc cache.ResultCache, maxUpload int64, logger *slog.Logger) *BoletoHandler {
	if rc == nil {
		rc = cache.NopCache{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BoletoHandler{proc: proc, cache: rc, maxUpload: maxUpload, logger: logger}
}

// Extract handles a multipart upload under the "file" field.
func (h *BoletoHandler) Extract(w http.ResponseWriter, r *http.Request) {
	logger := common.LoggerFrom(r.Context(), h.logger)
	if h.maxUpload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, common.NewAppError(common.CodeInput, "file too large", common.ErrInvalidInput))
			return
		}
		logger.Warn("extract request without file", "error", err)
		writeError(w, http.StatusBadRequest, common.NewAppError(common.CodeInput, "multipart field \"file\" is required", common.ErrInvalidInput))
		return
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	if constants.MapExtToFormat(filepath.Ext(name)) == "" {
		writeError(w, http.StatusBadRequest, common.NewAppError(common.CodeInput, "only .pdf and .txt files are accepted", common.ErrUnsupportedFormat))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, common.NewAppError(common.CodeInput, "failed to read upload", err))
		return
	}

	sum := sha256.Sum256(data)
	key := hex.EncodeToString(sum[:])
	if cached, err := h.cache.Get(r.Context(), key); err == nil {
		logger.Info("served cached result", "file", name, "sha256", key)
		w.Header().Set("X-Boleto-Status", string(core.StatusFor(core.Review(*cached))))
		writeJSON(w, http.StatusOK, cached)
		return
	} else if !errors.Is(err, common.ErrNotFound) {
		logger.Warn("cache lookup failed", "error", err)
	}

	out, err := h.proc.ProcessUpload(r.Context(), name, data)
	if err != nil {
		if common.IsAcquisitionError(err) {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		logger.Error("extraction failed", "file", name, "error", err)
		writeError(w, http.StatusInternalServerError, common.NewAppError(common.CodeInternal, "extraction failed", common.ErrInternal))
		return
	}

	if err := h.cache.Set(r.Context(), key, *out.Result); err != nil {
		logger.Warn("cache store failed", "error", err)
	}
	w.Header().Set("X-Boleto-Status", string(out.Status))
	writeJSON(w, http.StatusOK, out.Result)
}

// ExtractText runs the engine on a raw text body.
func (h *BoletoHandler) ExtractText(w http.ResponseWriter, r *http.Request) {
	if h.maxUpload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, common.NewAppError(common.CodeInput, "failed to read body", err))
		return
	}
	if strings.TrimSpace(string(body)) == "" {
		writeError(w, http.StatusUnprocessableEntity, common.AcquisitionError("empty text", nil))
		return
	}

	out := h.proc.ProcessText(r.Context(), "body.txt", string(body))
	w.Header().Set("X-Boleto-Status", string(out.Status))
	writeJSON(w, http.StatusOK, out.Result)
}
