package ingest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dimviana/Gestor-de-Boleto/constants"
	"github.com/dimviana/Gestor-de-Boleto/internal/core"
)

// Mover files handled documents away from the watched folder, next to a
// JSON sidecar holding the outcome.
type Mover struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewMover(logger *slog.Logger) *Mover {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mover{logger: logger, now: time.Now}
}

// Rejected reports whether an outcome belongs in _failed: no text layer,
// no amount, a zero amount or no usable barcode.
func Rejected(out core.Outcome, err error) bool {
	if err != nil || out.Status == constants.OutcomeFailed || out.Status == constants.OutcomeDuplicate {
		return true
	}
	for _, is := range out.Issues {
		switch is.Code {
		case constants.IssueAmountNotFound, constants.IssueFreeBoleto, constants.IssueInvalidBarcode:
			return true
		}
	}
	return false
}

// Move relocates path into _processed or _failed beside it and returns the new path.
func (m *Mover) Move(path string, out core.Outcome, procErr error) (string, error) {
	sub := constants.ProcessedDir
	if Rejected(out, procErr) {
		sub = constants.FailedDir
	}
	dir := filepath.Join(filepath.Dir(path), sub)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	dest := filepath.Join(dir, filepath.Base(path))
	if _, err := os.Stat(dest); err == nil {
		dest = filepath.Join(dir, fmt.Sprintf("%s_%s", m.now().Format("20060102T150405"), filepath.Base(path)))
	}
	if err := os.Rename(path, dest); err != nil {
		return "", fmt.Errorf("move %s: %w", path, err)
	}

	if procErr != nil && out.Error == "" {
		out.Error = procErr.Error()
	}
	sidecar := strings.TrimSuffix(dest, filepath.Ext(dest)) + ".json"
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return dest, fmt.Errorf("marshal outcome: %w", err)
	}
	if err := os.WriteFile(sidecar, b, 0o644); err != nil {
		return dest, fmt.Errorf("write %s: %w", sidecar, err)
	}

	m.logger.Info("file moved", "from", path, "to", dest, "folder", sub, "status", out.Status)
	return dest, nil
}
