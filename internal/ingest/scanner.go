package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileRef is one discovered document.
type FileRef struct {
	Path         string
	Ext          string
	Size         int64
	HashHex      string
	Deduplicated bool // same content already seen earlier in this scan
	Err          string
}

type DirStats struct {
	Scanned      uint32
	Matched      uint32
	Succeeded    uint32
	Deduplicated uint32
	Failed       uint32
}

// Scanner walks directories looking for boleto documents.
type Scanner struct {
	AllowedExts map[string]struct{} // lowercased sans '.'; nil -> constants.AllowedExtensions
	Limit       int                 // stop after this many matches; 0 = no limit
	logger      *slog.Logger
}

func NewScanner(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{logger: logger}
}

var errLimitReached = errors.New("scan limit reached")

// ScanDirectory walks root, skips hidden entries if requested and the
// _processed/_failed folders always, and hashes every matching file.
func (s *Scanner) ScanDirectory(ctx context.Context, root string, skipHidden bool) ([]FileRef, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root_path is required")
	}

	var results []FileRef
	var stats DirStats
	seen := map[string]bool{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats.Scanned++
		if walkErr != nil {
			results = append(results, FileRef{Path: path, Err: walkErr.Error()})
			stats.Failed++
			return nil
		}
		if d.IsDir() {
			if path != root && (isOutputDir(path) || (skipHidden && IsHidden(path))) {
				return filepath.SkipDir
			}
			return nil
		}
		if skipHidden && IsHidden(path) {
			return nil
		}
		if !allowed(path, s.AllowedExts) {
			return nil
		}
		if s.Limit > 0 && int(stats.Matched) >= s.Limit {
			return errLimitReached
		}
		stats.Matched++

		ref, err := hashRef(path)
		if err != nil {
			s.logger.Warn("failed to hash file", "path", path, "error", err)
			results = append(results, FileRef{Path: path, Err: err.Error()})
			stats.Failed++
			return nil
		}
		if seen[ref.HashHex] {
			ref.Deduplicated = true
			stats.Deduplicated++
		}
		seen[ref.HashHex] = true
		results = append(results, ref)
		stats.Succeeded++
		return nil
	})

	if errors.Is(err, errLimitReached) {
		s.logger.Info("scan limit reached", "root", root, "limit", s.Limit)
		err = nil
	}
	if err != nil {
		return results, stats, fmt.Errorf("walk: %w", err)
	}
	s.logger.Debug("directory scanned", "root", root, "matched", stats.Matched, "failed", stats.Failed)
	return results, stats, nil
}

func hashRef(path string) (FileRef, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileRef{}, err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return FileRef{}, err
	}
	return FileRef{
		Path:    path,
		Ext:     strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")),
		Size:    n,
		HashHex: hex.EncodeToString(h.Sum(nil)),
	}, nil
}
