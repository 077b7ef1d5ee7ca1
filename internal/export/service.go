package export

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dimviana/Gestor-de-Boleto/constants"
	"github.com/dimviana/Gestor-de-Boleto/internal/core"
	"github.com/dimviana/Gestor-de-Boleto/internal/core/boleto"
)

const (
	reportSheet = "Boletos"
	issuesSheet = "Issues"
)

// Service renders batch outcomes as an XLSX workbook.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// WriteXLSX returns a workbook (as bytes) with one row per outcome and a
// legend sheet describing the issue codes.
func (s *Service) WriteXLSX(outcomes []core.Outcome) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer f.Close()

	// the default sheet becomes the report
	if err := f.SetSheetName(f.GetSheetName(0), reportSheet); err != nil {
		return nil, err
	}

	headers := append([]string{"File", "Status", "Issues"}, boleto.FieldNames...)
	headers = append(headers, "SHA-256", "Error")
	if err := f.SetSheetRow(reportSheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, out := range outcomes {
		row := []any{out.File, string(out.Status), issueCodes(out.Issues)}
		for _, name := range boleto.FieldNames {
			row = append(row, cellValue(out.Result, name))
		}
		row = append(row, out.SHA256, out.Error)

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(reportSheet, "A", "A", 32) // file
	_ = f.SetColWidth(reportSheet, "B", "B", 12) // status
	_ = f.SetColWidth(reportSheet, "C", "C", 28) // issues
	_ = f.SetColWidth(reportSheet, "D", "E", 36) // recipient, drawee
	_ = f.SetColWidth(reportSheet, "L", "L", 50) // barcode

	if _, err := f.NewSheet(issuesSheet); err != nil {
		return nil, err
	}
	_ = f.SetSheetRow(issuesSheet, "A1", &[]string{"Code", "Description"})
	for i, code := range constants.AsStringSlice() {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = f.SetSheetRow(issuesSheet, cell, &[]string{code, constants.IssueDescriptions[constants.IssueCode(code)]})
	}
	_ = f.SetColWidth(issuesSheet, "A", "A", 20)
	_ = f.SetColWidth(issuesSheet, "B", "B", 36)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(outcomes),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func cellValue(r *boleto.Result, name string) any {
	if r == nil {
		return nil
	}
	return r.Get(name).Any()
}

func issueCodes(issues []core.Issue) string {
	codes := make([]string, 0, len(issues))
	for _, is := range issues {
		codes = append(codes, string(is.Code))
	}
	return strings.Join(codes, ", ")
}
