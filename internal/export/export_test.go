package export

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dimviana/Gestor-de-Boleto/constants"
	"github.com/dimviana/Gestor-de-Boleto/internal/core"
	"github.com/dimviana/Gestor-de-Boleto/internal/core/boleto"
)

func str(s string) *string   { return &s }
func num(f float64) *float64 { return &f }

func outcome(file, barcode string) core.Outcome {
	return core.Outcome{
		File:   file,
		Status: constants.OutcomeOK,
		Result: &boleto.Result{
			Recipient: str("ACME LTDA"),
			DueDate:   str("10/01/2025"),
			Amount:    num(1234.56),
			Barcode:   str(barcode),
		},
	}
}

func TestMarkDuplicates(t *testing.T) {
	outs := []core.Outcome{
		outcome("a.pdf", "111"),
		outcome("b.pdf", "222"),
		outcome("c.pdf", "111"),
		{File: "d.pdf", Status: constants.OutcomeFailed},
	}

	n := MarkDuplicates(outs)
	assert.Equal(t, 1, n)
	assert.Equal(t, constants.OutcomeOK, outs[0].Status)
	assert.Equal(t, constants.OutcomeOK, outs[1].Status)
	assert.Equal(t, constants.OutcomeDuplicate, outs[2].Status)
	require.Len(t, outs[2].Issues, 1)
	assert.Equal(t, constants.IssueDuplicate, outs[2].Issues[0].Code)
	assert.Contains(t, outs[2].Issues[0].Message, "a.pdf")
	assert.Equal(t, constants.OutcomeFailed, outs[3].Status)
}

func TestWriteXLSX(t *testing.T) {
	outs := []core.Outcome{
		outcome("a.pdf", "111"),
		{File: "broken.pdf", Status: constants.OutcomeFailed, Error: "no text layer"},
	}
	outs[0].Issues = []core.Issue{{Code: constants.IssueDueDateNotFound}, {Code: constants.IssueFreeBoleto}}

	b, err := NewService(slog.New(slog.DiscardHandler)).WriteXLSX(outs)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"File", "Status", "Issues", "recipient", "drawee"}, rows[0][:5])
	assert.Equal(t, "a.pdf", rows[1][0])
	assert.Equal(t, "OK", rows[1][1])
	assert.Equal(t, "dueDateNotFound, freeBoleto", rows[1][2])
	assert.Equal(t, "ACME LTDA", rows[1][3])
	assert.Equal(t, "broken.pdf", rows[2][0])
	assert.Equal(t, "FAILED", rows[2][1])

	amount, err := f.GetCellValue(reportSheet, "I2")
	require.NoError(t, err)
	assert.Equal(t, "1234.56", amount)

	legend, err := f.GetRows(issuesSheet)
	require.NoError(t, err)
	assert.Len(t, legend, len(constants.AsStringSlice())+1)
	assert.Equal(t, []string{"amountNotFound", "amount not found"}, legend[1])
}
