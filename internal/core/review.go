package core

import (
	"github.com/dimviana/Gestor-de-Boleto/constants"
	"github.com/dimviana/Gestor-de-Boleto/internal/common"
	"github.com/dimviana/Gestor-de-Boleto/internal/core/boleto"
)

// Issue is a review finding on an extracted record.
type Issue struct {
	Code    constants.IssueCode `json:"code"`
	Field   string              `json:"field"`
	Message string              `json:"message"`
}

// Review flags records a person should look at before paying: no amount,
// a zero amount, no usable barcode, no due date.
func Review(r boleto.Result) []Issue {
	v := common.NewValidator().
		Field(boleto.FieldAmount, r.Amount,
			common.Coded(string(constants.IssueAmountNotFound), common.Required),
			common.Coded(string(constants.IssueFreeBoleto), common.NonZero)).
		Field(boleto.FieldBarcode, r.Barcode,
			common.Coded(string(constants.IssueInvalidBarcode), common.Required),
			common.Coded(string(constants.IssueInvalidBarcode), common.DigitCount(44, 47, 48))).
		Field(boleto.FieldDueDate, r.DueDate,
			common.Coded(string(constants.IssueDueDateNotFound), common.Required))

	if !v.HasErrors() {
		return nil
	}
	issues := make([]Issue, 0, len(v.Errors()))
	for _, e := range v.Errors() {
		code := constants.IssueCode(e.Code)
		issues = append(issues, Issue{
			Code:    code,
			Field:   e.Field,
			Message: constants.IssueDescriptions[code],
		})
	}
	return issues
}

// StatusFor maps review issues to the outcome status of a processed record.
func StatusFor(issues []Issue) constants.OutcomeStatus {
	if len(issues) > 0 {
		return constants.OutcomeReview
	}
	return constants.OutcomeOK
}
