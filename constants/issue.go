package constants

// IssueCode names a review finding on an extracted boleto.
type IssueCode string

const (
	IssueAmountNotFound  IssueCode = "amountNotFound"
	IssueFreeBoleto      IssueCode = "freeBoleto"
	IssueInvalidBarcode  IssueCode = "invalidBarcode"
	IssueDueDateNotFound IssueCode = "dueDateNotFound"
	IssueDuplicate       IssueCode = "duplicateBarcode"
)

var allIssues = []IssueCode{
	IssueAmountNotFound,
	IssueFreeBoleto,
	IssueInvalidBarcode,
	IssueDueDateNotFound,
	IssueDuplicate,
}

// IssueDescriptions holds the human text for each issue code.
var IssueDescriptions = map[IssueCode]string{
	IssueAmountNotFound:  "amount not found",
	IssueFreeBoleto:      "amount is zero",
	IssueInvalidBarcode:  "barcode missing or malformed",
	IssueDueDateNotFound: "due date not found",
	IssueDuplicate:       "barcode already processed",
}

// AsStringSlice returns every issue code.
func AsStringSlice() []string {
	result := make([]string, len(allIssues))
	for i, c := range allIssues {
		result[i] = string(c)
	}
	return result
}
