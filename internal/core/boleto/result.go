package boleto

// Output field names, in output order.
const (
	FieldRecipient        = "recipient"
	FieldDrawee           = "drawee"
	FieldDocumentDate     = "documentDate"
	FieldDueDate          = "dueDate"
	FieldDocumentAmount   = "documentAmount"
	FieldAmount           = "amount"
	FieldDiscount         = "discount"
	FieldInterestAndFines = "interestAndFines"
	FieldBarcode          = "barcode"
	FieldGuideNumber      = "guideNumber"
	FieldPixQrCodeText    = "pixQrCodeText"
)

// FieldNames lists every output key in output order.
var FieldNames = []string{
	FieldRecipient,
	FieldDrawee,
	FieldDocumentDate,
	FieldDueDate,
	FieldDocumentAmount,
	FieldAmount,
	FieldDiscount,
	FieldInterestAndFines,
	FieldBarcode,
	FieldGuideNumber,
	FieldPixQrCodeText,
}

func isOutputField(name string) bool {
	for _, n := range FieldNames {
		if n == name {
			return true
		}
	}
	return false
}

// Result is the flat record extracted from one boleto. Every key is always
// serialized; a nil pointer is a field that was not found or not parseable.
type Result struct {
	Recipient        *string  `json:"recipient"`
	Drawee           *string  `json:"drawee"`
	DocumentDate     *string  `json:"documentDate"`
	DueDate          *string  `json:"dueDate"`
	DocumentAmount   *float64 `json:"documentAmount"`
	Amount           *float64 `json:"amount"`
	Discount         *float64 `json:"discount"`
	InterestAndFines *float64 `json:"interestAndFines"`
	Barcode          *string  `json:"barcode"`
	GuideNumber      *string  `json:"guideNumber"`
	PixQrCodeText    *string  `json:"pixQrCodeText"`
}

// Value is a parsed field: exactly one of String and Number is set, or neither.
type Value struct {
	String *string
	Number *float64
}

// IsNull reports whether the field is missing.
func (v Value) IsNull() bool {
	return v.String == nil && v.Number == nil
}

// Any returns the value as a plain interface, nil when missing.
func (v Value) Any() any {
	switch {
	case v.String != nil:
		return *v.String
	case v.Number != nil:
		return *v.Number
	}
	return nil
}

// Get returns the named field.
func (r *Result) Get(name string) Value {
	switch name {
	case FieldRecipient:
		return Value{String: r.Recipient}
	case FieldDrawee:
		return Value{String: r.Drawee}
	case FieldDocumentDate:
		return Value{String: r.DocumentDate}
	case FieldDueDate:
		return Value{String: r.DueDate}
	case FieldDocumentAmount:
		return Value{Number: r.DocumentAmount}
	case FieldAmount:
		return Value{Number: r.Amount}
	case FieldDiscount:
		return Value{Number: r.Discount}
	case FieldInterestAndFines:
		return Value{Number: r.InterestAndFines}
	case FieldBarcode:
		return Value{String: r.Barcode}
	case FieldGuideNumber:
		return Value{String: r.GuideNumber}
	case FieldPixQrCodeText:
		return Value{String: r.PixQrCodeText}
	}
	return Value{}
}

func (r *Result) set(name string, v Value) {
	switch name {
	case FieldRecipient:
		r.Recipient = v.String
	case FieldDrawee:
		r.Drawee = v.String
	case FieldDocumentDate:
		r.DocumentDate = v.String
	case FieldDueDate:
		r.DueDate = v.String
	case FieldDocumentAmount:
		r.DocumentAmount = v.Number
	case FieldAmount:
		r.Amount = v.Number
	case FieldDiscount:
		r.Discount = v.Number
	case FieldInterestAndFines:
		r.InterestAndFines = v.Number
	case FieldBarcode:
		r.Barcode = v.String
	case FieldGuideNumber:
		r.GuideNumber = v.String
	case FieldPixQrCodeText:
		r.PixQrCodeText = v.String
	}
}

// Found counts the non-null fields.
func (r *Result) Found() int {
	n := 0
	for _, name := range FieldNames {
		if !r.Get(name).IsNull() {
			n++
		}
	}
	return n
}
