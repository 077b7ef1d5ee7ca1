package boleto

// ExtractBarcode returns the digitable line as digits only. Patterns are
// tried from the most specific (formatted bank line) to the loosest (solid
// digit run); see the barcode entry in fields.yaml.
func ExtractBarcode(text string) *string {
	return Default().ExtractField(FieldBarcode, text).String
}

// onlyDigits drops every non-digit byte.
func onlyDigits(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b = append(b, s[i])
		}
	}
	return string(b)
}
