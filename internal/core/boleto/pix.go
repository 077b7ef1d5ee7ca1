package boleto

// ExtractPix returns the first PIX copy-and-paste payload, verbatim. The
// payload is not checked against the EMV layout or its CRC.
func ExtractPix(text string) *string {
	return Default().ExtractField(FieldPixQrCodeText, text).String
}
