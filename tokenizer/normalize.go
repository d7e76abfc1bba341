package tokenizer

import "golang.org/x/text/unicode/norm"

// Normalize returns text in Unicode Normalization Form C, so that composed
// and decomposed spellings of a letter tokenize and intern identically.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return norm.NFC.String(text)
}
