package solrquery

import "strings"

// reserved characters that get backslash-escaped in query text.
// the character set and the strip-then-escape order are part of the
// wire format and must not change.
const reservedChars = `+\&|!(){}[]^~?*:;`

// EscapeInput makes arbitrary input safe for inclusion in query text.
// Hyphens are always stripped. Blanks are escaped if escapeBlanks is
// true, otherwise they are stripped as well. Every reserved character
// is prefixed with a backslash.
func EscapeInput(input string, escapeBlanks bool) string {
	var out strings.Builder

	out.Grow(len(input) + 8)

	for _, r := range input {
		switch {
		case r == '-':
			// stripped

		case r == ' ':
			if escapeBlanks == true {
				out.WriteByte('\\')
				out.WriteByte(' ')
			}

		case strings.ContainsRune(reservedChars, r):
			out.WriteByte('\\')
			out.WriteRune(r)

		default:
			out.WriteRune(r)
		}
	}

	return out.String()
}

// EscapeQuotes backslash-escapes every double quote in the input.
func EscapeQuotes(input string) string {
	return strings.ReplaceAll(input, `"`, `\"`)
}

// EscapeAll escapes reserved characters, blanks and quotes.
// Escaping is not idempotent; escape each raw input exactly once.
func EscapeAll(input string) string {
	return EscapeQuotes(EscapeInput(input, true))
}
