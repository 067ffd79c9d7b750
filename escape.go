package locgen

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// CSSEscape escapes s for use as a CSS identifier, following the CSS Object
// Model serialization algorithm behind CSS.escape().
//
// Returns EINVALID if s is not valid UTF-8.
func CSSEscape(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", Errorf(EINVALID, "cannot CSS-escape invalid UTF-8 %q", s)
	}

	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range runes {
		switch {
		case r == 0:
			b.WriteRune(utf8.RuneError)
		case r >= 0x01 && r <= 0x1f, r == 0x7f,
			i == 0 && isDigit(r),
			i == 1 && isDigit(r) && runes[0] == '-':
			writeCodePoint(&b, r)
		case i == 0 && r == '-' && len(runes) == 1:
			b.WriteString(`\-`)
		case r >= 0x80, r == '-', r == '_', isDigit(r),
			r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

// writeCodePoint writes r as a CSS hex escape followed by a space.
func writeCodePoint(b *strings.Builder, r rune) {
	b.WriteByte('\\')
	b.WriteString(strconv.FormatInt(int64(r), 16))
	b.WriteByte(' ')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// EscapeQuotes prefixes every single quote in s with a backslash so it can be
// embedded in a single-quoted locator literal.
//
// XPath 1.0 has no backslash escapes, so the result is not a valid XPath
// literal when s contains a quote. Generated locators depend on this exact
// form and it must stay as is.
func EscapeQuotes(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}

// ValidateInput returns EINVALID if html is empty or only whitespace.
// Callers check this before extracting so that blank input is reported
// rather than silently producing no elements.
func ValidateInput(html string) error {
	if strings.TrimSpace(html) == "" {
		return Errorf(EINVALID, "HTML input is empty")
	}
	return nil
}
