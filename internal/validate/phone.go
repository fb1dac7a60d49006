package validate

import (
	"strings"
	"unicode/utf8"
)

// phoneGroups is the display grouping "+D DDD DD DD DD DDDDD".  The last group
// absorbs digits 11–15; anything past MaxPhoneDigits is dropped.
var phoneGroups = []int{1, 3, 2, 2, 2, 5}

// Digits strips every non-ASCII-digit rune from s.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhone renders the digits of value in the grouped display form.  An
// input without digits formats to "".
func FormatPhone(value string) string {
	digits := Digits(value)
	if digits == "" {
		return ""
	}
	if len(digits) > MaxPhoneDigits {
		digits = digits[:MaxPhoneDigits]
	}

	var b strings.Builder
	b.WriteByte('+')
	pos := 0
	for i, size := range phoneGroups {
		if pos >= len(digits) {
			break
		}
		end := min(pos+size, len(digits))
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(digits[pos:end])
		pos = end
	}
	return b.String()
}

// NormalizePhone returns "+" followed by the raw digits, or "" when value has
// no digits.  This is the form sent to the webhook.
func NormalizePhone(value string) string {
	digits := Digits(value)
	if digits == "" {
		return ""
	}
	return "+" + digits
}

// FormatPhoneInput reformats a live input value and moves the caret by the
// number of characters the formatting inserted or removed.  caret counts runes
// and is clamped to the formatted value.
func FormatPhoneInput(value string, caret int) (string, int) {
	formatted := FormatPhone(value)
	pos := caret + utf8.RuneCountInString(formatted) - utf8.RuneCountInString(value)
	return formatted, max(0, min(pos, utf8.RuneCountInString(formatted)))
}
