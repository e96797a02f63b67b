package forms

import "strings"

// PhoneDigitCount is the number of digits in a valid phone number.
const PhoneDigitCount = 10

// PhoneDigits strips every non-digit character from s.
func PhoneDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhone renders the digits of s progressively as (DDD) DDD-DDDD.
// Digits past the tenth are dropped, so the result is at most 14 characters.
func FormatPhone(s string) string {
	d := PhoneDigits(s)
	if len(d) > PhoneDigitCount {
		d = d[:PhoneDigitCount]
	}
	switch {
	case len(d) == 0:
		return ""
	case len(d) <= 3:
		return "(" + d
	case len(d) <= 6:
		return "(" + d[:3] + ") " + d[3:]
	default:
		return "(" + d[:3] + ") " + d[3:6] + "-" + d[6:]
	}
}

// TrimCountryCode drops the US country code from a pasted number: a leading
// "+1", or a leading 1 in front of ten more digits.
func TrimCountryCode(s string) string {
	t := strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(t, "+1"); ok {
		return rest
	}
	if d := PhoneDigits(t); len(d) == PhoneDigitCount+1 && d[0] == '1' {
		return d[1:]
	}
	return s
}

// ValidPhone reports whether s reduces to exactly ten digits.
func ValidPhone(s string) bool {
	return len(PhoneDigits(s)) == PhoneDigitCount
}
