package forms

// CodeLength is the number of digits in a verification code.
const CodeLength = 6

// ValidCode reports whether s is exactly CodeLength digits.
func ValidCode(s string) bool {
	if len(s) != CodeLength {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
