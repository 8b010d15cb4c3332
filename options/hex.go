package options

// IsHex reports whether s is a non-empty string of hexadecimal digits.
// User-supplied color tokens are only trusted when they pass this check;
// callers substitute a fixed default on failure, never a sanitized variant,
// so arbitrary input can never reach the rendered stylesheet.
func IsHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
