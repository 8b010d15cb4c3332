package options

import "strings"

// Sanitize normalizes a raw name: ASCII spaces become the '+' delimiter and
// supplementary-plane code points (the class that needs a UTF-16 surrogate
// pair, which covers pictographic emoji) are removed. A literal '+' in the
// input is indistinguishable from an intentional word separator; that
// ambiguity is accepted. Symbols encoded as a single BMP code point are not
// stripped.
func Sanitize(raw string) string {
	spaced := strings.ReplaceAll(raw, " ", "+")

	var b strings.Builder
	b.Grow(len(spaced))
	for _, r := range spaced {
		if r > 0xFFFF {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// TransformName produces the display string from a sanitized name.
//
// A name containing '+' is treated as "first+last": one side contributes
// exactly one character, the other contributes up to length-1 characters
// (zero when length is 1), and reverse swaps which side is which. Parts
// beyond the second are ignored. A name without '+' is simply truncated to
// length characters. Uppercasing, when requested, applies to the whole
// result; it never lowercases.
func TransformName(name string, length int, uppercase, reverse bool) string {
	var result string
	if strings.Contains(name, "+") {
		parts := strings.Split(name, "+")
		n := length - 1
		if length == 1 {
			n = 0
		}
		if reverse {
			result = firstRunes(parts[1], n) + firstRunes(parts[0], 1)
		} else {
			result = firstRunes(parts[0], 1) + firstRunes(parts[1], n)
		}
	} else {
		result = firstRunes(name, length)
	}
	if uppercase {
		return strings.ToUpper(result)
	}
	return result
}

// firstRunes returns the first n runes of s. Values of n at or below zero
// contribute nothing.
func firstRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
