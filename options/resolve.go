package options

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// floatPrefix matches the longest numeric prefix of a value, mirroring the
// permissive parser the endpoint has always used: "64px" parses as 64.
var floatPrefix = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`)

// Resolve maps a raw query into a fully populated Options record. It never
// fails: absent keys fall back to defaults, unparsable numbers fall back to
// defaults, out-of-range numbers are clamped, and untrusted color tokens are
// replaced wholesale. Business rules (script/font compatibility, display
// length limits) are not enforced here.
func Resolve(query url.Values) Options {
	var o Options

	o.Bold = query.Get("bold") == "true"
	o.Rounded = query.Get("rounded") == "true"
	o.Oblique = query.Get("oblique") == "true"
	o.Reverse = query.Get("reverse") == "true"
	o.Shadow = query.Get("shadow") == "true"
	// Uppercase is the one boolean that defaults on.
	o.Uppercase = query.Get("uppercase") != "false"

	o.Blur = clamp(MinBlur, MaxBlur, numeric(query, "blur", DefaultBlur))
	o.BorderWidth = clamp(MinBorderWidth, MaxBorderWidth, numeric(query, "border-width", DefaultBorderWidth))
	o.FontSize = clamp(MinFontSize, MaxFontSize, numeric(query, "font-size", DefaultFontSize))
	o.Opacity = clamp(MinOpacity, MaxOpacity, numeric(query, "opacity", DefaultOpacity))
	o.Rotate = clamp(MinRotate, MaxRotate, numeric(query, "rotate", DefaultRotate))
	o.Size = clamp(MinSize, MaxSize, numeric(query, "size", DefaultSize))

	o.Background = resolveColor(query.Get("background"), DefaultBackground)
	o.Color = resolveColor(query.Get("color"), DefaultColor)
	if b := query.Get("border"); IsHex(b) {
		hex := "#" + b
		o.Border = &hex
	}

	o.BorderStyle = resolveBorderStyle(query.Get("border-style"))
	o.FontFamily = resolveFontFamily(query.Get("font-family"))
	o.Format = resolveFormat(query.Get("format"))

	name := query.Get("name")
	if name == "" {
		name = DefaultName
	}
	sanitized := Sanitize(name)

	o.Length = resolveLength(query.Get("length"), sanitized)
	o.Name = TransformName(sanitized, o.Length, o.Uppercase, o.Reverse)

	return o
}

// numeric reads a float parameter. The historical contract treats any falsy
// parse result as absent: parse failures, NaN and a literal 0 all substitute
// the default. A caller-supplied zero is therefore indistinguishable from a
// missing parameter; that behavior is load-bearing and preserved.
func numeric(query url.Values, key string, def float64) float64 {
	v := parseFloat(query.Get(key))
	if math.IsNaN(v) || v == 0 {
		return def
	}
	return v
}

// parseFloat parses the longest numeric prefix of s, returning NaN when no
// prefix parses.
func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	prefix := floatPrefix.FindString(s)
	if prefix == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// clamp bounds v to [min, max].
func clamp(min, max, v float64) float64 {
	return math.Max(min, math.Min(max, v))
}

// resolveColor gates a user color token through IsHex. Invalid or absent
// tokens resolve to the fixed default, never to a partial value.
func resolveColor(token, def string) string {
	if IsHex(token) {
		return "#" + token
	}
	return "#" + def
}

func resolveBorderStyle(v string) BorderStyle {
	switch BorderStyle(v) {
	case BorderDashed, BorderDotted:
		return BorderStyle(v)
	default:
		return BorderSolid
	}
}

func resolveFontFamily(v string) FontFamily {
	switch FontFamily(v) {
	case FontMono, FontSerif:
		return FontFamily(v)
	default:
		return FontSans
	}
}

func resolveFormat(v string) Format {
	if Format(v) == FormatPNG {
		return FormatPNG
	}
	return FormatSVG
}

// resolveLength turns the raw length parameter into a non-negative rune
// count. The "full" sentinel resolves to the sanitized name's length before
// any transformation, so the first+last rule still applies against it.
func resolveLength(raw, sanitized string) int {
	if raw == "" {
		raw = DefaultLength
	}
	if raw == "full" {
		return utf8.RuneCountInString(sanitized)
	}
	v := parseFloat(raw)
	if math.IsNaN(v) {
		return 0
	}
	n := int(math.Round(v))
	if n < 0 {
		return 0
	}
	return n
}
