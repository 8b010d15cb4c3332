package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/glyphbox/initicon/options"
)

// Styling constants shared with the historical renderer: the effective font
// size is fontSize*size/20 rem, border width is measured in halves of an em.
const (
	fontSizeDivisor    = 20.0
	borderWidthDivisor = 2.0
	remPixels          = 16.0
)

// noto maps a font family to the concrete typeface referenced in the SVG.
var noto = map[options.FontFamily]string{
	options.FontSans:  "Noto Sans JP",
	options.FontMono:  "Noto Sans Mono",
	options.FontSerif: "Noto Serif JP",
}

// FamilyName returns the concrete typeface for a resolved font family.
func FamilyName(f options.FontFamily) string {
	if name, ok := noto[f]; ok {
		return name
	}
	return noto[options.FontSans]
}

var nameEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// buildSVG emits the avatar document for a resolved configuration. Colors
// have passed the hex gate during resolution, so they are embedded verbatim;
// the display name is XML-escaped. fontFace, when non-empty, is a @font-face
// CSS rule embedded so standalone SVG consumers resolve the typeface.
func buildSVG(o options.Options, fontFace string) string {
	size := o.Size
	fontPx := o.FontSize * o.Size * remPixels / fontSizeDivisor
	center := size / 2

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		num(size), num(size), num(size), num(size))

	if fontFace != "" {
		b.WriteString("<style>")
		b.WriteString(fontFace)
		b.WriteString("</style>")
	}

	writeFilters(&b, o, fontPx)

	fmt.Fprintf(&b, `<g opacity="%s">`, num(o.Opacity))
	writeBackground(&b, o, fontPx)
	writeText(&b, o, fontPx, center)
	b.WriteString("</g></svg>")

	return b.String()
}

// writeFilters emits the blur/shadow filter definition when either effect is
// active. Both effects scale with the font size (em units in the original
// stylesheet).
func writeFilters(b *strings.Builder, o options.Options, fontPx float64) {
	if o.Blur == 0 && !o.Shadow {
		return
	}
	b.WriteString(`<defs><filter id="fx" x="-50%" y="-50%" width="200%" height="200%">`)
	if o.Shadow {
		// 0 0 0.1em rgba(0,0,0,0.5)
		fmt.Fprintf(b, `<feDropShadow dx="0" dy="0" stdDeviation="%s" flood-color="rgba(0,0,0,0.5)"/>`,
			num(0.1*fontPx))
	}
	if o.Blur > 0 {
		fmt.Fprintf(b, `<feGaussianBlur stdDeviation="%s"/>`, num(o.Blur/10*fontPx))
	}
	b.WriteString("</filter></defs>")
}

func writeBackground(b *strings.Builder, o options.Options, fontPx float64) {
	size := o.Size

	var rx string
	if o.Rounded {
		rx = ` rx="50%" ry="50%"`
	}

	if o.Border == nil {
		fmt.Fprintf(b, `<rect width="%s" height="%s" fill="%s"%s/>`, num(size), num(size), o.Background, rx)
		return
	}

	// Stroke width is borderWidth/2 em; the rect is inset by half the
	// stroke so the border stays inside the canvas.
	sw := o.BorderWidth / borderWidthDivisor * fontPx
	inset := sw / 2
	fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s" stroke="%s" stroke-width="%s"%s%s/>`,
		num(inset), num(inset), num(size-sw), num(size-sw),
		o.Background, *o.Border, num(sw), dashArray(o.BorderStyle, sw), rx)
}

// dashArray renders the stroke pattern for non-solid border styles.
func dashArray(style options.BorderStyle, sw float64) string {
	switch style {
	case options.BorderDashed:
		return fmt.Sprintf(` stroke-dasharray="%s %s"`, num(sw*2), num(sw))
	case options.BorderDotted:
		return fmt.Sprintf(` stroke-dasharray="%s %s" stroke-linecap="round"`, num(0.01), num(sw*2))
	default:
		return ""
	}
}

func writeText(b *strings.Builder, o options.Options, fontPx, center float64) {
	weight := "normal"
	if o.Bold {
		weight = "bold"
	}

	transforms := make([]string, 0, 2)
	if o.Rotate != 0 {
		transforms = append(transforms, fmt.Sprintf("rotate(%s %s %s)", num(o.Rotate), num(center), num(center)))
	}
	if o.Oblique {
		transforms = append(transforms, "skewX(-10)")
	}
	var transform string
	if len(transforms) > 0 {
		transform = fmt.Sprintf(` transform="%s"`, strings.Join(transforms, " "))
	}

	var filter string
	if o.Blur > 0 || o.Shadow {
		filter = ` filter="url(#fx)"`
	}

	fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="middle" dominant-baseline="central" fill="%s" font-family="%s" font-size="%s" font-weight="%s"%s%s>%s</text>`,
		num(center), num(center), o.Color, FamilyName(o.FontFamily), num(fontPx), weight,
		transform, filter, nameEscaper.Replace(o.Name))
}

// num formats a float compactly, without trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
