// Package options turns the raw avatar query string into a canonical,
// range-bounded configuration. Resolution is a total, pure function: every
// recognized parameter has a hard default, malformed values degrade to that
// default, and two identical queries always produce byte-identical Options.
// That determinism is what makes the configuration fingerprint usable as a
// cache key.
package options

// Format selects the rendered image encoding.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// FontFamily selects the typeface group used for the display name.
type FontFamily string

const (
	FontSans  FontFamily = "sans"
	FontMono  FontFamily = "mono"
	FontSerif FontFamily = "serif"
)

// BorderStyle selects how the avatar border is stroked.
type BorderStyle string

const (
	BorderSolid  BorderStyle = "solid"
	BorderDashed BorderStyle = "dashed"
	BorderDotted BorderStyle = "dotted"
)

// Options is the resolved avatar configuration. Field order is fixed; the
// JSON encoding of this struct is the canonical serialization hashed by
// Fingerprint.
type Options struct {
	Background  string      `json:"background"`
	Blur        float64     `json:"blur"`
	Bold        bool        `json:"bold"`
	Border      *string     `json:"border"`
	BorderStyle BorderStyle `json:"borderStyle"`
	BorderWidth float64     `json:"borderWidth"`
	Color       string      `json:"color"`
	FontFamily  FontFamily  `json:"fontFamily"`
	FontSize    float64     `json:"fontSize"`
	Format      Format      `json:"format"`
	Length      int         `json:"length"`
	Name        string      `json:"name"`
	Oblique     bool        `json:"oblique"`
	Opacity     float64     `json:"opacity"`
	Reverse     bool        `json:"reverse"`
	Rotate      float64     `json:"rotate"`
	Rounded     bool        `json:"rounded"`
	Shadow      bool        `json:"shadow"`
	Size        float64     `json:"size"`
	Uppercase   bool        `json:"uppercase"`
}

// Defaults for every recognized parameter. Numeric defaults must lie inside
// their clamp range because clamping runs after default substitution.
const (
	DefaultName       = "World"
	DefaultBackground = "DDDDDD"
	DefaultColor      = "222222"
	DefaultLength     = "2"

	DefaultBorderWidth = 1.0
	DefaultFontSize    = 1.0
	DefaultBlur        = 0.0
	DefaultOpacity     = 1.0
	DefaultRotate      = 0.0
	DefaultSize        = 64.0
)

// Clamp bounds: values outside land exactly on the boundary.
const (
	MinBorderWidth = 0.1
	MaxBorderWidth = 5.0

	MinFontSize = 0.1
	MaxFontSize = 2.0

	MinBlur = 0.0
	MaxBlur = 10.0

	MinOpacity = 0.0
	MaxOpacity = 1.0

	MinRotate = -360.0
	MaxRotate = 360.0

	MinSize = 16.0
	MaxSize = 512.0
)
