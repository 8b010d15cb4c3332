package options

import (
	"net/url"
	"reflect"
	"testing"
)

func query(pairs ...string) url.Values {
	q := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		q.Set(pairs[i], pairs[i+1])
	}
	return q
}

func TestResolve_Defaults(t *testing.T) {
	o := Resolve(url.Values{})

	if o.Background != "#DDDDDD" {
		t.Errorf("Background = %q", o.Background)
	}
	if o.Color != "#222222" {
		t.Errorf("Color = %q", o.Color)
	}
	if o.Border != nil {
		t.Errorf("Border = %v, want nil", *o.Border)
	}
	if o.BorderStyle != BorderSolid {
		t.Errorf("BorderStyle = %q", o.BorderStyle)
	}
	if o.Format != FormatSVG {
		t.Errorf("Format = %q", o.Format)
	}
	if o.FontFamily != FontSans {
		t.Errorf("FontFamily = %q", o.FontFamily)
	}
	if o.Size != DefaultSize || o.Opacity != 1 || o.Blur != 0 || o.Rotate != 0 {
		t.Errorf("numeric defaults: size=%v opacity=%v blur=%v rotate=%v", o.Size, o.Opacity, o.Blur, o.Rotate)
	}
	if !o.Uppercase {
		t.Error("Uppercase should default to true")
	}
	if o.Bold || o.Rounded || o.Oblique || o.Reverse || o.Shadow {
		t.Error("flag booleans should default to false")
	}
	if o.Length != 2 {
		t.Errorf("Length = %d, want 2", o.Length)
	}
	// Default name "World", truncated to 2 and uppercased.
	if o.Name != "WO" {
		t.Errorf("Name = %q, want %q", o.Name, "WO")
	}
}

func TestResolve_Pure(t *testing.T) {
	q := query("name", "Jane Smith", "size", "128", "border", "ff0000", "length", "full")
	a := Resolve(q)
	b := Resolve(q)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("Resolve is not deterministic:\n%+v\n%+v", a, b)
	}
}

func TestResolve_Clamping(t *testing.T) {
	cases := []struct {
		key   string
		raw   string
		get   func(Options) float64
		want  float64
	}{
		{"size", "4096", func(o Options) float64 { return o.Size }, MaxSize},
		{"size", "1", func(o Options) float64 { return o.Size }, MinSize},
		{"size", "100", func(o Options) float64 { return o.Size }, 100},
		{"rotate", "720", func(o Options) float64 { return o.Rotate }, MaxRotate},
		{"rotate", "-720", func(o Options) float64 { return o.Rotate }, MinRotate},
		{"rotate", "45", func(o Options) float64 { return o.Rotate }, 45},
		{"opacity", "2", func(o Options) float64 { return o.Opacity }, MaxOpacity},
		{"blur", "99", func(o Options) float64 { return o.Blur }, MaxBlur},
		{"font-size", "7", func(o Options) float64 { return o.FontSize }, MaxFontSize},
		{"border-width", "50", func(o Options) float64 { return o.BorderWidth }, MaxBorderWidth},
		{"border-width", "0.01", func(o Options) float64 { return o.BorderWidth }, MinBorderWidth},
	}
	for _, c := range cases {
		o := Resolve(query(c.key, c.raw))
		if got := c.get(o); got != c.want {
			t.Errorf("%s=%s resolved to %v, want %v", c.key, c.raw, got, c.want)
		}
	}
}

func TestResolve_FalsyZeroUsesDefault(t *testing.T) {
	// A literal 0 is indistinguishable from an absent parameter: both take
	// the default. Preserved for compatibility.
	o := Resolve(query("size", "0", "opacity", "0", "font-size", "0"))
	if o.Size != DefaultSize {
		t.Errorf("Size = %v, want default %v", o.Size, DefaultSize)
	}
	if o.Opacity != DefaultOpacity {
		t.Errorf("Opacity = %v, want default %v", o.Opacity, DefaultOpacity)
	}
	if o.FontSize != DefaultFontSize {
		t.Errorf("FontSize = %v, want default %v", o.FontSize, DefaultFontSize)
	}
}

func TestResolve_MalformedNumbersUseDefault(t *testing.T) {
	o := Resolve(query("size", "huge", "rotate", "sideways"))
	if o.Size != DefaultSize {
		t.Errorf("Size = %v, want default", o.Size)
	}
	if o.Rotate != DefaultRotate {
		t.Errorf("Rotate = %v, want default", o.Rotate)
	}
}

func TestResolve_NumericPrefixParses(t *testing.T) {
	o := Resolve(query("size", "128px"))
	if o.Size != 128 {
		t.Errorf("Size = %v, want 128", o.Size)
	}
}

func TestResolve_ColorGating(t *testing.T) {
	o := Resolve(query("background", "not-a-color", "color", "ABC123", "border", "zz"))
	if o.Background != "#DDDDDD" {
		t.Errorf("invalid background = %q, want default", o.Background)
	}
	if o.Color != "#ABC123" {
		t.Errorf("Color = %q", o.Color)
	}
	// Invalid border resolves to nil, not to a default.
	if o.Border != nil {
		t.Errorf("Border = %v, want nil", *o.Border)
	}

	o = Resolve(query("border", "00ff00"))
	if o.Border == nil || *o.Border != "#00ff00" {
		t.Errorf("Border = %v, want #00ff00", o.Border)
	}
}

func TestResolve_FullLengthSentinel(t *testing.T) {
	// "full" resolves to the sanitized name's rune count before the
	// transform, so the first+last rule applies against it: one initial
	// plus length-1 characters of the surname.
	o := Resolve(query("name", "Jane Smith", "length", "full", "uppercase", "false"))
	if o.Length != 10 { // "Jane+Smith"
		t.Fatalf("Length = %d, want 10", o.Length)
	}
	if o.Name != "JSmith" {
		t.Errorf("Name = %q, want %q", o.Name, "JSmith")
	}
}

func TestResolve_LengthEdgeCases(t *testing.T) {
	if o := Resolve(query("length", "abc")); o.Name != "" {
		t.Errorf("unparsable length: Name = %q, want empty", o.Name)
	}
	if o := Resolve(query("length", "-4")); o.Length != 0 {
		t.Errorf("negative length = %d, want 0", o.Length)
	}
	if o := Resolve(query("length", "2.6")); o.Length != 3 {
		t.Errorf("Length = %d, want rounded 3", o.Length)
	}
}

func TestResolve_EnumFallbacks(t *testing.T) {
	o := Resolve(query("border-style", "wavy", "font-family", "comic", "format", "webp"))
	if o.BorderStyle != BorderSolid {
		t.Errorf("BorderStyle = %q", o.BorderStyle)
	}
	if o.FontFamily != FontSans {
		t.Errorf("FontFamily = %q", o.FontFamily)
	}
	if o.Format != FormatSVG {
		t.Errorf("Format = %q", o.Format)
	}
}

func TestResolve_TransformWiring(t *testing.T) {
	o := Resolve(query("name", "John Doe", "length", "2"))
	if o.Name != "JD" {
		t.Errorf("Name = %q, want JD", o.Name)
	}
	o = Resolve(query("name", "John Doe", "length", "2", "reverse", "true"))
	if o.Name != "DJ" {
		t.Errorf("Name = %q, want DJ", o.Name)
	}
	o = Resolve(query("name", "Madonna", "length", "3", "uppercase", "false"))
	if o.Name != "Mad" {
		t.Errorf("Name = %q, want Mad", o.Name)
	}
}
