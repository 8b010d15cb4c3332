package options

import "testing"

func TestIsHex(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"1a2B3c", true},
		{"DDDDDD", true},
		{"0", true},
		{"xyz", false},
		{"", false},
		{"12 34", false},
		{"#ffffff", false},
	}
	for _, c := range cases {
		if got := IsHex(c.in); got != c.want {
			t.Errorf("IsHex(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSanitize_SpacesBecomeDelimiter(t *testing.T) {
	if got := Sanitize("Jane Smith"); got != "Jane+Smith" {
		t.Fatalf("got %q, want %q", got, "Jane+Smith")
	}
}

func TestSanitize_StripsSupplementaryPlaneEmoji(t *testing.T) {
	if got := Sanitize("Jo\U0001F600hn"); got != "John" {
		t.Fatalf("got %q, want %q", got, "John")
	}
	// BMP symbols survive; only surrogate-pair code points are covered.
	if got := Sanitize("Jo❤hn"); got != "Jo❤hn" {
		t.Fatalf("got %q, want %q", got, "Jo❤hn")
	}
}

func TestTransformName(t *testing.T) {
	cases := []struct {
		name      string
		length    int
		uppercase bool
		reverse   bool
		want      string
	}{
		{"John+Doe", 2, true, false, "JD"},
		{"John+Doe", 2, true, true, "DJ"},
		{"John+Doe", 1, true, false, "J"},
		{"John+Doe", 4, true, false, "JDOE"},
		{"Jane+Smith", 3, false, true, "SmJ"},
		{"Madonna", 3, false, false, "Mad"},
		{"Madonna", 3, true, false, "MAD"},
		{"Madonna", 100, false, false, "Madonna"},
		// Parts beyond the second are ignored.
		{"John+Paul+Jones", 5, false, false, "JPaul"},
		// Non-positive lengths contribute nothing.
		{"John+Doe", 0, false, false, ""},
		{"Madonna", 0, false, false, ""},
		// Empty sides slice safely.
		{"John+", 3, false, false, "J"},
		{"+Doe", 3, false, false, "Do"},
	}
	for _, c := range cases {
		got := TransformName(c.name, c.length, c.uppercase, c.reverse)
		if got != c.want {
			t.Errorf("TransformName(%q, %d, %v, %v) = %q, want %q",
				c.name, c.length, c.uppercase, c.reverse, got, c.want)
		}
	}
}

func TestTransformName_MultiByte(t *testing.T) {
	// Truncation counts runes, not bytes.
	if got := TransformName("サトウ", 2, false, false); got != "サト" {
		t.Fatalf("got %q, want %q", got, "サト")
	}
}
