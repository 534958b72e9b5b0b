package styled

import (
	"errors"
	"testing"
)

func TestStyleFlagsString(t *testing.T) {
	tests := []struct {
		flags StyleFlags
		want  string
	}{
		{NoStyle, "none"},
		{Bold, "bold"},
		{Bold | Italic, "bold|italic"},
		{AllStyles, "bold|italic|underline|strikethrough|color"},
	}
	for _, tt := range tests {
		if got := tt.flags.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestStyleFlagsHasWithWithout(t *testing.T) {
	f := Bold.With(Italic)
	if !f.Has(Bold|Italic) || f.Has(Underline) {
		t.Errorf("unexpected flags %s", f)
	}
	if f.Without(Bold) != Italic {
		t.Errorf("expected italic, got %s", f.Without(Bold))
	}
}

func TestParseStyleFlag(t *testing.T) {
	for name, want := range map[string]StyleFlags{
		"bold": Bold, "b": Bold, "italic": Italic, "u": Underline,
		"strike": StrikeThrough, "color": Color,
	} {
		got, err := ParseStyleFlag(name)
		if err != nil || got != want {
			t.Errorf("ParseStyleFlag(%q): expected %s, got %s (%v)", name, want, got, err)
		}
	}
	if _, err := ParseStyleFlag("blink"); !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("expected ErrUnknownStyle, got %v", err)
	}
}

func TestRGB(t *testing.T) {
	black := RGB(0, 0, 0)
	if black == NoColor {
		t.Error("opaque black must differ from no color")
	}
	c := RGB(0x12, 0x34, 0x56)
	if c.R() != 0x12 || c.G() != 0x34 || c.B() != 0x56 {
		t.Errorf("unexpected components of %s", c)
	}
	if c.Hex() != "#123456" {
		t.Errorf("expected #123456, got %s", c.Hex())
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want RGBColor
	}{
		{"#ff0000", RGB(255, 0, 0)},
		{"#FF8000", RGB(255, 128, 0)},
		{"#0f0", RGB(0, 255, 0)},
		{"#000000", RGB(0, 0, 0)},
		{"red", RGB(255, 0, 0)},
		{"Navy", RGB(0, 0, 128)},
		{"black", RGB(0, 0, 0)},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q): expected %s, got %s", tt.in, tt.want, got)
		}
	}

	for _, bad := range []string{"", "rojo", "#12", "123456"} {
		if _, err := ParseColor(bad); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseColor(%q): expected ErrInvalidColor, got %v", bad, err)
		}
	}
}

func TestStyleEqual(t *testing.T) {
	a := Style{Flags: Bold, Color: RGB(1, 1, 1)}
	b := Style{Flags: Bold}
	if !a.Equal(b) {
		t.Error("color should be ignored without the Color flag")
	}
	a.Flags |= Color
	b.Flags |= Color
	if a.Equal(b) {
		t.Error("colors should be compared with the Color flag")
	}
}
