package styled

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// StyleFlags is a set of per-character text attributes.
type StyleFlags uint8

// Style flags.
const (
	Bold StyleFlags = 1 << iota
	Italic
	Underline
	StrikeThrough
	// Color marks the character's Color value as meaningful.
	Color

	NoStyle   StyleFlags = 0
	AllStyles            = Bold | Italic | Underline | StrikeThrough | Color
)

// Has reports whether all flags in f are set.
func (s StyleFlags) Has(f StyleFlags) bool {
	return s&f == f
}

// With returns s with f added.
func (s StyleFlags) With(f StyleFlags) StyleFlags {
	return s | f
}

// Without returns s with f removed.
func (s StyleFlags) Without(f StyleFlags) StyleFlags {
	return s &^ f
}

// String returns a readable list of the flags, e.g. "bold|italic".
func (s StyleFlags) String() string {
	if s == NoStyle {
		return "none"
	}
	names := []struct {
		f    StyleFlags
		name string
	}{
		{Bold, "bold"},
		{Italic, "italic"},
		{Underline, "underline"},
		{StrikeThrough, "strikethrough"},
		{Color, "color"},
	}
	out := ""
	for _, n := range names {
		if s&n.f == 0 {
			continue
		}
		if out != "" {
			out += "|"
		}
		out += n.name
	}
	return out
}

// ParseStyleFlag parses a single flag name as used in configuration files.
func ParseStyleFlag(name string) (StyleFlags, error) {
	switch name {
	case "bold", "b":
		return Bold, nil
	case "italic", "i":
		return Italic, nil
	case "underline", "u":
		return Underline, nil
	case "strikethrough", "strike", "s":
		return StrikeThrough, nil
	case "color":
		return Color, nil
	}
	return NoStyle, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
}

// RGBColor is a 32-bit ARGB color value. Zero means "no color".
type RGBColor uint32

// NoColor is the zero color.
const NoColor RGBColor = 0

// RGB builds an opaque color. Opaque black is distinct from NoColor.
func RGB(r, g, b uint8) RGBColor {
	return RGBColor(0xFF000000 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// R returns the red component.
func (c RGBColor) R() uint8 { return uint8(c >> 16) }

// G returns the green component.
func (c RGBColor) G() uint8 { return uint8(c >> 8) }

// B returns the blue component.
func (c RGBColor) B() uint8 { return uint8(c) }

// Hex returns the color as lowercase "#rrggbb".
func (c RGBColor) Hex() string {
	cf := colorful.Color{
		R: float64(c.R()) / 255,
		G: float64(c.G()) / 255,
		B: float64(c.B()) / 255,
	}
	return cf.Hex()
}

// String implements fmt.Stringer.
func (c RGBColor) String() string {
	if c == NoColor {
		return "none"
	}
	return c.Hex()
}

// namedColors holds the CSS basic color keywords plus a few common
// extended ones.
var namedColors = map[string]RGBColor{
	"black":   RGB(0x00, 0x00, 0x00),
	"silver":  RGB(0xc0, 0xc0, 0xc0),
	"gray":    RGB(0x80, 0x80, 0x80),
	"grey":    RGB(0x80, 0x80, 0x80),
	"white":   RGB(0xff, 0xff, 0xff),
	"maroon":  RGB(0x80, 0x00, 0x00),
	"red":     RGB(0xff, 0x00, 0x00),
	"purple":  RGB(0x80, 0x00, 0x80),
	"fuchsia": RGB(0xff, 0x00, 0xff),
	"magenta": RGB(0xff, 0x00, 0xff),
	"green":   RGB(0x00, 0x80, 0x00),
	"lime":    RGB(0x00, 0xff, 0x00),
	"olive":   RGB(0x80, 0x80, 0x00),
	"yellow":  RGB(0xff, 0xff, 0x00),
	"navy":    RGB(0x00, 0x00, 0x80),
	"blue":    RGB(0x00, 0x00, 0xff),
	"teal":    RGB(0x00, 0x80, 0x80),
	"aqua":    RGB(0x00, 0xff, 0xff),
	"cyan":    RGB(0x00, 0xff, 0xff),
	"orange":  RGB(0xff, 0xa5, 0x00),
	"pink":    RGB(0xff, 0xc0, 0xcb),
	"brown":   RGB(0xa5, 0x2a, 0x2a),
	"gold":    RGB(0xff, 0xd7, 0x00),
	"violet":  RGB(0xee, 0x82, 0xee),
}

// ParseColor parses "#rrggbb", "#rgb" or a CSS color name such as "red"
// into an opaque color. Names are case-insensitive.
func ParseColor(s string) (RGBColor, error) {
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	cf, err := colorful.Hex(s)
	if err != nil {
		return NoColor, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	r, g, b := cf.RGB255()
	return RGB(r, g, b), nil
}

// Style is the attribute bundle of one character.
type Style struct {
	Flags StyleFlags
	Color RGBColor
}

// Equal reports whether two styles render identically. The color is only
// compared when the Color flag is set.
func (s Style) Equal(o Style) bool {
	if s.Flags != o.Flags {
		return false
	}
	return s.Flags&Color == 0 || s.Color == o.Color
}

// IsZero reports whether the style carries no attributes.
func (s Style) IsZero() bool {
	return s.Flags == NoStyle
}

// EffectiveColor returns the color, or NoColor when the Color flag is unset.
func (s Style) EffectiveColor() RGBColor {
	if s.Flags&Color == 0 {
		return NoColor
	}
	return s.Color
}

// String implements fmt.Stringer.
func (s Style) String() string {
	if s.Flags&Color != 0 {
		return fmt.Sprintf("%s(%s)", s.Flags, s.Color.Hex())
	}
	return s.Flags.String()
}
