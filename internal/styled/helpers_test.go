package styled

import "testing"

// checkInvariant fails the test when text and styles are out of step.
func checkInvariant(t *testing.T, s *String) {
	t.Helper()
	if got := s.rs().Len(); got != len(s.text) {
		t.Fatalf("text length %d, style length %d", len(s.text), got)
	}
	if c := s.rs().Cap(); c < s.rs().Len() {
		t.Fatalf("capacity %d below length %d", c, s.rs().Len())
	}
}

// flagsOf returns the flags of every character.
func flagsOf(s *String) []StyleFlags {
	out := make([]StyleFlags, s.Len())
	for i := range out {
		out[i] = s.FlagsAt(i)
	}
	return out
}

// colorsOf returns the raw color of every character.
func colorsOf(s *String) []RGBColor {
	out := make([]RGBColor, s.Len())
	for i := range out {
		out[i] = s.StyleAt(i).Color
	}
	return out
}

// rainbow returns text where character i has color RGB(0, 0, i+1), so the
// origin of every character can be traced through an edit.
func rainbow(text string) *String {
	s := New(text)
	for i := 0; i < s.Len(); i++ {
		s.SetColor(i, 1, RGB(0, 0, uint8(i+1)))
	}
	return s
}

// origins maps every character of a String built from rainbow back to its
// source index, or -1 when it carries no color.
func origins(s *String) []int {
	out := make([]int, s.Len())
	for i := range out {
		c := s.ColorAt(i)
		if c == NoColor {
			out[i] = -1
			continue
		}
		out[i] = int(c.B()) - 1
	}
	return out
}
