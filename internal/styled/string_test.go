package styled

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNew(t *testing.T) {
	s := New("Hello")
	if s.Text() != "Hello" {
		t.Errorf("expected %q, got %q", "Hello", s.Text())
	}
	if s.Len() != 5 {
		t.Errorf("expected length 5, got %d", s.Len())
	}
	if s.CumulativeFlags() != NoStyle {
		t.Errorf("expected no style, got %s", s.CumulativeFlags())
	}
	checkInvariant(t, s)
}

func TestNewStyledCountsRunes(t *testing.T) {
	s := NewStyled("héllo 😀", Bold, NoColor)
	if s.Len() != 7 {
		t.Errorf("expected 7 characters, got %d", s.Len())
	}
	if s.At(6) != '😀' {
		t.Errorf("expected emoji at 6, got %q", s.At(6))
	}
	for i := 0; i < s.Len(); i++ {
		if s.FlagsAt(i) != Bold {
			t.Errorf("character %d: expected bold, got %s", i, s.FlagsAt(i))
		}
	}
	checkInvariant(t, s)
}

func TestZeroStringIsUsable(t *testing.T) {
	var s String
	if !s.IsEmpty() {
		t.Error("zero String should be empty")
	}
	s.Append("x")
	s.InsertRune(0, 'y')
	if s.Text() != "yx" {
		t.Errorf("expected %q, got %q", "yx", s.Text())
	}
	checkInvariant(t, &s)
}

func TestColorAtRequiresColorFlag(t *testing.T) {
	red := RGB(255, 0, 0)
	s := New("ab")
	s.rs().Set(0, Style{Flags: Bold, Color: red})
	s.SetColor(1, 1, red)

	if got := s.ColorAt(0); got != NoColor {
		t.Errorf("expected no color without the Color flag, got %s", got)
	}
	if got := s.ColorAt(1); got != red {
		t.Errorf("expected %s, got %s", red, got)
	}
}

func TestCumulativeAndHasFlags(t *testing.T) {
	s := New("abc")
	s.SetFlags(0, 1, Bold)
	s.SetFlags(2, 1, Italic|Underline)

	if got := s.CumulativeFlags(); got != Bold|Italic|Underline {
		t.Errorf("expected bold|italic|underline, got %s", got)
	}
	if !s.HasFlags(Bold | Underline) {
		t.Error("expected bold and underline to be present across the string")
	}
	if s.HasFlags(StrikeThrough) {
		t.Error("strikethrough is not present")
	}
}

func TestEqual(t *testing.T) {
	a := New("ab")
	b := New("ab")
	b.rs().Set(0, Style{Color: RGB(1, 2, 3)})
	if !a.Equal(b) {
		t.Error("colors without the Color flag should not affect equality")
	}

	b.SetColor(0, 1, RGB(1, 2, 3))
	if a.Equal(b) {
		t.Error("expected strings with different colors to differ")
	}
	if a.Equal(New("abc")) || a.Equal(nil) {
		t.Error("expected strings of different length to differ")
	}
}

func TestClone(t *testing.T) {
	s := NewStyled("abc", Bold, NoColor)
	c := s.Clone()
	s.Insert(1, "x")
	s.SetFlags(0, -1, Italic)

	if c.Text() != "abc" {
		t.Errorf("clone text changed to %q", c.Text())
	}
	if c.FlagsAt(0) != Bold {
		t.Errorf("clone style changed to %s", c.FlagsAt(0))
	}
}

func TestSlicing(t *testing.T) {
	tests := []struct {
		name string
		fn   func(*String) *String
		text string
		orig []int
	}{
		{"left", func(s *String) *String { return s.Left(2) }, "he", []int{0, 1}},
		{"left beyond", func(s *String) *String { return s.Left(10) }, "hello", []int{0, 1, 2, 3, 4}},
		{"right", func(s *String) *String { return s.Right(3) }, "llo", []int{2, 3, 4}},
		{"mid", func(s *String) *String { return s.Mid(1, 3) }, "ell", []int{1, 2, 3}},
		{"mid to end", func(s *String) *String { return s.Mid(3, -1) }, "lo", []int{3, 4}},
		{"mid negative index", func(s *String) *String { return s.Mid(-1, 3) }, "he", []int{0, 1}},
		{"mid past end", func(s *String) *String { return s.Mid(10, 1) }, "", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(rainbow("hello"))
			if got.Text() != tt.text {
				t.Errorf("expected %q, got %q", tt.text, got.Text())
			}
			if diff := cmp.Diff(tt.orig, origins(got)); diff != "" {
				t.Errorf("style origins mismatch (-want +got):\n%s", diff)
			}
			checkInvariant(t, got)
		})
	}
}
