package styled

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// boldItalic returns "ab" with a bold and b italic.
func boldItalic() *String {
	s := New("ab")
	s.SetFlags(0, 1, Bold)
	s.SetFlags(1, 1, Italic)
	return s
}

func TestInsertRune(t *testing.T) {
	s := boldItalic()

	s.InsertRune(1, 'x')
	s.InsertRune(0, 'y')
	s.InsertRune(4, 'z')

	if s.Text() != "yaxbz" {
		t.Fatalf("expected %q, got %q", "yaxbz", s.Text())
	}
	want := []StyleFlags{Bold, Bold, Bold, Italic, Italic}
	if diff := cmp.Diff(want, flagsOf(s)); diff != "" {
		t.Errorf("flags mismatch (-want +got):\n%s", diff)
	}
	checkInvariant(t, s)
}

func TestInsertRuneIntoEmpty(t *testing.T) {
	s := New("")
	s.InsertRune(0, 'q')
	if s.Text() != "q" || s.FlagsAt(0) != NoStyle {
		t.Errorf("expected unstyled %q, got %q with %s", "q", s.Text(), s.FlagsAt(0))
	}
	checkInvariant(t, s)
}

func TestInsert(t *testing.T) {
	s := boldItalic()
	s.Insert(1, "xyz")
	s.Insert(0, "Q")

	if s.Text() != "Qaxyzb" {
		t.Fatalf("expected %q, got %q", "Qaxyzb", s.Text())
	}
	want := []StyleFlags{NoStyle, Bold, Bold, Bold, Bold, Italic}
	if diff := cmp.Diff(want, flagsOf(s)); diff != "" {
		t.Errorf("flags mismatch (-want +got):\n%s", diff)
	}
	checkInvariant(t, s)
}

func TestInsertOutOfRange(t *testing.T) {
	s := boldItalic()
	s.Insert(3, "x")
	s.Insert(-1, "x")
	s.InsertRune(5, 'x')
	s.InsertStyled(9, New("x"))
	if s.Text() != "ab" {
		t.Errorf("expected no-op, got %q", s.Text())
	}
	checkInvariant(t, s)
}

func TestInsertStyledSelf(t *testing.T) {
	s := boldItalic()
	s.InsertStyled(1, s)

	if s.Text() != "aabb" {
		t.Fatalf("expected %q, got %q", "aabb", s.Text())
	}
	want := []StyleFlags{Bold, Bold, Italic, Italic}
	if diff := cmp.Diff(want, flagsOf(s)); diff != "" {
		t.Errorf("flags mismatch (-want +got):\n%s", diff)
	}
	checkInvariant(t, s)
}

func TestAppend(t *testing.T) {
	s := NewStyled("a", Bold, NoColor)
	s.Append("bc")
	s.AppendStyled(NewStyled("d", Italic, NoColor))

	if s.Text() != "abcd" {
		t.Fatalf("expected %q, got %q", "abcd", s.Text())
	}
	want := []StyleFlags{Bold, Bold, Bold, Italic}
	if diff := cmp.Diff(want, flagsOf(s)); diff != "" {
		t.Errorf("flags mismatch (-want +got):\n%s", diff)
	}
	checkInvariant(t, s)
}

func TestReplaceRange(t *testing.T) {
	tests := []struct {
		name     string
		index, n int
		text     string
		want     string
		orig     []int
	}{
		{"single char keeps style", 1, 1, "x", "axc", []int{0, 1, 2}},
		{"grow fills with start style", 0, 2, "xyz", "xyzc", []int{0, 0, 0, 2}},
		{"shrink", 0, 2, "x", "xc", []int{0, 2}},
		{"delete", 1, 1, "", "ac", []int{0, 2}},
		{"length clamped", 1, 10, "Z", "aZ", []int{0, 1}},
		{"negative length to end", 1, -1, "Z", "aZ", []int{0, 1}},
		{"index out of range", 3, 1, "x", "abc", []int{0, 1, 2}},
		{"zero length inserts", 1, 0, "x", "axbc", []int{0, 1, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := rainbow("abc")
			s.ReplaceRange(tt.index, tt.n, tt.text)
			if s.Text() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, s.Text())
			}
			if diff := cmp.Diff(tt.orig, origins(s)); diff != "" {
				t.Errorf("style origins mismatch (-want +got):\n%s", diff)
			}
			checkInvariant(t, s)
		})
	}
}

func TestReplaceRangeStyled(t *testing.T) {
	s := New("hello")
	s.ReplaceRangeStyled(1, 3, NewStyled("EY", Bold, NoColor))

	if s.Text() != "hEYo" {
		t.Fatalf("expected %q, got %q", "hEYo", s.Text())
	}
	want := []StyleFlags{NoStyle, Bold, Bold, NoStyle}
	if diff := cmp.Diff(want, flagsOf(s)); diff != "" {
		t.Errorf("flags mismatch (-want +got):\n%s", diff)
	}
	checkInvariant(t, s)
}

func TestRemove(t *testing.T) {
	s := rainbow("abcdef")
	s.Remove(1, 2)
	if s.Text() != "adef" {
		t.Fatalf("expected %q, got %q", "adef", s.Text())
	}
	if diff := cmp.Diff([]int{0, 3, 4, 5}, origins(s)); diff != "" {
		t.Errorf("style origins mismatch (-want +got):\n%s", diff)
	}

	s.Remove(2, 10)
	s.Remove(-1, 1)
	if s.Text() != "ad" {
		t.Errorf("expected %q, got %q", "ad", s.Text())
	}
	checkInvariant(t, s)
}

func TestTruncateAndClear(t *testing.T) {
	s := rainbow("abcdef")
	s.Truncate(3)
	if s.Text() != "abc" {
		t.Errorf("expected %q, got %q", "abc", s.Text())
	}
	checkInvariant(t, s)

	s.Clear()
	if !s.IsEmpty() || s.rs().Cap() != 0 {
		t.Errorf("expected empty string without storage, got %q cap %d", s.Text(), s.rs().Cap())
	}
	checkInvariant(t, s)
}

func TestSetFlagsOn(t *testing.T) {
	s := NewStyled("abcd", Bold, NoColor)
	s.SetFlagsOn(1, 2, Italic, true)
	want := []StyleFlags{Bold, Bold | Italic, Bold | Italic, Bold}
	if diff := cmp.Diff(want, flagsOf(s)); diff != "" {
		t.Errorf("flags mismatch (-want +got):\n%s", diff)
	}

	s.SetFlagsOn(0, -1, Bold, false)
	want = []StyleFlags{NoStyle, Italic, Italic, NoStyle}
	if diff := cmp.Diff(want, flagsOf(s)); diff != "" {
		t.Errorf("flags mismatch (-want +got):\n%s", diff)
	}
}

func TestSetFlagsAssigns(t *testing.T) {
	s := NewStyled("abc", Bold|Italic, NoColor)
	s.SetFlags(1, 5, Underline)
	want := []StyleFlags{Bold | Italic, Underline, Underline}
	if diff := cmp.Diff(want, flagsOf(s)); diff != "" {
		t.Errorf("flags mismatch (-want +got):\n%s", diff)
	}
}

func TestSetColor(t *testing.T) {
	blue := RGB(0, 0, 255)
	s := NewStyled("abc", Bold, NoColor)
	s.SetColor(0, 2, blue)

	for i := 0; i < 2; i++ {
		if !s.FlagsAt(i).Has(Bold | Color) {
			t.Errorf("character %d: expected bold|color, got %s", i, s.FlagsAt(i))
		}
		if s.ColorAt(i) != blue {
			t.Errorf("character %d: expected %s, got %s", i, blue, s.ColorAt(i))
		}
	}

	s.SetColor(0, 1, NoColor)
	if s.FlagsAt(0) != Bold {
		t.Errorf("expected NoColor to clear the Color flag, got %s", s.FlagsAt(0))
	}
	if s.ColorAt(0) != NoColor {
		t.Errorf("expected no color, got %s", s.ColorAt(0))
	}
}

func TestSetStyle(t *testing.T) {
	red := RGB(255, 0, 0)
	s := New("abc")
	s.SetStyle(1, 1, Style{Flags: Underline | Color, Color: red})
	if got := s.StyleAt(1); got != (Style{Flags: Underline | Color, Color: red}) {
		t.Errorf("unexpected style %s", got)
	}
	if !s.StyleAt(2).IsZero() {
		t.Errorf("expected neighbour untouched, got %s", s.StyleAt(2))
	}
}
