package styled

// String is text with one Style per character. Characters are runes.
//
// A String exclusively owns its buffers; every copy is deep. A String is not
// safe for concurrent mutation.
type String struct {
	text []rune
	runs *RunArray
}

// New creates an unstyled String.
func New(text string) *String {
	return NewStyled(text, NoStyle, NoColor)
}

// NewStyled creates a String whose characters all share one style.
func NewStyled(text string, flags StyleFlags, color RGBColor) *String {
	s := &String{}
	s.SetText(text, flags, color)
	return s
}

// FromRunes creates an unstyled String from runes. The slice is copied.
func FromRunes(r []rune) *String {
	s := &String{text: append([]rune(nil), r...)}
	s.runs = NewRunArray(len(s.text))
	return s
}

// SetText replaces the contents with uniformly styled text.
func (s *String) SetText(text string, flags StyleFlags, color RGBColor) {
	s.text = []rune(text)
	s.runs = NewUniformRunArray(len(s.text), flags, color)
}

// Text returns the text without styles.
func (s *String) Text() string {
	return string(s.text)
}

// String implements fmt.Stringer and returns the plain text.
func (s *String) String() string {
	return string(s.text)
}

// Runes returns a copy of the characters.
func (s *String) Runes() []rune {
	return append([]rune(nil), s.text...)
}

// Len returns the number of characters.
func (s *String) Len() int {
	return len(s.text)
}

// IsEmpty reports whether the String has no characters.
func (s *String) IsEmpty() bool {
	return len(s.text) == 0
}

// At returns the character at index i, or 0 when out of range.
func (s *String) At(i int) rune {
	if i < 0 || i >= len(s.text) {
		return 0
	}
	return s.text[i]
}

// StyleAt returns the style at index i.
func (s *String) StyleAt(i int) Style {
	return s.rs().At(i)
}

// FlagsAt returns the style flags at index i, or NoStyle when out of range.
func (s *String) FlagsAt(i int) StyleFlags {
	return s.rs().At(i).Flags
}

// ColorAt returns the color at index i. It is NoColor unless the Color flag
// is set there.
func (s *String) ColorAt(i int) RGBColor {
	return s.rs().At(i).EffectiveColor()
}

// CumulativeFlags returns the union of the flags of all characters.
func (s *String) CumulativeFlags() StyleFlags {
	var acc StyleFlags
	runs := s.rs()
	for i := range s.text {
		acc |= runs.flags[i]
		if acc == AllStyles {
			break
		}
	}
	return acc
}

// HasFlags reports whether every flag in f is set somewhere in the string,
// not necessarily on the same character.
func (s *String) HasFlags(f StyleFlags) bool {
	var acc StyleFlags
	runs := s.rs()
	for i := range s.text {
		acc |= runs.flags[i]
		if acc&f == f {
			return true
		}
	}
	return false
}

// Equal reports whether both strings have the same text and styles.
func (s *String) Equal(o *String) bool {
	if o == nil || len(s.text) != len(o.text) {
		return false
	}
	for i := range s.text {
		if s.text[i] != o.text[i] || !s.rs().At(i).Equal(o.rs().At(i)) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (s *String) Clone() *String {
	return &String{
		text: append([]rune(nil), s.text...),
		runs: s.rs().Clone(),
	}
}

// Left returns the first n characters. n beyond the length returns a copy.
func (s *String) Left(n int) *String {
	if n < 0 || n > len(s.text) {
		n = len(s.text)
	}
	return s.slice(0, n)
}

// Right returns the last n characters.
func (s *String) Right(n int) *String {
	if n < 0 || n > len(s.text) {
		n = len(s.text)
	}
	return s.slice(len(s.text)-n, n)
}

// Mid returns n characters starting at index. A negative n means "to the
// end"; a negative index shortens n accordingly.
func (s *String) Mid(index, n int) *String {
	if index < 0 {
		if n >= 0 {
			n += index
			if n < 0 {
				n = 0
			}
		}
		index = 0
	}
	if index >= len(s.text) {
		return New("")
	}
	return s.slice(index, s.span(index, n))
}

func (s *String) slice(index, n int) *String {
	out := &String{text: append([]rune(nil), s.text[index:index+n]...)}
	out.runs = NewRunArray(n)
	out.runs.CopyFrom(0, n, s.rs(), index)
	return out
}

// span clamps n to the characters available from index. Negative n means
// "to the end".
func (s *String) span(index, n int) int {
	if n < 0 || index+n > len(s.text) {
		return len(s.text) - index
	}
	return n
}

// swap replaces both buffers at once.
func (s *String) swap(text []rune, runs *RunArray) {
	s.text = text
	s.runs = runs
}

// rs returns the style buffer, allocating it for a zero String.
func (s *String) rs() *RunArray {
	if s.runs == nil {
		s.runs = &RunArray{}
	}
	return s.runs
}
