package styled

// Structural edits keep text and styles in lockstep. Out-of-range start
// indexes make an edit a no-op; lengths are clamped to what is available and
// a negative length means "to the end".

// InsertRune inserts ch at index. The new character takes the style of the
// character before index (character 0 when index is 0), or no style when
// the string is empty.
func (s *String) InsertRune(index int, ch rune) {
	if index < 0 || index > len(s.text) {
		return
	}
	runs := s.rs()
	var fill Style
	if len(s.text) > 0 {
		fill = runs.At(max(index-1, 0))
	}

	s.text = insertRunes(s.text, index, []rune{ch})
	runs.Insert(index, 1)
	runs.Fill(index, 1, fill.Flags, fill.Color)
}

// Insert inserts plain text at index. Every inserted character takes the
// style of the character before index; text inserted at index 0 is
// unstyled.
func (s *String) Insert(index int, text string) {
	if index < 0 || index > len(s.text) || text == "" {
		return
	}
	r := []rune(text)
	runs := s.rs()
	var fill Style
	if index > 0 {
		fill = runs.At(index - 1)
	}

	s.text = insertRunes(s.text, index, r)
	runs.Insert(index, len(r))
	runs.Fill(index, len(r), fill.Flags, fill.Color)
}

// InsertStyled inserts other at index, keeping other's styles.
func (s *String) InsertStyled(index int, other *String) {
	if other == nil || other.IsEmpty() || index < 0 || index > len(s.text) {
		return
	}
	if s == other {
		other = other.Clone()
	}
	runs := s.rs()

	s.text = insertRunes(s.text, index, other.text)
	runs.Insert(index, len(other.text))
	runs.CopyFrom(index, len(other.text), other.rs(), 0)
}

// Append adds plain text at the end with the style of the last character.
func (s *String) Append(text string) {
	if len(s.text) == 0 {
		s.SetText(text, NoStyle, NoColor)
		return
	}
	s.Insert(len(s.text), text)
}

// AppendStyled adds other at the end, keeping its styles.
func (s *String) AppendStyled(other *String) {
	s.InsertStyled(len(s.text), other)
}

// ReplaceRange replaces n characters at index with plain text.
//
// Replacing exactly one character with one character is a pure character
// substitution and keeps the style. Otherwise the whole replaced range takes
// the style found at index before the edit.
func (s *String) ReplaceRange(index, n int, text string) {
	if index < 0 || index >= len(s.text) {
		return
	}
	n = s.span(index, n)
	r := []rune(text)
	if n == 0 && len(r) == 0 {
		return
	}

	runs := s.rs()
	fill := runs.At(index)
	s.text = replaceRunes(s.text, index, n, r)
	if n != len(r) {
		runs.Resize(index, n, len(r))
	} else if n == 1 {
		return
	}
	runs.Fill(index, len(r), fill.Flags, fill.Color)
}

// ReplaceRangeStyled replaces n characters at index with other, keeping
// other's styles.
func (s *String) ReplaceRangeStyled(index, n int, other *String) {
	if index < 0 || index >= len(s.text) {
		return
	}
	if other == nil {
		other = &String{}
	} else if s == other {
		other = other.Clone()
	}
	n = s.span(index, n)
	if n == 0 && other.IsEmpty() {
		return
	}

	runs := s.rs()
	s.text = replaceRunes(s.text, index, n, other.text)
	if n != len(other.text) {
		runs.Resize(index, n, len(other.text))
	}
	runs.CopyFrom(index, len(other.text), other.rs(), 0)
}

// Remove deletes n characters at index.
func (s *String) Remove(index, n int) {
	if index < 0 || index >= len(s.text) {
		return
	}
	n = s.span(index, n)
	if n == 0 {
		return
	}
	s.text = replaceRunes(s.text, index, n, nil)
	s.rs().Remove(index, n)
}

// Truncate keeps the first n characters.
func (s *String) Truncate(n int) {
	if n < 0 || n >= len(s.text) {
		return
	}
	s.text = s.text[:n:n]
	s.rs().Truncate(n)
}

// Clear removes all characters.
func (s *String) Clear() {
	s.text = nil
	s.rs().Clear()
}

// SetFlags assigns flags to n characters starting at index.
func (s *String) SetFlags(index, n int, flags StyleFlags) {
	if index < 0 || index >= len(s.text) {
		return
	}
	runs := s.rs()
	flags &= AllStyles
	for i, end := index, index+s.span(index, n); i < end; i++ {
		runs.flags[i] = flags
	}
}

// SetFlagsOn sets (on) or clears (!on) flags on n characters starting at
// index, leaving other flags untouched.
func (s *String) SetFlagsOn(index, n int, flags StyleFlags, on bool) {
	if index < 0 || index >= len(s.text) {
		return
	}
	runs := s.rs()
	flags &= AllStyles
	for i, end := index, index+s.span(index, n); i < end; i++ {
		if on {
			runs.flags[i] |= flags
		} else {
			runs.flags[i] &^= flags
		}
	}
}

// SetColor sets the color of n characters starting at index. NoColor clears
// the Color flag; any other value sets it.
func (s *String) SetColor(index, n int, color RGBColor) {
	if index < 0 || index >= len(s.text) {
		return
	}
	runs := s.rs()
	for i, end := index, index+s.span(index, n); i < end; i++ {
		runs.colors[i] = color
		if color == NoColor {
			runs.flags[i] &^= Color
		} else {
			runs.flags[i] |= Color
		}
	}
}

// SetStyle assigns a complete style to n characters starting at index.
func (s *String) SetStyle(index, n int, st Style) {
	if index < 0 || index >= len(s.text) {
		return
	}
	s.rs().Fill(index, s.span(index, n), st.Flags, st.Color)
}

// insertRunes returns dst with src inserted at index. dst is never aliased
// by src because every String owns its own slice.
func insertRunes(dst []rune, index int, src []rune) []rune {
	out := make([]rune, 0, len(dst)+len(src))
	out = append(out, dst[:index]...)
	out = append(out, src...)
	return append(out, dst[index:]...)
}

// replaceRunes returns dst with n runes at index replaced by src.
func replaceRunes(dst []rune, index, n int, src []rune) []rune {
	out := make([]rune, 0, len(dst)-n+len(src))
	out = append(out, dst[:index]...)
	out = append(out, src...)
	return append(out, dst[index+n:]...)
}
