package styled

// Replace substitutes every match of t with r and returns the number of
// matches. Styles follow the rules of Materialize. An invalid pattern
// leaves the string untouched and returns 0.
func (s *String) Replace(t Target, r Replacement) int {
	if t.kind != targetRegexp && len(t.literal) == 1 && r.styled == nil && len(r.text) == 1 {
		return s.substituteRune(t.literal[0], r.text[0], t.fold)
	}
	spans, n := Match(s, t, r)
	if n == 0 {
		return 0
	}
	Materialize(s, spans, r)
	return n
}

// substituteRune swaps characters in place. Styles are untouched.
func (s *String) substituteRune(before, after rune, fold bool) int {
	n := 0
	for i, ch := range s.text {
		if ch == before || (fold && equalFold(ch, before)) {
			s.text[i] = after
			n++
		}
	}
	return n
}

// ReplaceText replaces every occurrence of before with plain text.
func (s *String) ReplaceText(before, after string, cs CaseSensitivity) int {
	return s.Replace(Literal(before, cs), Plain(after))
}

// ReplaceTextStyled replaces every occurrence of before with a styled
// String.
func (s *String) ReplaceTextStyled(before string, after *String, cs CaseSensitivity) int {
	return s.Replace(Literal(before, cs), StyledReplacement(after))
}

// ReplaceRune replaces every occurrence of before with after, keeping
// styles.
func (s *String) ReplaceRune(before, after rune, cs CaseSensitivity) int {
	return s.Replace(Char(before, cs), Plain(string(after)))
}

// ReplaceRegexp replaces every match of re with the template after, where
// \N inserts capture group N (one or two digits) with its original styles.
func (s *String) ReplaceRegexp(re Regexp, after string) int {
	return s.Replace(Regex(re), Plain(after))
}

// ReplaceRegexpStyled is ReplaceRegexp with a styled template.
func (s *String) ReplaceRegexpStyled(re Regexp, after *String) int {
	return s.Replace(Regex(re), StyledReplacement(after))
}

// RemoveAll deletes every match of t.
func (s *String) RemoveAll(t Target) int {
	return s.Replace(t, Plain(""))
}

// Index returns the offset of the first match of t at or after from, or
// -1. A pattern is matched against the text starting at from, so ^ and \b
// see from as the start of the text.
func (s *String) Index(t Target, from int) int {
	if from < 0 || from > len(s.text) {
		return -1
	}
	if t.kind != targetRegexp {
		if len(t.literal) == 0 {
			return from
		}
		return indexRunes(s.text, t.literal, from, t.fold)
	}
	locs := t.locate(s.text[from:])
	if len(locs) == 0 {
		return -1
	}
	return from + locs[0][0]
}

// Contains reports whether t matches anywhere.
func (s *String) Contains(t Target) bool {
	return s.Index(t, 0) >= 0
}

// Count returns the number of non-overlapping matches of t.
func (s *String) Count(t Target) int {
	return len(t.locate(s.text))
}

// Split cuts the string at every match of sep. Empty parts are dropped
// unless keepEmpty is set. Each part keeps its styles. Empty matches do not
// split, so an empty separator returns the whole string.
func (s *String) Split(sep Target, keepEmpty bool) []*String {
	if sep.err != nil {
		logger().WithField("pattern", sep.pattern).Warn("invalid regular expression: %v", sep.err)
		return []*String{s.Clone()}
	}
	var parts []*String
	add := func(start, end int) {
		if end > start || keepEmpty {
			parts = append(parts, s.slice(start, end-start))
		}
	}
	off := 0
	for _, m := range sep.locate(s.text) {
		if m[0] == m[1] {
			continue
		}
		add(off, m[0])
		off = m[1]
	}
	add(off, len(s.text))
	return parts
}

// Join concatenates parts with sep between them, keeping every style.
// A nil sep joins without separator.
func Join(parts []*String, sep *String) *String {
	out := &String{runs: &RunArray{}}
	for i, p := range parts {
		if i > 0 && sep != nil {
			out.AppendStyled(sep)
		}
		if p != nil {
			out.AppendStyled(p)
		}
	}
	return out
}

// Matches returns the [start, end) character range of every
// non-overlapping match of t. Empty matches are included.
func (s *String) Matches(t Target) [][2]int {
	locs := t.locate(s.text)
	out := make([][2]int, len(locs))
	for i, m := range locs {
		out[i] = [2]int{m[0], m[1]}
	}
	return out
}
