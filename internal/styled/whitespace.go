package styled

import "unicode"

// SimplifyWhiteSpace compacts whitespace in place:
//
//   - runs of spaces and tabs become one space, tabs become spaces
//   - runs of CR/LF become one LF, CR becomes LF
//   - a space before a line break or at the end of the text is dropped
//   - leading whitespace and a trailing line break are dropped
//
// Each surviving character keeps the style of the source character it was
// copied from.
func (s *String) SimplifyWhiteSpace() {
	runs := s.rs()
	text := s.text
	di := 0
	lastWasSpace := true
	lastWasLineFeed := true

	for i, ch := range text {
		isBlank := ch == ' ' || ch == '\t'
		isBreak := ch == '\n' || ch == '\r'
		if lastWasSpace && isBlank {
			continue
		}
		if lastWasLineFeed && isBreak {
			continue
		}
		if lastWasSpace && isBreak {
			// Overwrite the space written just before the line break.
			di--
		}

		switch ch {
		case '\t':
			text[di] = ' '
		case '\r':
			text[di] = '\n'
		default:
			text[di] = ch
		}
		if di != i {
			runs.CopyFrom(di, 1, runs, i)
		}

		lastWasLineFeed = text[di] == '\n'
		lastWasSpace = lastWasLineFeed || text[di] == ' '
		di++
	}
	if lastWasSpace && di > 0 {
		di--
	}

	s.text = text[:di]
	runs.Truncate(di)
}

// Trimmed returns a copy without leading and trailing whitespace.
func (s *String) Trimmed() *String {
	start, end := 0, len(s.text)
	for start < end && unicode.IsSpace(s.text[start]) {
		start++
	}
	for end > start && unicode.IsSpace(s.text[end-1]) {
		end--
	}
	return s.slice(start, end-start)
}

// Simplified returns a trimmed copy where every internal run of whitespace
// is replaced by one space. The space takes the style of the first
// character of the run.
func (s *String) Simplified() *String {
	t := s.Trimmed()
	out := &String{
		text: make([]rune, 0, len(t.text)),
		runs: NewRunArray(len(t.text)),
	}
	for i := 0; i < len(t.text); {
		j := i
		for j < len(t.text) && unicode.IsSpace(t.text[j]) {
			j++
		}
		if j > i {
			out.runs.Set(len(out.text), t.runs.At(i))
			out.text = append(out.text, ' ')
			i = j
			continue
		}
		out.runs.Set(len(out.text), t.runs.At(i))
		out.text = append(out.text, t.text[i])
		i++
	}
	out.runs.Truncate(len(out.text))
	return out
}
