package styled

// Materialize builds the result described by spans into fresh buffers and
// swaps them into subject in one step. spans is a list produced by Match for
// the same subject and replacement.
//
// Subject spans copy characters with their styles. Replacement spans copy
// the replacement text; a styled replacement brings its own styles, a plain
// one takes the style of the subject character just after the last consumed
// subject span. Before any subject span, or when that position is past the
// end, plain replacement text is unstyled.
func Materialize(subject *String, spans []RefSpan, r Replacement) {
	if len(spans) == 0 {
		return
	}

	newLen := 0
	if last := spans[len(spans)-1]; last.Source == SourceTerminator {
		newLen = last.Length
	} else {
		for _, sp := range spans {
			newLen += sp.Length
		}
	}

	src := subject.rs()
	var replRuns *RunArray
	if r.styled != nil {
		replRuns = r.styled.rs()
	}
	text := make([]rune, 0, newLen)
	runs := NewRunArray(newLen)
	styleFrom := -1

	for _, sp := range spans {
		if sp.Length <= 0 || sp.Offset < 0 {
			continue
		}
		at := len(text)
		switch sp.Source {
		case SourceSubject:
			if sp.Offset+sp.Length > len(subject.text) {
				continue
			}
			text = append(text, subject.text[sp.Offset:sp.Offset+sp.Length]...)
			runs.CopyFrom(at, sp.Length, src, sp.Offset)
			styleFrom = sp.Offset + sp.Length
		case SourceReplacement:
			if sp.Offset+sp.Length > len(r.text) {
				continue
			}
			text = append(text, r.text[sp.Offset:sp.Offset+sp.Length]...)
			switch {
			case replRuns != nil:
				runs.CopyFrom(at, sp.Length, replRuns, sp.Offset)
			case styleFrom >= 0 && styleFrom < len(subject.text):
				st := src.At(styleFrom)
				runs.Fill(at, sp.Length, st.Flags, st.Color)
			}
		}
	}

	// Spans that did not come from Match may disagree with the terminator.
	if d := len(text) - runs.Len(); d > 0 {
		runs.Insert(runs.Len(), d)
	} else if d < 0 {
		runs.Truncate(len(text))
	}
	subject.swap(text, runs)
}
