package styled

import "unicode"

// Match computes the reference spans that turn subject into the result of
// replacing every match of t with r. The subject is not modified.
//
// The list ends with a SourceTerminator span carrying the old and new
// lengths. The second result is the number of matches; when it is zero the
// list is nil. An invalid pattern is logged and reported as no match.
func Match(subject *String, t Target, r Replacement) ([]RefSpan, int) {
	if t.err != nil {
		logger().WithField("pattern", t.pattern).Warn("invalid regular expression: %v", t.err)
		return nil, 0
	}
	if t.kind == targetLiteral && len(t.literal) == 0 {
		return matchEveryBoundary(subject.Len(), r.Len())
	}

	locs := t.locate(subject.text)
	if len(locs) == 0 {
		return nil, 0
	}

	var refs []BackRef
	if t.kind == targetRegexp {
		refs = parseBackRefs(r.text, t.re.NumSubexp())
	}

	b := spanBuilder{}
	n := subject.Len()
	off := 0
	for _, m := range locs {
		start, end := m[0], m[1]
		b.add(SourceSubject, off, start-off)

		tplOff := 0
		for _, ref := range refs {
			b.add(SourceReplacement, tplOff, ref.Start-tplOff)
			if gs, ge := m[2*ref.Group], m[2*ref.Group+1]; gs >= 0 {
				b.add(SourceSubject, gs, ge-gs)
			}
			tplOff = ref.End
		}
		b.add(SourceReplacement, tplOff, r.Len()-tplOff)

		// An empty match consumes the character after it so the scan
		// always moves forward.
		if start == end && start < n {
			b.add(SourceSubject, start, 1)
			off = start + 1
		} else {
			off = end
		}
	}
	b.add(SourceSubject, off, n-off)
	return b.finish(n), len(locs)
}

// matchEveryBoundary handles the empty literal, which matches before every
// character and once after the last.
func matchEveryBoundary(n, replLen int) ([]RefSpan, int) {
	if replLen == 0 {
		return nil, 0
	}
	b := spanBuilder{spans: make([]RefSpan, 0, 2*n+2)}
	for i := 0; i < n; i++ {
		b.add(SourceReplacement, 0, replLen)
		b.add(SourceSubject, i, 1)
	}
	b.add(SourceReplacement, 0, replLen)
	return b.finish(n), n + 1
}

type spanBuilder struct {
	spans  []RefSpan
	length int
}

func (b *spanBuilder) add(src SpanSource, offset, length int) {
	if length <= 0 {
		return
	}
	b.spans = append(b.spans, RefSpan{Source: src, Offset: offset, Length: length})
	b.length += length
}

func (b *spanBuilder) finish(subjectLen int) []RefSpan {
	return append(b.spans, RefSpan{Source: SourceTerminator, Offset: subjectLen, Length: b.length})
}

// parseBackRefs finds \N escapes in a replacement template. N is one digit,
// or two when the two-digit number is still a valid group. Escapes naming a
// group that does not exist stay literal text.
func parseBackRefs(tpl []rune, numGroups int) []BackRef {
	var refs []BackRef
	for i := 0; i < len(tpl); {
		if tpl[i] != '\\' {
			i++
			continue
		}
		i++
		if i >= len(tpl) {
			break
		}
		no := digitValue(tpl[i])
		i++
		if no < 0 || no > numGroups {
			continue
		}
		start := i - 2
		if i < len(tpl) {
			if d := digitValue(tpl[i]); d >= 0 && no*10+d <= numGroups {
				no = no*10 + d
				i++
			}
		}
		refs = append(refs, BackRef{Group: no, Start: start, End: i})
	}
	return refs
}

func digitValue(r rune) int {
	if r >= '0' && r <= '9' {
		return int(r - '0')
	}
	return -1
}

// locate returns every non-overlapping match of t in text as rune offsets:
// the whole match followed by one pair per capture group, -1 for groups
// that did not participate. The empty literal yields no matches.
func (t Target) locate(text []rune) [][]int {
	if t.err != nil {
		return nil
	}
	if t.kind == targetRegexp {
		return locateRegexp(t.re, text)
	}
	if len(t.literal) == 0 {
		return nil
	}
	var locs [][]int
	for off := 0; ; {
		idx := indexRunes(text, t.literal, off, t.fold)
		if idx < 0 {
			break
		}
		locs = append(locs, []int{idx, idx + len(t.literal)})
		off = idx + len(t.literal)
	}
	return locs
}

func locateRegexp(re Regexp, text []rune) [][]int {
	str := string(text)
	matches := re.FindAllStringSubmatchIndex(str, -1)
	if len(matches) == 0 {
		return nil
	}

	// Matches always fall on rune boundaries, so only those entries are set.
	runeAt := make([]int, len(str)+1)
	ri := 0
	for bi := range str {
		runeAt[bi] = ri
		ri++
	}
	runeAt[len(str)] = ri

	for _, m := range matches {
		for k, v := range m {
			if v >= 0 {
				m[k] = runeAt[v]
			}
		}
	}
	return matches
}

// indexRunes returns the first index >= from where needle occurs in text,
// or -1.
func indexRunes(text, needle []rune, from int, fold bool) int {
	last := len(text) - len(needle)
	for i := max(from, 0); i <= last; i++ {
		if runesEqualAt(text[i:i+len(needle)], needle, fold) {
			return i
		}
	}
	return -1
}

func runesEqualAt(a, b []rune, fold bool) bool {
	for i := range b {
		if a[i] == b[i] {
			continue
		}
		if !fold || !equalFold(a[i], b[i]) {
			return false
		}
	}
	return true
}

// equalFold reports whether a and b are equal under simple Unicode case
// folding.
func equalFold(a, b rune) bool {
	for f := unicode.SimpleFold(a); f != a; f = unicode.SimpleFold(f) {
		if f == b {
			return true
		}
	}
	return false
}
