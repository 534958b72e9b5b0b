package styled

import (
	"fmt"
	"regexp"
)

// CaseSensitivity selects exact or case-folded matching.
type CaseSensitivity uint8

const (
	CaseSensitive CaseSensitivity = iota
	CaseInsensitive
)

// Regexp is the regular-expression engine used by pattern replacement.
// *regexp.Regexp satisfies it. Match offsets are byte offsets into s and a
// capture group that did not participate is reported as -1.
type Regexp interface {
	String() string
	NumSubexp() int
	FindAllStringSubmatchIndex(s string, n int) [][]int
}

type targetKind uint8

const (
	targetLiteral targetKind = iota
	targetChar
	targetRegexp
)

// Target is what a replacement looks for: a literal substring, a single
// character or a regular expression.
type Target struct {
	kind    targetKind
	literal []rune
	fold    bool
	re      Regexp
	pattern string
	err     error
}

// Literal matches the substring s. An empty s matches at every character
// boundary.
func Literal(s string, cs CaseSensitivity) Target {
	return Target{kind: targetLiteral, literal: []rune(s), fold: cs == CaseInsensitive}
}

// Char matches a single character.
func Char(ch rune, cs CaseSensitivity) Target {
	return Target{kind: targetChar, literal: []rune{ch}, fold: cs == CaseInsensitive}
}

// Pattern compiles expr with the standard regexp engine. A compile failure
// is kept in the Target: replacing with it is a logged no-op.
func Pattern(expr string, cs CaseSensitivity) Target {
	t := Target{kind: targetRegexp, pattern: expr}
	src := expr
	if cs == CaseInsensitive {
		src = "(?i)" + expr
	}
	re, err := regexp.Compile(src)
	if err != nil {
		t.err = fmt.Errorf("%w: %v", ErrInvalidPattern, err)
		return t
	}
	t.re = re
	return t
}

// Regex matches with an already compiled expression.
func Regex(re Regexp) Target {
	t := Target{kind: targetRegexp, re: re}
	if re == nil {
		t.err = fmt.Errorf("%w: nil expression", ErrInvalidPattern)
	} else {
		t.pattern = re.String()
	}
	return t
}

// Err returns the compile error of a pattern target, if any.
func (t Target) Err() error {
	return t.err
}

// String describes the target for diagnostics.
func (t Target) String() string {
	switch t.kind {
	case targetChar:
		return fmt.Sprintf("char %q", t.literal[0])
	case targetRegexp:
		return fmt.Sprintf("pattern %q", t.pattern)
	}
	return fmt.Sprintf("literal %q", string(t.literal))
}

// Replacement is either plain text, which takes its style from the
// surrounding subject text, or a styled String whose own styles are copied.
type Replacement struct {
	text   []rune
	styled *String
}

// Plain returns a plain-text replacement.
func Plain(text string) Replacement {
	return Replacement{text: []rune(text)}
}

// StyledReplacement returns a replacement that carries its own styles. The
// String is copied.
func StyledReplacement(s *String) Replacement {
	if s == nil {
		return Replacement{}
	}
	c := s.Clone()
	return Replacement{text: c.text, styled: c}
}

// Len returns the replacement length in characters.
func (r Replacement) Len() int {
	return len(r.text)
}

// IsStyled reports whether the replacement carries its own styles.
func (r Replacement) IsStyled() bool {
	return r.styled != nil
}

// SpanSource identifies where a RefSpan copies from.
type SpanSource uint8

const (
	SourceSubject SpanSource = iota
	SourceReplacement
	// SourceTerminator ends a span list. Its Offset is the subject length
	// and its Length the length of the result.
	SourceTerminator
)

// String implements fmt.Stringer.
func (s SpanSource) String() string {
	switch s {
	case SourceSubject:
		return "subject"
	case SourceReplacement:
		return "replacement"
	case SourceTerminator:
		return "terminator"
	}
	return "unknown"
}

// RefSpan is one contiguous slice of replacement output.
type RefSpan struct {
	Source SpanSource
	Offset int
	Length int
}

// BackRef is a \N escape found in a replacement template.
type BackRef struct {
	Group int
	Start int // offset of the backslash
	End   int // offset after the last digit
}
