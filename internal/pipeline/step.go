package pipeline

import (
	"fmt"

	"github.com/dshills/styledtext/internal/styled"
)

// Step is one transformation of a styled string.
type Step interface {
	// Apply transforms s and returns the result and the number of places
	// the step changed. The result may be s itself.
	Apply(s *styled.String, st *State) (*styled.String, int)

	// Description returns a human-readable description of the step.
	Description() string
}

// State carries information between the chunks of one run.
type State struct {
	// AwaitingCapital is true when the next chunk starts a new sentence.
	AwaitingCapital bool
}

// ReplaceStep replaces every match of a target.
type ReplaceStep struct {
	Target      styled.Target
	Replacement styled.Replacement
}

// NewReplaceStep creates a replace step.
func NewReplaceStep(t styled.Target, r styled.Replacement) *ReplaceStep {
	return &ReplaceStep{Target: t, Replacement: r}
}

// Apply replaces in place.
func (c *ReplaceStep) Apply(s *styled.String, _ *State) (*styled.String, int) {
	return s, s.Replace(c.Target, c.Replacement)
}

// Description describes the step.
func (c *ReplaceStep) Description() string {
	if c.Replacement.Len() == 0 {
		return "remove " + c.Target.String()
	}
	return "replace " + c.Target.String()
}

// CaseMode selects a case conversion.
type CaseMode uint8

// Case conversions.
const (
	CaseLower CaseMode = iota
	CaseUpper
	CaseTitle
	CaseSentence
)

// String returns the rule kind name of the mode.
func (m CaseMode) String() string {
	switch m {
	case CaseLower:
		return "lower"
	case CaseUpper:
		return "upper"
	case CaseTitle:
		return "title"
	case CaseSentence:
		return "sentence"
	}
	return "unknown"
}

// CaseStep converts letter case. Styles are unaffected.
type CaseStep struct {
	Mode       CaseMode
	LowerFirst bool
}

// NewCaseStep creates a case conversion step.
func NewCaseStep(mode CaseMode, lowerFirst bool) *CaseStep {
	return &CaseStep{Mode: mode, LowerFirst: lowerFirst}
}

// Apply converts s. Sentence case continues the sentence state of earlier
// chunks.
func (c *CaseStep) Apply(s *styled.String, st *State) (*styled.String, int) {
	var out *styled.String
	switch c.Mode {
	case CaseLower:
		out = s.ToLower()
	case CaseUpper:
		out = s.ToUpper()
	case CaseTitle:
		out = s.TitleCase(c.LowerFirst)
	case CaseSentence:
		out = s.SentenceCase(c.LowerFirst, &st.AwaitingCapital)
	default:
		return s, 0
	}
	return out, changedRunes(s, out)
}

// Description describes the step.
func (c *CaseStep) Description() string {
	return c.Mode.String() + " case"
}

// SimplifyStep compacts whitespace.
type SimplifyStep struct{}

// Apply simplifies in place.
func (SimplifyStep) Apply(s *styled.String, _ *State) (*styled.String, int) {
	before := s.Len()
	s.SimplifyWhiteSpace()
	return s, before - s.Len()
}

// Description describes the step.
func (SimplifyStep) Description() string {
	return "simplify whitespace"
}

// StyleStep sets or clears style flags and color on every match of a
// target, or on the whole text when Target is nil.
type StyleStep struct {
	Target *styled.Target
	Flags  styled.StyleFlags
	On     bool
	// Color is applied when non-zero. Clearing always removes the color.
	Color  styled.RGBColor
}

// Apply styles in place.
func (c *StyleStep) Apply(s *styled.String, _ *State) (*styled.String, int) {
	ranges := [][2]int{{0, s.Len()}}
	if c.Target != nil {
		ranges = s.Matches(*c.Target)
	}

	n := 0
	for _, r := range ranges {
		start, length := r[0], r[1]-r[0]
		if length == 0 {
			continue
		}
		if c.Flags != styled.NoStyle {
			s.SetFlagsOn(start, length, c.Flags, c.On)
		}
		if c.Color != styled.NoColor {
			if c.On {
				s.SetColor(start, length, c.Color)
			} else {
				s.SetColor(start, length, styled.NoColor)
			}
		}
		n++
	}
	return s, n
}

// Description describes the step.
func (c *StyleStep) Description() string {
	verb := "set"
	if !c.On {
		verb = "clear"
	}
	what := c.Flags.String()
	if c.Color != styled.NoColor {
		what = fmt.Sprintf("%s color %s", what, c.Color.Hex())
	}
	if c.Target == nil {
		return fmt.Sprintf("%s %s", verb, what)
	}
	return fmt.Sprintf("%s %s on %s", verb, what, c.Target)
}

// changedRunes counts positions where a and b differ.
func changedRunes(a, b *styled.String) int {
	n := 0
	for i := 0; i < a.Len(); i++ {
		if a.At(i) != b.At(i) {
			n++
		}
	}
	return n
}
