package pipeline

import (
	"fmt"
	"sync"

	"github.com/dshills/styledtext/internal/config"
	"github.com/dshills/styledtext/internal/logging"
	"github.com/dshills/styledtext/internal/styled"
)

// Pipeline applies a fixed list of steps to successive chunks of text.
// Sentence state and match counts carry over between chunks until Reset.
type Pipeline struct {
	mu     sync.Mutex
	steps  []Step
	state  State
	counts []int
	logger *logging.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for per-step debug output.
func WithLogger(l *logging.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a pipeline running steps in order.
func New(steps []Step, opts ...Option) *Pipeline {
	p := &Pipeline{
		steps:  steps,
		counts: make([]int, len(steps)),
		logger: logging.Default().WithComponent("pipeline"),
	}
	p.state.AwaitingCapital = true
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Build creates a pipeline from configured rules.
func Build(rules []config.Rule, opts ...Option) (*Pipeline, error) {
	steps := make([]Step, 0, len(rules))
	for i, r := range rules {
		step, err := StepFor(r)
		if err != nil {
			return nil, fmt.Errorf("rules[%d]: %w", i, err)
		}
		steps = append(steps, step)
	}
	return New(steps, opts...), nil
}

// StepFor converts one rule into a step.
func StepFor(r config.Rule) (Step, error) {
	switch r.Kind {
	case config.RuleReplace, config.RuleRemove:
		t, err := targetFor(r)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, fmt.Errorf("%s rule needs find, char or pattern", r.Kind)
		}
		repl := styled.Plain(r.With)
		switch {
		case r.Kind == config.RuleRemove:
			repl = styled.Plain("")
		case r.WithMarkup != "":
			repl = styled.StyledReplacement(styled.ParseMarkup(r.WithMarkup))
		}
		return NewReplaceStep(*t, repl), nil

	case config.RuleLower:
		return NewCaseStep(CaseLower, false), nil
	case config.RuleUpper:
		return NewCaseStep(CaseUpper, false), nil
	case config.RuleTitle:
		return NewCaseStep(CaseTitle, r.LowerFirst), nil
	case config.RuleSentence:
		return NewCaseStep(CaseSentence, r.LowerFirst), nil

	case config.RuleSimplify:
		return SimplifyStep{}, nil

	case config.RuleStyle:
		t, err := targetFor(r)
		if err != nil {
			return nil, err
		}
		flags, err := r.StyleFlags()
		if err != nil {
			return nil, err
		}
		step := &StyleStep{Target: t, Flags: flags, On: r.IsOn()}
		if r.Color != "" {
			c, err := styled.ParseColor(r.Color)
			if err != nil {
				return nil, err
			}
			step.Color = c
		}
		return step, nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownRule, r.Kind)
}

// targetFor returns the rule's target, or nil when it has none.
func targetFor(r config.Rule) (*styled.Target, error) {
	cs := styled.CaseSensitive
	if r.IgnoreCase {
		cs = styled.CaseInsensitive
	}

	var t styled.Target
	switch {
	case r.Find != "":
		t = styled.Literal(r.Find, cs)
	case r.Char != "":
		t = styled.Char([]rune(r.Char)[0], cs)
	case r.Pattern != "":
		t = styled.Pattern(r.Pattern, cs)
		if err := t.Err(); err != nil {
			return nil, err
		}
	default:
		return nil, nil
	}
	return &t, nil
}

// Steps returns the pipeline's steps.
func (p *Pipeline) Steps() []Step {
	return p.steps
}

// Process runs every step over s and returns the result. s is not
// modified.
func (p *Pipeline) Process(s *styled.String) *styled.String {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := s.Clone()
	for i, step := range p.steps {
		var n int
		out, n = step.Apply(out, &p.state)
		p.counts[i] += n
		if n > 0 {
			p.logger.WithFields(map[string]any{
				"step":    i,
				"changes": n,
			}).Debug("%s", step.Description())
		}
	}
	return out
}

// Counts returns the number of changes made by each step so far.
func (p *Pipeline) Counts() []int {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]int, len(p.counts))
	copy(out, p.counts)
	return out
}

// Reset clears the counts and starts a new sentence.
func (p *Pipeline) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.counts {
		p.counts[i] = 0
	}
	p.state = State{AwaitingCapital: true}
}
