package config

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/styledtext/internal/config/loader"
	"github.com/dshills/styledtext/internal/styled"
)

// Output formats.
const (
	FormatMarkup = "markup"
	FormatText   = "text"
	FormatJSON   = "json"
	FormatBinary = "binary"
)

// Rule kinds.
const (
	RuleReplace  = "replace"
	RuleRemove   = "remove"
	RuleTitle    = "title"
	RuleSentence = "sentence"
	RuleLower    = "lower"
	RuleUpper    = "upper"
	RuleSimplify = "simplify"
	RuleStyle    = "style"
)

// defaultIncludeDepth bounds nested include directives.
const defaultIncludeDepth = 8

// Config is the complete tool configuration.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Output  OutputConfig  `toml:"output"`
	Rules   []Rule        `toml:"rules"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level"`
	// Prefix is prepended to every log line.
	Prefix string `toml:"prefix"`
}

// OutputConfig selects how results are written.
type OutputConfig struct {
	// Format is one of markup, text, json or binary.
	Format string `toml:"format"`
	// Stats adds a per-line character and grapheme count report.
	Stats bool `toml:"stats"`
}

// Rule is one step of the processing pipeline.
//
// Replace, remove and style rules select text with exactly one of Find, Char
// or Pattern; a style rule without a target applies to the whole text.
type Rule struct {
	Kind string `toml:"kind"`

	Find    string `toml:"find,omitempty"`
	Char    string `toml:"char,omitempty"`
	Pattern string `toml:"pattern,omitempty"`

	With       string `toml:"with,omitempty"`
	WithMarkup string `toml:"with_markup,omitempty"`
	IgnoreCase bool   `toml:"ignore_case,omitempty"`

	LowerFirst bool `toml:"lower_first,omitempty"`

	Flags []string `toml:"flags,omitempty"`
	On    *bool    `toml:"on,omitempty"`
	Color string   `toml:"color,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "warn",
			Prefix: "styledtext",
		},
		Output: OutputConfig{
			Format: FormatMarkup,
		},
	}
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	fs           loader.FileSystem
	env          loader.Loader
	includeDepth int
}

// WithFileSystem reads rule files from fsys instead of the OS.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(o *loadOptions) {
		o.fs = fsys
	}
}

// WithEnvLoader replaces the environment layer. A nil loader disables it.
func WithEnvLoader(l loader.Loader) Option {
	return func(o *loadOptions) {
		o.env = l
	}
}

// WithIncludeDepth limits nested include directives.
func WithIncludeDepth(depth int) Option {
	return func(o *loadOptions) {
		o.includeDepth = depth
	}
}

// Load builds a Config from the defaults, the rule file at path (skipped
// when path is empty) and the environment, then validates it.
func Load(path string, opts ...Option) (*Config, error) {
	o := loadOptions{
		fs:           loader.DefaultFS(),
		env:          loader.NewEnvLoader(loader.DefaultEnvPrefix),
		includeDepth: defaultIncludeDepth,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var layers []loader.Loader
	if path != "" {
		if _, err := o.fs.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}
			return nil, fmt.Errorf("stat config file %s: %w", path, err)
		}
		layers = append(layers, loader.NewTOMLLoader(o.fs, path, o.includeDepth))
	}
	if o.env != nil {
		layers = append(layers, o.env)
	}

	// Later layers override earlier ones.
	merged := make(map[string]any)
	for _, l := range layers {
		m, err := l.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, m)
	}

	cfg := Default()
	if err := decode(merged, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode applies a merged configuration map on top of cfg.
func decode(m map[string]any, cfg *Config) error {
	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding merged config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	return nil
}

// Validate checks every setting and rule.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "logging.level", Message: "unknown log level", Value: c.Logging.Level}
	}

	switch c.Output.Format {
	case FormatMarkup, FormatText, FormatJSON, FormatBinary:
	default:
		return &ValidationError{Path: "output.format", Message: "unknown output format", Value: c.Output.Format}
	}

	for i, r := range c.Rules {
		if err := r.validate(fmt.Sprintf("rules[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

// HasTarget reports whether the rule selects text.
func (r Rule) HasTarget() bool {
	return r.Find != "" || r.Char != "" || r.Pattern != ""
}

// StyleFlags parses the rule's flag names.
func (r Rule) StyleFlags() (styled.StyleFlags, error) {
	var flags styled.StyleFlags
	for _, name := range r.Flags {
		f, err := styled.ParseStyleFlag(strings.ToLower(name))
		if err != nil {
			return 0, err
		}
		flags |= f
	}
	return flags, nil
}

// IsOn reports whether a style rule sets (true) or clears (false) its
// flags. It defaults to true.
func (r Rule) IsOn() bool {
	return r.On == nil || *r.On
}

func (r Rule) validate(path string) error {
	targets := 0
	for _, s := range []string{r.Find, r.Char, r.Pattern} {
		if s != "" {
			targets++
		}
	}
	if targets > 1 {
		return &ValidationError{Path: path, Message: "only one of find, char and pattern may be set", Value: r.Kind}
	}
	if r.Char != "" && utf8.RuneCountInString(r.Char) != 1 {
		return &ValidationError{Path: path + ".char", Message: "must be a single character", Value: r.Char}
	}
	if r.Pattern != "" {
		if _, err := regexp.Compile(r.Pattern); err != nil {
			return &ValidationError{Path: path + ".pattern", Message: "invalid regular expression", Value: r.Pattern, Err: err}
		}
	}

	switch r.Kind {
	case RuleReplace, RuleRemove:
		if targets == 0 {
			return &ValidationError{Path: path, Message: "one of find, char or pattern is required", Value: r.Kind}
		}
		if r.Kind == RuleRemove && (r.With != "" || r.WithMarkup != "") {
			return &ValidationError{Path: path, Message: "remove takes no replacement", Value: r.With + r.WithMarkup}
		}
		if r.With != "" && r.WithMarkup != "" {
			return &ValidationError{Path: path, Message: "with and with_markup are exclusive", Value: r.With}
		}
	case RuleStyle:
		if len(r.Flags) == 0 && r.Color == "" {
			return &ValidationError{Path: path, Message: "style needs flags or color", Value: r.Kind}
		}
		if _, err := r.StyleFlags(); err != nil {
			return &ValidationError{Path: path + ".flags", Message: "unknown style flag", Value: r.Flags, Err: err}
		}
		if r.Color != "" {
			if _, err := styled.ParseColor(r.Color); err != nil {
				return &ValidationError{Path: path + ".color", Message: "invalid color", Value: r.Color, Err: err}
			}
		}
	case RuleTitle, RuleSentence, RuleLower, RuleUpper, RuleSimplify:
		if targets > 0 {
			return &ValidationError{Path: path, Message: r.Kind + " applies to the whole text and takes no target", Value: r.Kind}
		}
	default:
		return &ValidationError{Path: path + ".kind", Message: "unknown rule kind", Value: r.Kind, Err: ErrUnknownRule}
	}
	return nil
}
