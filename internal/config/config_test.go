package config

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/styledtext/internal/config/loader"
)

type mapEnv map[string]any

func (m mapEnv) Load() (map[string]any, error) { return m, nil }

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Output.Format != FormatMarkup {
		t.Errorf("expected default format %q, got %q", FormatMarkup, cfg.Output.Format)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected default level warn, got %q", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	fsys := loader.MapFS{"/rules.toml": `
[logging]
level = "info"

[output]
format = "json"

[[rules]]
kind = "replace"
pattern = '(\w+), (\w+)'
with_markup = '<b>\2</b> \1'

[[rules]]
kind = "style"
find = "TODO"
flags = ["bold", "underline"]
color = "#ff0000"

[[rules]]
kind = "sentence"
`}

	cfg, err := Load("/rules.toml", WithFileSystem(fsys), WithEnvLoader(nil))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := &Config{
		Logging: LoggingConfig{Level: "info", Prefix: "styledtext"},
		Output:  OutputConfig{Format: FormatJSON},
		Rules: []Rule{
			{Kind: RuleReplace, Pattern: `(\w+), (\w+)`, WithMarkup: `<b>\2</b> \1`},
			{Kind: RuleStyle, Find: "TODO", Flags: []string{"bold", "underline"}, Color: "#ff0000"},
			{Kind: RuleSentence},
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	fsys := loader.MapFS{"/rules.toml": "[output]\nformat = \"json\"\n"}
	env := mapEnv{"output": map[string]any{"format": "text"}, "logging": map[string]any{"level": "debug"}}

	cfg, err := Load("/rules.toml", WithFileSystem(fsys), WithEnvLoader(env))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Output.Format != FormatText {
		t.Errorf("expected env to override format, got %q", cfg.Output.Format)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected env level debug, got %q", cfg.Logging.Level)
	}
}

func TestLoadNumericBooleanFromEnvironment(t *testing.T) {
	t.Setenv("STYLEDTEXT_OUTPUT_STATS", "1")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.Output.Stats {
		t.Error("expected STYLEDTEXT_OUTPUT_STATS=1 to enable stats")
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("", WithEnvLoader(mapEnv{}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nope.toml", WithFileSystem(loader.MapFS{}), WithEnvLoader(nil))
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}

func TestLoadParseError(t *testing.T) {
	fsys := loader.MapFS{"/bad.toml": "[[rules]\nkind = 1"}
	_, err := Load("/bad.toml", WithFileSystem(fsys), WithEnvLoader(nil))

	var perr *loader.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %T: %v", err, err)
	}
}

func TestLoadIncludes(t *testing.T) {
	fsys := loader.MapFS{
		"/etc/main.toml":   "include = \"shared.toml\"\n[[rules]]\nkind = \"upper\"\n",
		"/etc/shared.toml": "[[rules]]\nkind = \"simplify\"\n",
	}
	cfg, err := Load("/etc/main.toml", WithFileSystem(fsys), WithEnvLoader(nil))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	var kinds []string
	for _, r := range cfg.Rules {
		kinds = append(kinds, r.Kind)
	}
	if diff := cmp.Diff([]string{RuleSimplify, RuleUpper}, kinds); diff != "" {
		t.Errorf("rule order mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		path    string
		unknown bool
	}{
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level", false},
		{"bad format", func(c *Config) { c.Output.Format = "pdf" }, "output.format", false},
		{"unknown kind", func(c *Config) { c.Rules = []Rule{{Kind: "rot13"}} }, "rules[0].kind", true},
		{"replace without target", func(c *Config) { c.Rules = []Rule{{Kind: RuleReplace, With: "x"}} }, "rules[0]", false},
		{"two targets", func(c *Config) { c.Rules = []Rule{{Kind: RuleReplace, Find: "a", Char: "b"}} }, "rules[0]", false},
		{"long char", func(c *Config) { c.Rules = []Rule{{Kind: RuleRemove, Char: "ab"}} }, "rules[0].char", false},
		{"bad pattern", func(c *Config) { c.Rules = []Rule{{Kind: RuleRemove, Pattern: "("}} }, "rules[0].pattern", false},
		{"remove with replacement", func(c *Config) { c.Rules = []Rule{{Kind: RuleRemove, Find: "a", With: "b"}} }, "rules[0]", false},
		{"both replacements", func(c *Config) {
			c.Rules = []Rule{{Kind: RuleReplace, Find: "a", With: "b", WithMarkup: "<b>b</b>"}}
		}, "rules[0]", false},
		{"style without effect", func(c *Config) { c.Rules = []Rule{{Kind: RuleStyle}} }, "rules[0]", false},
		{"bad flag", func(c *Config) { c.Rules = []Rule{{Kind: RuleStyle, Flags: []string{"blink"}}} }, "rules[0].flags", false},
		{"bad color", func(c *Config) { c.Rules = []Rule{{Kind: RuleStyle, Color: "rojo"}} }, "rules[0].color", false},
		{"case with target", func(c *Config) { c.Rules = []Rule{{Kind: RuleTitle, Find: "x"}} }, "rules[0]", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Errorf("expected path %q, got %q", tt.path, verr.Path)
			}
			if !errors.Is(err, ErrValidationFailed) {
				t.Error("expected error to match ErrValidationFailed")
			}
			if errors.Is(err, ErrUnknownRule) != tt.unknown {
				t.Errorf("ErrUnknownRule match = %v, want %v", !tt.unknown, tt.unknown)
			}
		})
	}
}

func TestRuleHelpers(t *testing.T) {
	off := false
	r := Rule{Kind: RuleStyle, Flags: []string{"Bold", "i"}, On: &off}
	flags, err := r.StyleFlags()
	if err != nil {
		t.Fatalf("StyleFlags failed: %v", err)
	}
	if flags.String() != "bold|italic" {
		t.Errorf("expected bold|italic, got %s", flags)
	}
	if r.IsOn() {
		t.Error("expected on = false to clear flags")
	}
	if !(Rule{}).IsOn() {
		t.Error("expected flags to be set by default")
	}
	if r.HasTarget() {
		t.Error("rule has no target")
	}
}
