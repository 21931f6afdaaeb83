package reader

import (
	"fmt"
	"regexp"

	"github.com/BurntSushi/toml"

	"github.com/OpenTraceLab/OpenTraceLEF/pkg/lef"
)

// Config controls how LEF text is turned into a library.
type Config struct {
	// Name handling
	CaseSensitive bool `toml:"case_sensitive"` // initial NAMESCASESENSITIVE state (default: true)

	// Limits
	MaxOxides int `toml:"max_oxides"` // antenna oxide slots per layer and pin (default: 4)
	MaxItems  int `toml:"max_items"`  // entries per list, 0 for no practical limit

	// Strictness
	Strict bool `toml:"strict"` // unknown statements are errors instead of warnings

	// Macro filtering
	OnlyMacroPattern string `toml:"only_macro_pattern"` // if set, keep only macros matching this regex

	// Verbose makes the CLI print progress and every reader warning.
	Verbose bool `toml:"verbose"`

	macroRegex *regexp.Regexp
}

// DefaultConfig returns a Config suitable for LEF 5.8 libraries.
func DefaultConfig() *Config {
	return &Config{
		CaseSensitive: true,
		MaxOxides:     lef.DefaultMaxOxides,
		MaxItems:      0,
		Strict:        false,
	}
}

// Validate checks the configuration and compiles the macro filter.
func (c *Config) Validate() error {
	if c.MaxOxides < 1 {
		c.MaxOxides = lef.DefaultMaxOxides
	}
	if c.MaxItems < 0 {
		return fmt.Errorf("reader: max_items must not be negative, got %d", c.MaxItems)
	}

	c.macroRegex = nil
	if c.OnlyMacroPattern != "" {
		re, err := regexp.Compile(c.OnlyMacroPattern)
		if err != nil {
			return fmt.Errorf("reader: only_macro_pattern: %w", err)
		}
		c.macroRegex = re
	}
	return nil
}

// KeepMacro reports whether a macro called name passes the filter.
func (c *Config) KeepMacro(name string) bool {
	if c.macroRegex == nil {
		return true
	}
	return c.macroRegex.MatchString(name)
}

func (c *Config) contextConfig() lef.ContextConfig {
	return lef.ContextConfig{
		CaseSensitive: c.CaseSensitive,
		MaxOxides:     c.MaxOxides,
		SeqLimit:      c.MaxItems,
	}
}

// LoadConfig reads a TOML file over the defaults and validates the result.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("reader: load config %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, fmt.Errorf("reader: load config %s: unknown key %s", path, undec[0])
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
