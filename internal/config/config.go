// Package config loads the keycast configuration file.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/kmikiy/keycast/internal/input/key"
)

// Binding maps a textual chord sequence to a dispatch tag.
type Binding struct {
	// Keys is the sequence in the textual grammar, e.g. "gg" or "<CTRL+T>".
	Keys string `toml:"keys"`

	// Dispatcher names the slot group invoked on completion.
	Dispatcher string `toml:"dispatcher"`

	// Description documents the binding in listings.
	Description string `toml:"description,omitempty"`
}

// Action attaches a handler to one dispatch slot.
type Action struct {
	// Dispatcher names the slot group this action belongs to.
	Dispatcher string `toml:"dispatcher"`

	// Index is the slot within the group, selected by the numeric prefix.
	Index uint32 `toml:"index"`

	// Default marks this slot as the one used when no prefix was typed.
	Default bool `toml:"default,omitempty"`

	// Lua is an inline Lua chunk executed when the slot fires.
	Lua string `toml:"lua,omitempty"`

	// Log, when set, makes the slot log the given message instead of
	// running a script. Useful for trying out bindings.
	Log string `toml:"log,omitempty"`
}

// Config is the root of the TOML configuration.
type Config struct {
	// Escape overrides the universal cancel key, e.g. "<F12>".
	// Defaults to "<ESC>".
	Escape string `toml:"escape,omitempty"`

	// LogLevel sets the minimum log level (debug, info, warn, error).
	LogLevel string `toml:"log_level,omitempty"`

	Bindings []Binding `toml:"binding"`
	Actions  []Action  `toml:"action"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Escape:   "<ESC>",
		LogLevel: "info",
	}
}

// EscapeKey resolves the configured escape key.
func (c *Config) EscapeKey() (key.Key, error) {
	spec := c.Escape
	if spec == "" {
		return key.KeyEscape, nil
	}
	chord, err := key.ParseChord(spec)
	if err != nil {
		return key.KeyNone, fmt.Errorf("escape key %q: %w", spec, err)
	}
	if chord.Mods != key.ModNone || chord.Key == key.KeyRune {
		return key.KeyNone, fmt.Errorf("escape key %q: must be a single unmodified special key", spec)
	}
	return chord.Key, nil
}

// Validate checks structural fields that the loaders cannot.
func (c *Config) Validate() error {
	if _, err := c.EscapeKey(); err != nil {
		return err
	}
	for i, b := range c.Bindings {
		if b.Keys == "" {
			return fmt.Errorf("binding %d: empty keys", i)
		}
		if b.Dispatcher == "" {
			return fmt.Errorf("binding %d (%s): empty dispatcher", i, b.Keys)
		}
	}
	for i, a := range c.Actions {
		if a.Dispatcher == "" {
			return fmt.Errorf("action %d: empty dispatcher", i)
		}
		if a.Lua == "" && a.Log == "" {
			return fmt.Errorf("action %d (%s[%d]): needs lua or log", i, a.Dispatcher, a.Index)
		}
	}
	return nil
}

// Load reads the configuration from a file. A missing file is not an error;
// the defaults are returned.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parse(path, data)
}

// LoadReader reads the configuration from an io.Reader.
func LoadReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse("<reader>", data)
}

// parse decodes TOML data and applies defaults for unset fields.
func parse(source string, data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	if cfg.Escape == "" {
		cfg.Escape = "<ESC>"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return cfg, nil
}
