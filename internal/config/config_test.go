package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kmikiy/keycast/internal/input/key"
)

const sampleConfig = `
escape = "<F12>"
log_level = "debug"

[[binding]]
keys = "gg"
dispatcher = "top"
description = "go to top"

[[binding]]
keys = "<CTRL+S>"
dispatcher = "save"

[[action]]
dispatcher = "save"
index = 0
default = true
log = "saved"
`

func TestLoadReader(t *testing.T) {
	cfg, err := LoadReader(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}

	if cfg.Escape != "<F12>" {
		t.Errorf("Escape = %q", cfg.Escape)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if len(cfg.Bindings) != 2 {
		t.Fatalf("Bindings = %d, want 2", len(cfg.Bindings))
	}
	if cfg.Bindings[0].Keys != "gg" || cfg.Bindings[0].Dispatcher != "top" {
		t.Errorf("binding 0 = %+v", cfg.Bindings[0])
	}
	if len(cfg.Actions) != 1 || !cfg.Actions[0].Default || cfg.Actions[0].Log != "saved" {
		t.Errorf("actions = %+v", cfg.Actions)
	}

	k, err := cfg.EscapeKey()
	if err != nil {
		t.Fatalf("EscapeKey: %v", err)
	}
	if k != key.KeyF12 {
		t.Errorf("EscapeKey = %v", k)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Escape != "<ESC>" || cfg.LogLevel != "info" {
		t.Errorf("defaults = %+v", cfg)
	}
	if k, err := cfg.EscapeKey(); err != nil || k != key.KeyEscape {
		t.Errorf("EscapeKey = %v, %v", k, err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keycast.toml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Bindings) != 2 {
		t.Errorf("Bindings = %d", len(cfg.Bindings))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"invalid toml", `escape = `},
		{"binding without keys", "[[binding]]\ndispatcher = \"x\"\n"},
		{"binding without dispatcher", "[[binding]]\nkeys = \"gg\"\n"},
		{"action without handler", "[[action]]\ndispatcher = \"x\"\n"},
		{"modified escape", `escape = "<CTRL+C>"`},
		{"rune escape", `escape = "x"`},
		{"malformed escape", `escape = "<BOGUS>"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadReader(strings.NewReader(tt.toml))
			if err == nil {
				t.Fatal("expected an error")
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Errorf("error %T is not a ParseError: %v", err, err)
			}
		})
	}
}
