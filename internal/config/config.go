package config

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/tdawm/internal/layout"
)

// MaxWorkspaces is the number of digit keys available for workspace
// selection.
const MaxWorkspaces = 10

// Keys holds the key sequences bound at startup. Sequences use the
// "Mod4-Return" form understood by the display adapter.
type Keys struct {
	Terminal    string `yaml:"terminal"`
	Launcher    string `yaml:"launcher"`
	CycleLayout string `yaml:"cycle_layout"`
	// WorkspaceModifier is combined with the digits 1..9,0 to select
	// workspaces 0..9.
	WorkspaceModifier string `yaml:"workspace_modifier"`
}

// Config is the effective configuration.
type Config struct {
	Terminal      string   `yaml:"terminal"`
	Launcher      string   `yaml:"launcher"`
	Startup       []string `yaml:"startup"`
	Workspaces    int      `yaml:"workspaces"`
	DefaultLayout string   `yaml:"default_layout"`
	LayoutCycle   []string `yaml:"layout_cycle"`
	Keys          Keys     `yaml:"keys"`
	LogLevel      string   `yaml:"log_level"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Terminal:      "alacritty",
		Launcher:      "rofi -show drun -show-icons",
		Startup:       []string{},
		Workspaces:    MaxWorkspaces,
		DefaultLayout: string(layout.KindMasterStack),
		LayoutCycle:   layout.Names(),
		Keys: Keys{
			Terminal:          "Mod4-Return",
			Launcher:          "Mod4-d",
			CycleLayout:       "Mod4-p",
			WorkspaceModifier: "Mod4",
		},
		LogLevel: "info",
	}
}

// WorkspaceKeys returns the selection key for every configured workspace,
// indexed by workspace. Workspace 9 is on the 0 key.
func (c *Config) WorkspaceKeys() []string {
	const digits = "1234567890"
	n := min(c.Workspaces, MaxWorkspaces)
	keys := make([]string, 0, n)
	for i := 0; i < n; i++ {
		keys = append(keys, c.Keys.WorkspaceModifier+"-"+digits[i:i+1])
	}
	return keys
}

// Marshal renders the effective configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal config")
	}
	return data, nil
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Terminal) == "" {
		return &ValidationError{Path: "terminal", Err: fmt.Errorf("terminal is required")}
	}
	if strings.TrimSpace(c.Launcher) == "" {
		return &ValidationError{Path: "launcher", Err: fmt.Errorf("launcher is required")}
	}
	for i, cmd := range c.Startup {
		if strings.TrimSpace(cmd) == "" {
			return &ValidationError{Path: "startup", Err: fmt.Errorf("startup command %d is empty", i)}
		}
	}
	if c.Workspaces < 1 || c.Workspaces > MaxWorkspaces {
		return &ValidationError{Path: "workspaces", Err: fmt.Errorf("workspaces must be between 1 and %d", MaxWorkspaces)}
	}
	if _, err := layout.Parse(c.DefaultLayout); err != nil {
		return &ValidationError{Path: "default_layout", Err: err}
	}
	if len(c.LayoutCycle) == 0 {
		return &ValidationError{Path: "layout_cycle", Err: fmt.Errorf("layout_cycle must not be empty")}
	}
	seen := make(map[string]struct{}, len(c.LayoutCycle))
	for _, name := range c.LayoutCycle {
		if _, err := layout.Parse(name); err != nil {
			return &ValidationError{Path: "layout_cycle", Err: err}
		}
		if _, dup := seen[name]; dup {
			return &ValidationError{Path: "layout_cycle", Err: fmt.Errorf("layout %q listed twice", name)}
		}
		seen[name] = struct{}{}
	}
	keys := []struct {
		path  string
		value string
	}{
		{"keys.terminal", c.Keys.Terminal},
		{"keys.launcher", c.Keys.Launcher},
		{"keys.cycle_layout", c.Keys.CycleLayout},
		{"keys.workspace_modifier", c.Keys.WorkspaceModifier},
	}
	for _, k := range keys {
		if strings.TrimSpace(k.value) == "" {
			return &ValidationError{Path: k.path, Err: fmt.Errorf("key sequence must not be empty")}
		}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	return nil
}
