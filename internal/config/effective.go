package config

import "fmt"

// ValidationError ties a validation failure to the YAML path that caused it
// and, when known, the file position that last wrote it.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig applies raw on top of DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if raw.Terminal != nil {
		cfg.Terminal = *raw.Terminal
	}
	if raw.Launcher != nil {
		cfg.Launcher = *raw.Launcher
	}
	if raw.Startup != nil {
		cfg.Startup = append([]string(nil), raw.Startup...)
	}
	if raw.Workspaces != nil {
		cfg.Workspaces = *raw.Workspaces
	}
	if raw.DefaultLayout != nil {
		cfg.DefaultLayout = *raw.DefaultLayout
	}
	if raw.LayoutCycle != nil {
		cfg.LayoutCycle = append([]string(nil), raw.LayoutCycle...)
	}
	if k := raw.Keys; k != nil {
		if k.Terminal != nil {
			cfg.Keys.Terminal = *k.Terminal
		}
		if k.Launcher != nil {
			cfg.Keys.Launcher = *k.Launcher
		}
		if k.CycleLayout != nil {
			cfg.Keys.CycleLayout = *k.CycleLayout
		}
		if k.WorkspaceModifier != nil {
			cfg.Keys.WorkspaceModifier = *k.WorkspaceModifier
		}
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	return cfg
}
