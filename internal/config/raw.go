package config

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return errors.New("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return errors.New("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return errors.New("include must be a string or list of strings")
	}
}

// RawKeys mirrors Keys with every field optional.
type RawKeys struct {
	Terminal          *string `yaml:"terminal"`
	Launcher          *string `yaml:"launcher"`
	CycleLayout       *string `yaml:"cycle_layout"`
	WorkspaceModifier *string `yaml:"workspace_modifier"`
}

// RawConfig is one config file as written. Nil fields were not set and
// leave the value from earlier layers untouched.
type RawConfig struct {
	Include IncludeList `yaml:"include"`

	Terminal      *string  `yaml:"terminal"`
	Launcher      *string  `yaml:"launcher"`
	Startup       []string `yaml:"startup"`
	Workspaces    *int     `yaml:"workspaces"`
	DefaultLayout *string  `yaml:"default_layout"`
	LayoutCycle   []string `yaml:"layout_cycle"`
	Keys          *RawKeys `yaml:"keys"`
	LogLevel      *string  `yaml:"log_level"`
}

// merge overlays o onto c. Lists replace rather than append.
func (c RawConfig) merge(o RawConfig) RawConfig {
	out := c
	out.Include = nil
	if o.Terminal != nil {
		out.Terminal = o.Terminal
	}
	if o.Launcher != nil {
		out.Launcher = o.Launcher
	}
	if o.Startup != nil {
		out.Startup = append([]string(nil), o.Startup...)
	}
	if o.Workspaces != nil {
		out.Workspaces = o.Workspaces
	}
	if o.DefaultLayout != nil {
		out.DefaultLayout = o.DefaultLayout
	}
	if o.LayoutCycle != nil {
		out.LayoutCycle = append([]string(nil), o.LayoutCycle...)
	}
	if o.Keys != nil {
		out.Keys = mergeRawKeys(c.Keys, o.Keys)
	}
	if o.LogLevel != nil {
		out.LogLevel = o.LogLevel
	}
	return out
}

func mergeRawKeys(base, overlay *RawKeys) *RawKeys {
	out := RawKeys{}
	if base != nil {
		out = *base
	}
	if overlay.Terminal != nil {
		out.Terminal = overlay.Terminal
	}
	if overlay.Launcher != nil {
		out.Launcher = overlay.Launcher
	}
	if overlay.CycleLayout != nil {
		out.CycleLayout = overlay.CycleLayout
	}
	if overlay.WorkspaceModifier != nil {
		out.WorkspaceModifier = overlay.WorkspaceModifier
	}
	return &out
}
