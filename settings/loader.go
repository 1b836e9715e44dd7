package settings

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"
)

type docLoader struct {
	Libs  []*libLoader  `yaml:"RAPIDS_LIBS"`
	Archs []*archLoader `yaml:"ARCHS"`
}

type libLoader struct {
	Name             string `yaml:"name"`
	UpdateSubmodules *bool  `yaml:"update_submodules"`
}

type archLoader struct {
	Name   string   `yaml:"name"`
	Images []string `yaml:"images"`
	OSList []string `yaml:"os_list"`
}

// top-level keys end up as template variable names
var reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// FromFile loads the settings document stored in fn.
func FromFile(fn string) (*Settings, error) {
	buf, err := os.ReadFile(fn)
	if err != nil {
		return nil, &ConfigError{Path: fn, Err: err}
	}
	s, err := parse(buf)
	if err != nil {
		return nil, &ConfigError{Path: fn, Err: err}
	}
	return s, nil
}

// FromBytes loads a settings document from memory.
func FromBytes(buf []byte) (*Settings, error) {
	s, err := parse(buf)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	return s, nil
}

func parse(buf []byte) (*Settings, error) {
	raw := map[string]any{}
	if err := yaml.Unmarshal(buf, &raw); err != nil {
		return nil, err
	}

	for _, k := range []string{KeyLibs, KeyArchs} {
		v, ok := raw[k]
		if !ok {
			return nil, fmt.Errorf("%w %s", ErrMissingKey, k)
		}
		if _, ok := v.([]any); !ok && v != nil {
			return nil, fmt.Errorf("%s must be a list", k)
		}
	}
	for _, k := range reservedKeys {
		if _, ok := raw[k]; ok {
			return nil, fmt.Errorf("%w %s: the name is set by the generator", ErrReservedKey, k)
		}
	}
	dl := docLoader{}
	if err := yaml.Unmarshal(buf, &dl); err != nil {
		return nil, err
	}

	s := &Settings{raw: raw}
	for k := range raw {
		if !reIdentifier.MatchString(k) {
			s.Ignored = append(s.Ignored, k)
			delete(raw, k)
		}
	}
	sort.Strings(s.Ignored)

	rawLibs, _ := raw[KeyLibs].([]any)
	for i, ll := range dl.Libs {
		if ll == nil || ll.Name == "" {
			return nil, fmt.Errorf("%s entry %d: missing name", KeyLibs, i)
		}
		lib := &Library{Name: ll.Name, UpdateSubmodules: true}
		if ll.UpdateSubmodules != nil {
			lib.UpdateSubmodules = *ll.UpdateSubmodules
		}
		// templates read the raw entries, keep them in sync with the defaults
		if m, ok := rawLibs[i].(map[string]any); ok {
			m["update_submodules"] = lib.UpdateSubmodules
		}
		s.Libs = append(s.Libs, lib)
	}

	rawArchs, _ := raw[KeyArchs].([]any)
	for i, al := range dl.Archs {
		m, _ := rawArchs[i].(map[string]any)
		if al == nil || m == nil {
			return nil, fmt.Errorf("%s entry %d: empty", KeyArchs, i)
		}
		for _, k := range []string{"name", "images", "os_list"} {
			if _, ok := m[k]; !ok {
				return nil, fmt.Errorf("%s entry %d: %w %s", KeyArchs, i, ErrMissingKey, k)
			}
		}
		if al.Name == "" {
			return nil, fmt.Errorf("%s entry %d: empty name", KeyArchs, i)
		}
		s.Archs = append(s.Archs, &Arch{
			Name:   al.Name,
			Images: al.Images,
			OSList: al.OSList,
		})
	}

	return s, nil
}

// IsConfigError reports whether err was caused by a bad settings document.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
