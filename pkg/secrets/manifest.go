package secrets

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source declares where a single named secret comes from. Exactly one
// field must be set.
type Source struct {
	Env       string `yaml:"env,omitempty"`
	EnvBase64 string `yaml:"envBase64,omitempty"`
	File      string `yaml:"file,omitempty"`
}

// Store resolves secrets according to a manifest mapping secret names
// to their sources.
type Store struct {
	Sources map[string]Source `yaml:"secrets"`
}

// LoadManifest reads a YAML secrets manifest and validates it.
func LoadManifest(filename string) (*Store, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading secrets manifest: %w", err)
	}

	var s Store
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing secrets manifest: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("validating secrets manifest %s: %w", filename, err)
	}

	return &s, nil
}

// Validate checks that every entry names exactly one source.
func (s *Store) Validate() error {
	for name, src := range s.Sources {
		set := 0
		if src.Env != "" {
			set++
		}
		if src.EnvBase64 != "" {
			set++
		}
		if src.File != "" {
			set++
		}
		if set != 1 {
			return fmt.Errorf("secret %q: exactly one of env, envBase64, file must be set", name)
		}
	}
	return nil
}

func (s *Store) Resolve(name string) ([]byte, error) {
	src, ok := s.Sources[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}

	switch {
	case src.Env != "":
		return Env{}.Resolve(src.Env)
	case src.EnvBase64 != "":
		return EnvBase64{}.Resolve(src.EnvBase64)
	default:
		data, err := os.ReadFile(src.File)
		if err != nil {
			return nil, fmt.Errorf("reading secret file for %q: %w", name, err)
		}
		return data, nil
	}
}
