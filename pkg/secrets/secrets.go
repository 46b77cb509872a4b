package secrets

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
)

// Resolver resolves a named secret to its raw bytes.
type Resolver interface {
	Resolve(name string) ([]byte, error)
}

// NotFoundError reports a secret that no backend could provide.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("secret %q not found", e.Name)
}

// Env resolves secrets directly from environment variables.
type Env struct{}

func (Env) Resolve(name string) ([]byte, error) {
	value, ok := os.LookupEnv(name)
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return []byte(value), nil
}

// EnvBase64 resolves secrets from base64-encoded environment variables.
type EnvBase64 struct{}

func (EnvBase64) Resolve(name string) ([]byte, error) {
	value, ok := os.LookupEnv(name)
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decoding secret %q: %w", name, err)
	}
	return decoded, nil
}

// File resolves secrets from files under Dir, keyed by file name.
type File struct {
	Dir string
}

func (f File) Resolve(name string) ([]byte, error) {
	data, err := os.ReadFile(f.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Name: name}
		}
		return nil, fmt.Errorf("reading secret %q: %w", name, err)
	}
	return data, nil
}

func (f File) path(name string) string {
	if f.Dir == "" {
		return name
	}
	return filepath.Join(f.Dir, name)
}
