// Package secrets resolves credentials from files, environment variables or
// inline configuration.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotConfigured is returned when no source holds a value.
var ErrNotConfigured = errors.New("not configured")

// Source describes where a secret may come from. File wins over Env, Env
// wins over Value.
type Source struct {
	// Name is used in error messages.
	Name  string
	Value string
	// Env is the name of an environment variable holding the secret.
	Env  string
	File string
}

// Load returns the trimmed secret. An error wrapping ErrNotConfigured is
// returned when every source is empty.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	if file := strings.TrimSpace(src.File); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return secret, nil
	}

	if env := strings.TrimSpace(src.Env); env != "" {
		if secret := strings.TrimSpace(os.Getenv(env)); secret != "" {
			return secret, nil
		}
	}

	if secret := strings.TrimSpace(src.Value); secret != "" {
		return secret, nil
	}

	return "", fmt.Errorf("%s is %w", name, ErrNotConfigured)
}

// Optional is Load for secrets that may be absent: an unconfigured secret
// yields an empty string and no error.
func Optional(src Source) (string, error) {
	secret, err := Load(src)
	if errors.Is(err, ErrNotConfigured) {
		return "", nil
	}
	return secret, err
}
