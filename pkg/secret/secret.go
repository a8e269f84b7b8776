// Package secret resolves the api_key reference stored in configuration to
// the actual key value.
//
// Supported references:
//
//	env:NAME      value of the environment variable NAME
//	file:/path    trimmed contents of the file
//	anything else the reference is the key itself
package secret

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrEmptyReference is returned when no key reference is configured.
	ErrEmptyReference = errors.New("secret: empty key reference")
	// ErrNotFound is returned when the referenced secret does not exist.
	ErrNotFound = errors.New("secret: not found")
)

// Resolver turns a key reference into a secret value.
type Resolver interface {
	Resolve(ref string) (string, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ref string) (string, error)

// Resolve calls f(ref).
func (f ResolverFunc) Resolve(ref string) (string, error) {
	return f(ref)
}

// Default is the resolver used by the command line tools.
var Default Resolver = ResolverFunc(resolve)

func resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrEmptyReference
	}

	switch {
	case strings.HasPrefix(ref, "env:"):
		name := strings.TrimPrefix(ref, "env:")
		value, ok := os.LookupEnv(name)
		if !ok || value == "" {
			return "", fmt.Errorf("environment variable %s: %w", name, ErrNotFound)
		}
		return value, nil
	case strings.HasPrefix(ref, "file:"):
		path := strings.TrimPrefix(ref, "file:")
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("key file %s: %w", path, ErrNotFound)
			}
			return "", fmt.Errorf("reading key file %s: %w", path, err)
		}
		value := strings.TrimSpace(string(data))
		if value == "" {
			return "", fmt.Errorf("key file %s is empty: %w", path, ErrNotFound)
		}
		return value, nil
	default:
		return ref, nil
	}
}

// Describe returns a form of the reference that is safe to log.
func Describe(ref string) string {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return "(none)"
	case strings.HasPrefix(ref, "env:"), strings.HasPrefix(ref, "file:"):
		return ref
	case len(ref) <= 4:
		return "****"
	default:
		return ref[:4] + "****"
	}
}
