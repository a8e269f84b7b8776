// Package locale supplies the interface language sent to the search API
// as "hl" and stamped on every result record.
package locale

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Provider returns the current interface language for a request.
type Provider interface {
	Language(ctx context.Context) string
}

type ctxKey int

const (
	acceptLanguageKey ctxKey = iota
	explicitLanguageKey
)

// WithAcceptLanguage stores an Accept-Language header value in ctx.
func WithAcceptLanguage(ctx context.Context, header string) context.Context {
	if header == "" {
		return ctx
	}
	return context.WithValue(ctx, acceptLanguageKey, header)
}

// WithLanguage stores an explicit language choice in ctx. It takes
// precedence over Accept-Language.
func WithLanguage(ctx context.Context, tag string) context.Context {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ctx
	}
	return context.WithValue(ctx, explicitLanguageKey, tag)
}

// Normalize parses a BCP 47 tag and returns its canonical form.
func Normalize(tag string) (string, error) {
	t, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return "", fmt.Errorf("parsing language %q: %w", tag, err)
	}
	return t.String(), nil
}

// Fixed always returns the same language.
type Fixed string

// NewFixed returns a Fixed provider for the normalised tag.
func NewFixed(tag string) (Fixed, error) {
	norm, err := Normalize(tag)
	if err != nil {
		return "", err
	}
	return Fixed(norm), nil
}

// Language implements Provider.
func (f Fixed) Language(context.Context) string {
	return string(f)
}

// Matcher picks the best supported language for a request. The default
// language is used when nothing in the request matches.
type Matcher struct {
	supported []language.Tag
	matcher   language.Matcher
}

// NewMatcher builds a Matcher. The default tag is always supported.
func NewMatcher(defaultTag string, supported []string) (*Matcher, error) {
	def, err := language.Parse(strings.TrimSpace(defaultTag))
	if err != nil {
		return nil, fmt.Errorf("parsing default language %q: %w", defaultTag, err)
	}

	tags := []language.Tag{def}
	seen := map[string]bool{def.String(): true}
	for _, s := range supported {
		t, err := language.Parse(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("parsing supported language %q: %w", s, err)
		}
		if seen[t.String()] {
			continue
		}
		seen[t.String()] = true
		tags = append(tags, t)
	}

	return &Matcher{
		supported: tags,
		matcher:   language.NewMatcher(tags),
	}, nil
}

// Default returns the fallback language.
func (m *Matcher) Default() string {
	return m.supported[0].String()
}

// Supported returns the supported languages, default first.
func (m *Matcher) Supported() []string {
	out := make([]string, len(m.supported))
	for i, t := range m.supported {
		out[i] = t.String()
	}
	return out
}

// Language implements Provider.
func (m *Matcher) Language(ctx context.Context) string {
	if tag, ok := ctx.Value(explicitLanguageKey).(string); ok {
		if t, err := language.Parse(tag); err == nil {
			return m.match(t)
		}
	}
	if header, ok := ctx.Value(acceptLanguageKey).(string); ok {
		tags, _, err := language.ParseAcceptLanguage(header)
		if err == nil && len(tags) > 0 {
			return m.match(tags...)
		}
	}
	return m.Default()
}

func (m *Matcher) match(tags ...language.Tag) string {
	_, idx, conf := m.matcher.Match(tags...)
	if conf == language.No {
		return m.Default()
	}
	return m.supported[idx].String()
}
