// Package suggest turns a free-text description into skill names. Every
// implementation reports upstream trouble as ErrSuggestionUnavailable so
// callers can treat suggestions as best-effort.
package suggest

import (
	"context"
	"errors"
	"strings"
)

var ErrSuggestionUnavailable = errors.New("skill suggestions unavailable")

const maxSuggestions = 10

type Suggester interface {
	Suggest(ctx context.Context, prompt string) ([]string, error)
}

type Func func(ctx context.Context, prompt string) ([]string, error)

func (f Func) Suggest(ctx context.Context, prompt string) ([]string, error) {
	return f(ctx, prompt)
}

// Normalize lower-cases prompt and collapses runs of whitespace.
func Normalize(prompt string) string {
	return strings.ToLower(strings.Join(strings.Fields(prompt), " "))
}

// Clean trims names, drops blanks and case-insensitive duplicates and caps
// the result length. The first spelling of a duplicate is kept.
func Clean(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.Join(strings.Fields(s), " ")
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
