package suggest

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type timeoutSuggester struct {
	next    Suggester
	timeout time.Duration
}

// WithTimeout bounds every call to next by d and by the caller's context. The
// call runs on its own goroutine so a suggester that ignores ctx cannot hold
// the caller past the deadline.
func WithTimeout(next Suggester, d time.Duration) Suggester {
	return &timeoutSuggester{next: next, timeout: d}
}

type suggestResult struct {
	skills []string
	err    error
}

func (t *timeoutSuggester) Suggest(ctx context.Context, prompt string) ([]string, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	done := make(chan suggestResult, 1)
	go func() {
		skills, err := t.next.Suggest(ctx, prompt)
		done <- suggestResult{skills: skills, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			if errors.Is(r.err, ErrSuggestionUnavailable) {
				return nil, r.err
			}
			return nil, fmt.Errorf("%w: %w", ErrSuggestionUnavailable, r.err)
		}
		return Clean(r.skills), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrSuggestionUnavailable, ctx.Err())
	}
}
