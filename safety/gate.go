package safety

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/datar-psa/gostory/api"
)

// DefaultThreshold is used when GateOptions.Threshold is not positive
const DefaultThreshold = 0.5

// ErrContentFlagged is matched by *FlaggedError
var ErrContentFlagged = errors.New("content flagged by moderation")

// GateOptions configures the Gate
type GateOptions struct {
	// Threshold is the confidence threshold for flagging content (0.0-1.0)
	Threshold float64
	// Categories to check for moderation (empty = all categories)
	Categories []string
}

// Gate rejects text that a moderation provider flags above a threshold
type Gate struct {
	provider api.ModerationProvider
	opts     GateOptions
}

// NewGate returns a gate backed by provider
func NewGate(provider api.ModerationProvider, opts GateOptions) *Gate {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	return &Gate{provider: provider, opts: opts}
}

// FlaggedError reports which categories crossed the threshold for Text
type FlaggedError struct {
	Text      string
	Threshold float64
	Flagged   []api.ModerationCategory
}

func (e *FlaggedError) Error() string {
	names := make([]string, len(e.Flagged))
	for i, c := range e.Flagged {
		names[i] = fmt.Sprintf("%s=%.2f", c.Name, c.Confidence)
	}
	return fmt.Sprintf("%s (threshold %.2f): %v", ErrContentFlagged, e.Threshold, names)
}

func (e *FlaggedError) Is(target error) bool { return target == ErrContentFlagged }

// Check moderates text. It returns the full moderation result and, when any
// considered category is above the threshold, a *FlaggedError.
func (g *Gate) Check(ctx context.Context, text string) (*api.ModerationResult, error) {
	if g.provider == nil {
		return nil, fmt.Errorf("moderation provider is required")
	}

	result, err := g.provider.Moderate(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to moderate content: %w", err)
	}
	if result == nil {
		result = &api.ModerationResult{}
	}

	considered := result
	if len(g.opts.Categories) > 0 {
		considered = &api.ModerationResult{}
		for _, c := range result.Categories {
			if slices.Contains(g.opts.Categories, c.Name) {
				considered.Categories = append(considered.Categories, c)
			}
		}
	}

	if flagged := considered.Above(g.opts.Threshold); len(flagged) > 0 {
		return result, &FlaggedError{Text: text, Threshold: g.opts.Threshold, Flagged: flagged}
	}
	return result, nil
}
