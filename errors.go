package gostory

import (
	"errors"

	"github.com/datar-psa/gostory/api"
	"github.com/datar-psa/gostory/safety"
)

var (
	// ErrGenerationFailed is matched by every error a generator returns
	ErrGenerationFailed = api.ErrGenerationFailed
	// ErrContentFlagged is returned when a generated story fails moderation
	ErrContentFlagged = safety.ErrContentFlagged
	// ErrNoGenerator is returned when a StoryTeller has no LLM generator configured
	ErrNoGenerator = errors.New("LLM generator is required")
)

// FlaggedError is the concrete error behind ErrContentFlagged. It carries the
// story text and the categories above the threshold.
type FlaggedError = safety.FlaggedError
