// Package llm abstracts the two completion backends behind a single
// interface so pipeline stages do not care which provider serves them.
package llm

import (
	"context"

	"github.com/rotisserie/eris"
)

// ErrEmptyCompletion reports that a provider returned success with no
// usable text. Stages treat this exactly like a provider failure; an
// empty stage output can never count as success.
var ErrEmptyCompletion = eris.New("llm: empty completion")

// Params are the per-call generation parameters. Temperature is always
// sent; MaxTokens of 0 lets the backend's default apply.
type Params struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Request is one completion call. Label attributes usage logs to the
// pipeline stage making the call.
type Request struct {
	System string
	Prompt string
	Params Params
	Label  string
}

// Completer produces a completion for a request. Implementations
// return the completion text or an error; they never return both empty
// text and a nil error.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}
