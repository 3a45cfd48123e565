package ai

import (
	"context"
)

// Completer runs a stored prompt with the given replacements and returns the
// content of the first choice the provider produced.
// Implementations return ErrEmptyContent when the provider answered without content.
type Completer interface {
	Complete(ctx context.Context, req PromptRequest) (string, error)
}
