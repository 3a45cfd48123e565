package ai

import "errors"

var (
	// ErrEmptyContent means the provider answered but the envelope carried no message content.
	ErrEmptyContent = errors.New("provider response has no content")
	// ErrBadEnvelope means the provider body could not be decoded as a completion envelope.
	ErrBadEnvelope = errors.New("provider response envelope is not valid JSON")
	// ErrUnterminatedFence means the content opened a code fence and never closed it.
	ErrUnterminatedFence = errors.New("code fence is not terminated")
)

// PromptRequest is the body of a prompt-execution call.
type PromptRequest struct {
	// Replacements fills the template variables of the stored prompt.
	Replacements any `json:"replacements"`

	// PromptID selects the stored prompt on the provider side.
	PromptID string `json:"promptid"`
}

// IsMalformed reports whether err comes from the shape of a provider answer
// rather than from reaching the provider.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrEmptyContent) ||
		errors.Is(err, ErrBadEnvelope) ||
		errors.Is(err, ErrUnterminatedFence)
}

type promptResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
