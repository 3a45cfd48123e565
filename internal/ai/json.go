package ai

import (
	"strings"
	"unicode"
)

const codeFence = "```"

// ExtractJSON returns the JSON text carried by a completion, removing a
// surrounding markdown code fence (e.g. ```json ... ```) when present.
// Text that does not open with a fence is returned trimmed and otherwise untouched.
func ExtractJSON(content string) (string, error) {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, codeFence) {
		return s, nil
	}

	body := s[len(codeFence):]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		// The rest of the opening line is the language tag.
		body = body[nl+1:]
	} else {
		body = strings.TrimLeftFunc(body, unicode.IsLetter)
	}

	end := strings.Index(body, codeFence)
	if end < 0 {
		return "", ErrUnterminatedFence
	}
	return strings.TrimSpace(body[:end]), nil
}
