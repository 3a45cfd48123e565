package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-2.0-flash"

// GeminiCompleter implements Completer on Google's Gemini models. Stored
// prompts are emulated locally: each prompt id maps to an instruction text that
// is sent together with the replacements.
type GeminiCompleter struct {
	client       *genai.Client
	model        *genai.GenerativeModel
	instructions map[string]string
}

// NewGeminiCompleter initializes a Gemini client. instructions maps prompt ids
// to the instruction text used for them.
func NewGeminiCompleter(ctx context.Context, apiKey string, instructions map[string]string) (*GeminiCompleter, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(geminiModel)
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.7)

	return &GeminiCompleter{
		client:       client,
		model:        model,
		instructions: instructions,
	}, nil
}

// Close cleans up the Gemini client resources.
func (g *GeminiCompleter) Close() {
	g.client.Close()
}

// Complete renders the prompt for req and returns the concatenated text parts
// of the first candidate.
func (g *GeminiCompleter) Complete(ctx context.Context, req PromptRequest) (string, error) {
	prompt, err := renderPrompt(g.instructions, req)
	if err != nil {
		return "", err
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: prompt %s: %w", req.PromptID, ErrEmptyContent)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", fmt.Errorf("gemini: prompt %s: %w", req.PromptID, ErrEmptyContent)
	}
	return text.String(), nil
}

func renderPrompt(instructions map[string]string, req PromptRequest) (string, error) {
	instruction, ok := instructions[req.PromptID]
	if !ok {
		return "", fmt.Errorf("gemini: no instruction for prompt %s", req.PromptID)
	}
	vars, err := json.MarshalIndent(req.Replacements, "", "  ")
	if err != nil {
		return "", fmt.Errorf("gemini: marshal replacements: %w", err)
	}
	return fmt.Sprintf("%s\n\nTrip details:\n%s\n\nRespond with a single JSON object only.", instruction, vars), nil
}
