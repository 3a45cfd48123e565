package travelplan

import (
	"context"

	"travelplan/internal/ai"
)

// Requester runs the three travel prompts against one provider.
type Requester struct {
	completer ai.Completer
	policy    RetryPolicy
}

func NewRequester(completer ai.Completer, policy RetryPolicy) *Requester {
	return &Requester{completer: completer, policy: policy}
}

func (r *Requester) Itinerary(ctx context.Context, in TravelFormInput) (*Itinerary, error) {
	return fetch[Itinerary](ctx, r.completer, promptRequest(PromptItinerary, in), r.policy)
}

func (r *Requester) Eateries(ctx context.Context, in TravelFormInput) (*Eateries, error) {
	return fetch[Eateries](ctx, r.completer, promptRequest(PromptEateries, in), r.policy)
}

func (r *Requester) Faqs(ctx context.Context, in TravelFormInput) (*Faqs, error) {
	return fetch[Faqs](ctx, r.completer, promptRequest(PromptFaqs, in), r.policy)
}

func promptRequest(promptID string, in TravelFormInput) ai.PromptRequest {
	return ai.PromptRequest{
		Replacements: BuildReplacements(in),
		PromptID:     promptID,
	}
}
