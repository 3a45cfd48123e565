package travelplan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"travelplan/internal/ai"
)

// validator is implemented by every prompt result type.
type validator[T any] interface {
	*T
	Validate() error
}

// RetryPolicy bounds the sequential attempts of one prompt call.
type RetryPolicy struct {
	Attempts int
	// BaseDelay is doubled after each failed attempt; zero retries immediately.
	BaseDelay time.Duration
}

// fetch runs one prompt until it yields a valid T or the attempts are spent.
func fetch[T any, PT validator[T]](ctx context.Context, c ai.Completer, req ai.PromptRequest, policy RetryPolicy) (*T, error) {
	const op = "travelplan.fetch"
	attempts := max(policy.Attempts, 1)

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		zap.L().Debug("prompt attempt",
			zap.String("prompt_id", req.PromptID),
			zap.Int("attempt", attempt+1),
		)

		result, err := fetchOnce[T, PT](ctx, c, req)
		if err == nil {
			return result, nil
		}
		lastErr = err

		zap.L().Warn("prompt attempt failed",
			zap.String("prompt_id", req.PromptID),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)

		if ctx.Err() != nil {
			return nil, &Error{Kind: KindOf(err), Op: op, Err: ctx.Err()}
		}
		if attempt == attempts-1 {
			break
		}
		if wait := backoff(policy.BaseDelay, attempt); wait > 0 {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, &Error{Kind: KindOf(err), Op: op, Err: ctx.Err()}
			}
		}
	}
	return nil, &Error{
		Kind: KindOf(lastErr),
		Op:   op,
		Err:  fmt.Errorf("failed after %d attempts: %w", attempts, lastErr),
	}
}

func fetchOnce[T any, PT validator[T]](ctx context.Context, c ai.Completer, req ai.PromptRequest) (*T, error) {
	content, err := c.Complete(ctx, req)
	if err != nil {
		if ai.IsMalformed(err) {
			return nil, &Error{Kind: KindMalformedResponse, Op: "complete", Err: err}
		}
		return nil, &Error{Kind: KindTransport, Op: "complete", Err: err}
	}

	doc, err := ai.ExtractJSON(content)
	if err != nil {
		return nil, &Error{Kind: KindMalformedResponse, Op: "extract", Err: err}
	}

	var shape any
	if err := json.Unmarshal([]byte(doc), &shape); err != nil {
		return nil, &Error{Kind: KindMalformedResponse, Op: "parse", Err: err}
	}
	if _, ok := shape.(map[string]any); !ok {
		return nil, &Error{Kind: KindMalformedResponse, Op: "parse", Err: errors.New("response is not a JSON object")}
	}

	result := new(T)
	if err := json.Unmarshal([]byte(doc), result); err != nil {
		return nil, &Error{Kind: KindValidation, Op: "decode", Err: err}
	}
	if err := PT(result).Validate(); err != nil {
		return nil, &Error{Kind: KindValidation, Op: "validate", Err: err}
	}
	return result, nil
}

func backoff(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		return 0
	}
	d := float64(base) * float64(int(1)<<attempt)
	jitter := rand.Float64() * 0.2 * d
	return time.Duration(d + jitter)
}
