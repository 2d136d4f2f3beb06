// Package llm abstracts the text-generation provider used to draft
// application prose. The scoring core never calls into this package; the
// analysis service invokes it before combining the final score.
package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts LLM providers for application drafting.
type Client interface {
	DraftApplication(ctx context.Context, input DraftInput) (json.RawMessage, error)
}

// DraftInput captures the inputs needed to draft application prose.
type DraftInput struct {
	ProgramName    string
	ProgramSummary string
	CompanyName    string
	Industry       string
	Description    string
	Strengths      []string
	PlanTitle      string
	PlanPurpose    string
	PlanBackground string
	Implementation string
}

type fixJSONKey struct{}

// WithFixJSON returns a context signaling a fix-JSON retry with the given raw output.
func WithFixJSON(ctx context.Context, raw string) context.Context {
	return context.WithValue(ctx, fixJSONKey{}, raw)
}

// FixJSONFromContext returns the raw JSON to repair, if any.
func FixJSONFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(fixJSONKey{})
	raw, ok := val.(string)
	return raw, ok
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation for environments without a provider.
type PlaceholderClient struct{}

// DraftApplication returns ErrNotImplemented.
func (PlaceholderClient) DraftApplication(ctx context.Context, input DraftInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, ErrNotImplemented
}
