package llm

import "context"

type purposeKey struct{}

// WithPurpose labels generation calls made with ctx, e.g. "quiz" or
// "tutor". The label is stored with each recorded request.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unlabelled".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unlabelled"
}
