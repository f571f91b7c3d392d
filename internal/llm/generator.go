// Package llm wraps the text-generation collaborator.
package llm

import "context"

// Generator produces text for a prompt. Implementations must honor the
// context deadline; callers treat any error as a degraded-answer signal,
// never as a fatal condition.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
