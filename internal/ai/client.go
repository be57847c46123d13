// Package ai produces entry summaries through an external text-completion
// service with a tiered model fallback.
package ai

import "context"

// CompletionClient sends one prompt to one model and returns its text
// output. Implementations cover the OpenAI-compatible chat API and Ollama.
type CompletionClient interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}
