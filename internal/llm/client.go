package llm

import "context"

// Request is one completion request: the model to use, the fixed instruction
// payload, the user prompt, and an optional response schema the provider
// enforces server-side when its API supports that.
type Request struct {
	Model  string
	System string
	Prompt string
	Schema *Schema
}

// Client sends a request to an LLM backend and returns the reply text.
// Model is provider-specific (e.g. "gemini-2.5-flash", "gpt-4o-mini");
// empty means the provider's default.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)

	// Configured reports whether the provider has what it needs to run
	// (credential, endpoint). Unconfigured providers fail Complete
	// immediately without network traffic.
	Configured() bool
}
