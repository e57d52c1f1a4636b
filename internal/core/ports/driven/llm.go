package driven

import "context"

// LLMService provides language model completions.
type LLMService interface {
	// Complete produces a text completion for the prompt.
	Complete(ctx context.Context, prompt string, opts CompleteOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string
}

// JSONCompleter is an optional extension of LLMService for providers
// that support structured (JSON object) output. When an LLMService also
// implements JSONCompleter, the answer router can ask for an explicit
// answer_found flag instead of matching sentinel phrases.
type JSONCompleter interface {
	// CompleteJSON produces a completion constrained to a single JSON
	// object and returns the raw JSON text.
	CompleteJSON(ctx context.Context, prompt string, opts CompleteOptions) (string, error)
}

// CompleteOptions configures a completion request.
type CompleteOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	// Zero means provider default.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}
