package analysis

import "context"

// Document is the encoded report handed to the inference provider.
type Document struct {
	MIME string
	Data []byte
}

// Client abstracts the multimodal inference provider.
// Implementations must be concurrency-safe if used across goroutines.
type Client interface {
	// Analyze sends the prompt and document jointly to the provider and
	// returns the raw free-form text of its response. One invocation per
	// call; retries are the caller's concern (and by policy there are none).
	Analyze(ctx context.Context, prompt string, doc Document) (string, error)
	// SourceName returns a short provider label (e.g. "Gemini", "OpenAI").
	SourceName() string
}
