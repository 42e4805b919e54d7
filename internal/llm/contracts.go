package llm

import "context"

// Completer is the generative-model collaborator: send a prompt, get text
// back. The pipeline only ever attempts to parse the response as JSON; it
// makes no other assumptions about the provider.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
