package agent

import "context"

// AIClient is the opaque structured-generation collaborator: prompt in,
// text or JSON out, fallible. The review orchestrator treats every failure
// mode (network, auth, malformed output) the same way and degrades softly.
type AIClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteJSON(ctx context.Context, prompt string) (string, error)
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	CompleteJSONWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
