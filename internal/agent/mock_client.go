package agent

import "context"

// MockClient returns canned responses for testing. Set Err to exercise the
// degraded review path.
type MockClient struct {
	Response string
	Err      error
	Calls    int

	// LastSystem and LastPrompt capture the most recent request for
	// assertions on prompt construction.
	LastSystem string
	LastPrompt string
}

// DefaultReviewJSON is a well-formed review payload in the collaborator's
// wire format.
const DefaultReviewJSON = `{
	"notes": "Strong opening act with a clear escalation midway.",
	"findings": [
		"The gate confrontation resolves too quickly for its setup.",
		"Mara's motivation in the second scene is stated, not shown."
	],
	"metrics": {
		"stakesLevel": 3,
		"intimacyLevel": 2,
		"worldImpactLevel": 2,
		"paceLevel": 4
	},
	"suggestions": [
		{
			"reason": "Tighten the overwrought description.",
			"original": "the rain fell in heavy, relentless, unending sheets",
			"replacement": "the rain fell in sheets"
		}
	],
	"intentAlignment": {
		"achieved": true,
		"feedback": "The act delivers the promised confrontation."
	},
	"characterArcMovements": [
		{
			"characterId": "mara",
			"role": "protagonist",
			"arcMovement": "forward",
			"arcNotes": "Commits to the crossing despite the warning."
		}
	],
	"newCharactersFound": [
		{
			"name": "Gatekeeper Ruis",
			"role": "minor",
			"state": "guarding the north gate, suspicious of travelers"
		}
	],
	"outlineStatus": "aligned"
}`

func NewMockClient() *MockClient {
	return &MockClient{Response: DefaultReviewJSON}
}

func (m *MockClient) Complete(ctx context.Context, prompt string) (string, error) {
	return m.record("", prompt)
}

func (m *MockClient) CompleteJSON(ctx context.Context, prompt string) (string, error) {
	return m.record("", prompt)
}

func (m *MockClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return m.record(systemPrompt, userPrompt)
}

func (m *MockClient) CompleteJSONWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return m.record(systemPrompt, userPrompt)
}

func (m *MockClient) record(system, prompt string) (string, error) {
	m.Calls++
	m.LastSystem = system
	m.LastPrompt = prompt
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
