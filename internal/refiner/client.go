// Package refiner resolves ambiguous statement rows through a hosted language
// model. It is the only component with a network dependency and the only
// source of non-determinism in the pipeline, so everything around the model
// call is defensive: bounded timeout, one retry on transport failure, strict
// schema validation of whatever comes back.
package refiner

import "context"

// Client is the transport seam to the hosted completion API. Implementations
// send one prompt and return the raw model text. Keeping the seam this narrow
// lets tests swap in a deterministic fake.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// MockClient returns canned responses in order, cycling on the last one.
type MockClient struct {
	Responses []string
	Err       error
	Calls     int
	Prompts   []string
}

// Complete implements Client.
func (m *MockClient) Complete(_ context.Context, prompt string) (string, error) {
	m.Calls++
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "[]", nil
	}
	idx := m.Calls - 1
	if idx >= len(m.Responses) {
		idx = len(m.Responses) - 1
	}
	return m.Responses[idx], nil
}
