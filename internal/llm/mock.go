package llm

import (
	"context"
	"sync"
)

// Mock is a test Generator that returns a fixed reply and records prompts.
type Mock struct {
	mu      sync.Mutex
	Reply   string
	Err     error
	Prompts []string
}

// Generate returns the configured reply or error.
func (m *Mock) Generate(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}

// CallCount reports how many prompts were generated.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}
