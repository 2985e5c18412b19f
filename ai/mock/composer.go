package mock

import (
	"context"
	"fmt"

	"github.com/poiesic/matchit/core"
)

// MockComposer is a test double for ai.Composer.
// It allows custom behavior injection via function fields.
type MockComposer struct {
	// ComposeFunc is called by Compose if set.
	// If nil, returns a fixed deterministic description.
	ComposeFunc func(ctx context.Context, prompt string, attributes core.Attributes, top *core.Match) (string, error)

	callCount int
}

// NewMockComposer creates a mock composer with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockComposer() *MockComposer {
	return &MockComposer{}
}

// Compose returns a deterministic description of the top match.
func (m *MockComposer) Compose(ctx context.Context, prompt string, attributes core.Attributes, top *core.Match) (string, error) {
	m.callCount++

	if m.ComposeFunc != nil {
		return m.ComposeFunc(ctx, prompt, attributes, top)
	}
	if top == nil {
		return "", fmt.Errorf("mock composer: top match required")
	}
	return fmt.Sprintf("Found a %s match for %q.", top.Collection.Singular(), prompt), nil
}

// CallCount returns the number of times Compose was called.
func (m *MockComposer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *MockComposer) Reset() {
	m.callCount = 0
	m.ComposeFunc = nil
}
