package mock

import (
	"context"
	"strings"

	"github.com/poiesic/matchit/core"
)

// MockAttributeExtractor is a test double for ai.AttributeExtractor.
// It allows custom behavior injection via function fields.
type MockAttributeExtractor struct {
	// ExtractAttributesFunc is called by ExtractAttributes if set.
	// If nil, uses a default naive word scan.
	ExtractAttributesFunc func(ctx context.Context, prompt string) (core.Attributes, error)

	callCount int
}

// NewMockAttributeExtractor creates a mock extractor with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockAttributeExtractor() *MockAttributeExtractor {
	return &MockAttributeExtractor{}
}

// knownColors drives the default extraction heuristic.
var knownColors = map[string]bool{
	"red": true, "blue": true, "green": true, "black": true, "white": true,
	"yellow": true, "brown": true, "purple": true,
}

// ExtractAttributes applies a naive word scan: known color words become
// the color attribute, and the last word becomes the type.
func (m *MockAttributeExtractor) ExtractAttributes(ctx context.Context, prompt string) (core.Attributes, error) {
	m.callCount++

	if m.ExtractAttributesFunc != nil {
		return m.ExtractAttributesFunc(ctx, prompt)
	}

	attributes := core.Attributes{}
	words := strings.Fields(strings.ToLower(prompt))
	for _, word := range words {
		if knownColors[word] {
			attributes["color"] = word
		}
	}
	if len(words) > 0 {
		attributes["type"] = words[len(words)-1]
	}
	return attributes, nil
}

// CallCount returns the number of times ExtractAttributes was called.
func (m *MockAttributeExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *MockAttributeExtractor) Reset() {
	m.callCount = 0
	m.ExtractAttributesFunc = nil
}
