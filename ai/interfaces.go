package ai

import (
	"context"

	"github.com/poiesic/matchit/core"
	"github.com/poiesic/matchit/embedding"
)

// Embedder generates flat vector embeddings from text for semantic
// similarity scoring. Implementations must be thread-safe for
// concurrent use and must normalize whatever shape their backing
// provider returns before handing a vector back.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// A nil vector with a nil error means the provider responded but no
	// numeric data could be located; callers skip the affected item.
	EmbedText(ctx context.Context, text string) (embedding.Vector, error)
}

// AttributeExtractor turns free text into a normalized attribute map.
// Implementations must be thread-safe for concurrent use.
type AttributeExtractor interface {
	// ExtractAttributes analyzes a prompt and extracts semantic
	// attributes such as color, size, type, material, condition, and a
	// maximum search distance.
	//
	// Malformed provider output never produces an error: the extractor
	// recovers what it can and, as the last resort, returns a map
	// holding the original prompt under the "query" key. An error is
	// returned only when the provider itself is unreachable.
	ExtractAttributes(ctx context.Context, prompt string) (core.Attributes, error)
}

// Composer produces the final natural-language answer for a prompt
// from the single best match. Implementations must be thread-safe.
type Composer interface {
	// Compose describes the top match in short, human-readable prose.
	// Returns an error only when the provider is unreachable; the
	// caller substitutes a fixed apologetic message in that case.
	Compose(ctx context.Context, prompt string, attributes core.Attributes, top *core.Match) (string, error)
}

// Provider aggregates the AI services for convenient initialization
// and lifecycle management.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// AttributeExtractor returns the attribute extraction service.
	AttributeExtractor() AttributeExtractor

	// Composer returns the response composition service.
	Composer() Composer

	// Close releases resources held by the provider and its services.
	Close() error
}
