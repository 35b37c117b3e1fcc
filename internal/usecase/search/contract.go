package search

import (
	"context"

	"github.com/seedfolio/seedfolio/internal/domain"
)

// Embedder vectorizes query text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
