// Package dataset loads the company snapshot from disk.
// The dataset is read once at startup and treated as immutable.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/seedfolio/seedfolio/internal/domain/company"
)

// Load reads the company snapshot at path.
//
// Records whose embedding dimension disagrees with the dominant dimension
// of the dataset keep their metadata but lose the embedding, so they stay
// browsable and are simply skipped by semantic scoring.
func Load(path string, logger *zap.Logger) ([]company.Company, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}

	var companies []company.Company
	if err := json.Unmarshal(data, &companies); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}

	dims := dominantDimension(companies)
	dropped := 0
	for i := range companies {
		n := len(companies[i].Embedding)
		if n == 0 || n == dims {
			continue
		}
		logger.Warn("Dropping embedding with unexpected dimension",
			zap.String("company", companies[i].Name),
			zap.Int("dims", n),
			zap.Int("expected", dims),
		)
		companies[i].Embedding = nil
		dropped++
	}

	logger.Info("Loaded company dataset",
		zap.String("path", path),
		zap.Int("companies", len(companies)),
		zap.Int("embedding_dims", dims),
		zap.Int("dropped_embeddings", dropped),
	)

	return companies, nil
}

// dominantDimension returns the most common non-zero embedding length.
func dominantDimension(companies []company.Company) int {
	counts := make(map[int]int)
	for i := range companies {
		if n := len(companies[i].Embedding); n > 0 {
			counts[n]++
		}
	}

	best, bestCount := 0, 0
	for dims, count := range counts {
		if count > bestCount {
			best, bestCount = dims, count
		}
	}
	return best
}
