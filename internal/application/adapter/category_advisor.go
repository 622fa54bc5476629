// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/budgetwise/backend/internal/domain/entity"
)

// CategorySuggestion represents the advisor's best guess for a description.
type CategorySuggestion struct {
	Category   entity.DetailedCategory
	Confidence float64 // 0.0 to 1.0
	Reason     string
}

// CategoryAdvisor defines the interface for AI-assisted category suggestions.
type CategoryAdvisor interface {
	// IsAvailable reports whether the advisor is configured and usable.
	IsAvailable() bool

	// Suggest picks the closest detail category for a transaction description.
	Suggest(ctx context.Context, description string) (*CategorySuggestion, error)
}
