package transaction

import (
	"context"
	"strings"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

// SuggestCategoryInput represents the input for a category suggestion.
type SuggestCategoryInput struct {
	Description string
}

// SuggestCategoryOutput represents the output of a category suggestion.
type SuggestCategoryOutput struct {
	Category   entity.DetailedCategory
	Bucket     entity.BudgetBucket
	Confidence float64
	Reason     string
}

// SuggestCategoryUseCase asks the category advisor for the closest detail
// category for a free-text description. Purely advisory: the caller decides
// whether to apply the suggestion.
type SuggestCategoryUseCase struct {
	advisor adapter.CategoryAdvisor
}

// NewSuggestCategoryUseCase creates a new SuggestCategoryUseCase instance.
func NewSuggestCategoryUseCase(advisor adapter.CategoryAdvisor) *SuggestCategoryUseCase {
	return &SuggestCategoryUseCase{advisor: advisor}
}

// Execute performs the category suggestion.
func (uc *SuggestCategoryUseCase) Execute(ctx context.Context, input SuggestCategoryInput) (*SuggestCategoryOutput, error) {
	if uc.advisor == nil || !uc.advisor.IsAvailable() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeAdvisorUnavailable,
			"category advisor is not configured",
			domainerror.ErrAdvisorUnavailable,
		)
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyDescription,
			"description is required",
			domainerror.ErrEmptyDescription,
		)
	}

	suggestion, err := uc.advisor.Suggest(ctx, description)
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeAdvisorUnavailable,
			"category advisor request failed",
			err,
		)
	}

	category := suggestion.Category
	if !category.IsValid() {
		category = entity.CategoryOther
	}

	return &SuggestCategoryOutput{
		Category:   category,
		Bucket:     entity.BudgetBucketFor(category),
		Confidence: suggestion.Confidence,
		Reason:     suggestion.Reason,
	}, nil
}
