// Package entity defines the core business entities for the domain layer.
package entity

// BudgetBucket represents one of the 50/30/20 budget buckets used for
// analytics, plus a separate bucket for income so it never skews spending.
type BudgetBucket string

const (
	BucketNeeds   BudgetBucket = "NEEDS"
	BucketWants   BudgetBucket = "WANTS"
	BucketSavings BudgetBucket = "SAVINGS"
	BucketIncome  BudgetBucket = "INCOME"
)

// BudgetShare returns the 50/30/20 share of income allocated to the bucket.
// Income has no share of itself.
func (b BudgetBucket) BudgetShare() float64 {
	switch b {
	case BucketNeeds:
		return 0.5
	case BucketWants:
		return 0.3
	case BucketSavings:
		return 0.2
	default:
		return 0
	}
}

// IsValid reports whether the bucket is one of the known values.
func (b BudgetBucket) IsValid() bool {
	switch b {
	case BucketNeeds, BucketWants, BucketSavings, BucketIncome:
		return true
	}
	return false
}

// DetailedCategory is the fixed detail taxonomy a transaction or recurring
// payment is labeled with. Each detail category maps to exactly one budget
// bucket via BudgetBucketFor.
type DetailedCategory string

const (
	CategoryHousing       DetailedCategory = "housing"
	CategoryUtilities     DetailedCategory = "utilities"
	CategoryGroceries     DetailedCategory = "groceries"
	CategoryTransport     DetailedCategory = "transport"
	CategoryInsurance     DetailedCategory = "insurance"
	CategoryHealthcare    DetailedCategory = "healthcare"
	CategoryDebt          DetailedCategory = "debt"
	CategorySubscriptions DetailedCategory = "subscriptions"
	CategoryEntertainment DetailedCategory = "entertainment"
	CategoryDining        DetailedCategory = "dining"
	CategoryShopping      DetailedCategory = "shopping"
	CategoryPersonal      DetailedCategory = "personal"
	CategorySavings       DetailedCategory = "savings"
	CategoryInvestments   DetailedCategory = "investments"
	CategoryEmergencyFund DetailedCategory = "emergency_fund"
	CategorySalary        DetailedCategory = "salary"
	CategoryOther         DetailedCategory = "other"
)

// budgetBucketByCategory is the static detail-to-bucket mapping.
var budgetBucketByCategory = map[DetailedCategory]BudgetBucket{
	CategoryHousing:       BucketNeeds,
	CategoryUtilities:     BucketNeeds,
	CategoryGroceries:     BucketNeeds,
	CategoryTransport:     BucketNeeds,
	CategoryInsurance:     BucketNeeds,
	CategoryHealthcare:    BucketNeeds,
	CategoryDebt:          BucketNeeds,
	CategorySubscriptions: BucketWants,
	CategoryEntertainment: BucketWants,
	CategoryDining:        BucketWants,
	CategoryShopping:      BucketWants,
	CategoryPersonal:      BucketWants,
	CategorySavings:       BucketSavings,
	CategoryInvestments:   BucketSavings,
	CategoryEmergencyFund: BucketSavings,
	CategorySalary:        BucketIncome,
	CategoryOther:         BucketWants,
}

// BudgetBucketFor resolves the budget bucket for a detail category.
// Unknown categories fall back to WANTS.
func BudgetBucketFor(category DetailedCategory) BudgetBucket {
	if bucket, ok := budgetBucketByCategory[category]; ok {
		return bucket
	}
	return BucketWants
}

// AllDetailedCategories lists every known detail category, in display order.
func AllDetailedCategories() []DetailedCategory {
	return []DetailedCategory{
		CategoryHousing, CategoryUtilities, CategoryGroceries,
		CategoryTransport, CategoryInsurance, CategoryHealthcare,
		CategoryDebt, CategorySubscriptions, CategoryEntertainment,
		CategoryDining, CategoryShopping, CategoryPersonal,
		CategorySavings, CategoryInvestments, CategoryEmergencyFund,
		CategorySalary, CategoryOther,
	}
}

// IsValid reports whether the detail category belongs to the taxonomy.
func (c DetailedCategory) IsValid() bool {
	_, ok := budgetBucketByCategory[c]
	return ok
}
