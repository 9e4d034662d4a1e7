package models

// CategoryType is the closed set of spending categories a budget can be
// allocated across. Expenses are classified with the same values.
type CategoryType string

const (
	CategoryHR         CategoryType = "HR"
	CategoryMarketing  CategoryType = "MARKETING"
	CategoryTravel     CategoryType = "TRAVEL"
	CategoryIT         CategoryType = "IT"
	CategoryOperations CategoryType = "OPERATIONS"
	CategoryTraining   CategoryType = "TRAINING"
)

// AllCategoryTypes lists every valid category.
var AllCategoryTypes = []CategoryType{
	CategoryHR,
	CategoryMarketing,
	CategoryTravel,
	CategoryIT,
	CategoryOperations,
	CategoryTraining,
}

// Valid reports whether c is a member of the closed category set.
func (c CategoryType) Valid() bool {
	switch c {
	case CategoryHR, CategoryMarketing, CategoryTravel, CategoryIT, CategoryOperations, CategoryTraining:
		return true
	}
	return false
}
