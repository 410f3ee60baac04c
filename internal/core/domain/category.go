package domain

// CategoryType mirrors TransactionType for category grouping.
type CategoryType string

const (
	CategoryIncome  CategoryType = "INCOME"
	CategoryExpense CategoryType = "EXPENSE"
)

// IsValid reports whether the type is one of the known category types.
func (t CategoryType) IsValid() bool {
	return t == CategoryIncome || t == CategoryExpense
}

// Category is a named grouping used for validation and UI display only.
// A category with an empty OwnerID is a system default shared by everyone;
// a user-owned category overrides a default with the same name and type.
// Transactions and budgets reference categories by name, not by ID.
type Category struct {
	CategoryID string       `json:"categoryID"` // Primary Key (UUID)
	OwnerID    string       `json:"ownerID"`    // Empty for system defaults
	Name       string       `json:"name"`
	Type       CategoryType `json:"type"`
	Color      string       `json:"color"` // Display color, e.g. "#4caf50"
	AuditFields
}

// IsDefault reports whether the category is a shared system default.
func (c Category) IsDefault() bool {
	return c.OwnerID == ""
}
