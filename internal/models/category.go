package models

// Category mirrors a row of the categories table. OwnerID is NULL in the
// database for system defaults; the model uses a pointer to preserve that.
type Category struct {
	CategoryID string
	OwnerID    *string
	Name       string
	Type       string // 'INCOME' or 'EXPENSE'
	Color      string
	AuditFields
}
