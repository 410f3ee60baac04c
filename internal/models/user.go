package models

// User mirrors a row of the users table.
type User struct {
	UserID       string
	Name         string
	Email        string
	PasswordHash string
	IsAdmin      bool
	AuditFields
}
