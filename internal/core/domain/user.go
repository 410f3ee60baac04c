package domain

// User is the minimal identity record this service needs: an owner for
// scoping and an admin flag for the unscoped analytics surface. Session
// handling beyond JWT verification lives outside this core.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"isAdmin"`
	AuditFields
}
