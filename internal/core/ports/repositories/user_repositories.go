package repositories

import (
	"context"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
)

// UserRepositoryFacade defines the persistence operations for users.
type UserRepositoryFacade interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate on an
	// existing email.
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByID retrieves a user by ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// CountAdmins returns the number of admin users; used to guard the
	// one-time admin bootstrap.
	CountAdmins(ctx context.Context) (int64, error)
}
