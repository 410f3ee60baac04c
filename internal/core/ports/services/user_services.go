package services

import (
	"context"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
)

// UserSvcFacade is the minimal identity surface this core needs. The rest of
// authentication (sessions, refresh, OAuth) lives outside and supplies an
// ownerID that is trusted completely.
type UserSvcFacade interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// VerifyCredentials checks email+password and returns the user on success.
	VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error)

	// EnsureAdminUser creates the bootstrap admin account once, guarded by an
	// existence check; safe to call on every startup.
	EnsureAdminUser(ctx context.Context, name, email, password string) error
}
