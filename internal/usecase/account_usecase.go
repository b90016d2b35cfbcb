// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"taskboard/internal/domain/entity"
	"taskboard/internal/domain/service"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email           string
	FirstName       string
	LastName        string
	Password        string
	PasswordConfirm string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// AuthOutput returns the authenticated user together with a fresh token pair.
// The delivery layer turns the pair into session cookies.
type AuthOutput struct {
	User   *entity.User
	Tokens *service.TokenPair
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	// Register creates a new account and immediately signs it in.
	Register(ctx context.Context, input RegisterInput) (*AuthOutput, error)

	// Login verifies credentials and issues a token pair.
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)

	// Logout revokes the given refresh token. Revocation failures are logged
	// and swallowed: logout must always succeed from the caller's view.
	Logout(ctx context.Context, refreshToken string)

	// Refresh exchanges a valid refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*service.TokenPair, error)

	// GetProfile loads the account identified by the authenticated principal.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
