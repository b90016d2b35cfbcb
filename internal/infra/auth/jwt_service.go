// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"taskboard/config"
	"taskboard/internal/domain/entity"
	"taskboard/internal/domain/repository"
	"taskboard/internal/domain/service"
	"taskboard/internal/errors"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// tokenClaims is the wire shape of both token types. The user identifier
// shadows the registered "sub" claim; refresh tokens additionally carry the
// registered "jti" used as the revocation key.
type tokenClaims struct {
	UserID uuid.UUID `json:"sub"`
	Type   string    `json:"type"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using
// the JWT standard. Access tokens are fully stateless; refresh tokens consult
// the revocation store on every validation.
type jwtService struct {
	secret         []byte
	accessTTL      time.Duration
	refreshTTL     time.Duration
	revocationRepo repository.RevocationRepository
}

// NewJWTService is the constructor for jwtService. All tokens are signed with
// the single process-wide secret from the configuration.
func NewJWTService(cfg *config.Config, revocationRepo repository.RevocationRepository) (service.TokenService, error) {
	if cfg.SecretKey.Signing == "" {
		return nil, errors.New("jwt signing secret must be provided")
	}

	return &jwtService{
		secret:         []byte(cfg.SecretKey.Signing),
		accessTTL:      accessTokenTTL,
		refreshTTL:     refreshTokenTTL,
		revocationRepo: revocationRepo,
	}, nil
}

// Issue creates a new access and refresh token pair for a given user.
func (s *jwtService) Issue(userID uuid.UUID) (*service.TokenPair, error) {
	now := time.Now()

	accessToken, err := s.signToken(&tokenClaims{
		UserID: userID,
		Type:   service.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign access token")
	}

	refreshToken, err := s.signToken(&tokenClaims{
		UserID: userID,
		Type:   service.TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign refresh token")
	}

	return &service.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Validate checks signature, expiry and the type marker and returns the bound
// user identifier. Refresh tokens are also checked against the revocation store.
func (s *jwtService) Validate(ctx context.Context, tokenString, expectedType string) (uuid.UUID, error) {
	claims, err := s.parseClaims(ctx, tokenString, expectedType)
	if err != nil {
		return uuid.Nil, err
	}

	return claims.UserID, nil
}

// Refresh validates the refresh token and reissues a pair. The refresh token
// keeps its original identifier and expiry: it is signed anew with the same
// claims rather than rotated, so it stays usable until its fixed expiry or an
// explicit revocation.
func (s *jwtService) Refresh(ctx context.Context, refreshToken string) (*service.TokenPair, error) {
	claims, err := s.parseClaims(ctx, refreshToken, service.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	accessToken, err := s.signToken(&tokenClaims{
		UserID: claims.UserID,
		Type:   service.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign access token")
	}

	reissued, err := s.signToken(claims)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reissue refresh token")
	}

	return &service.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: reissued,
	}, nil
}

// Revoke verifies the refresh token and durably records its identifier in the
// revocation store. A second revocation of the same token is a no-op.
func (s *jwtService) Revoke(ctx context.Context, refreshToken string) error {
	claims, err := s.parseClaims(ctx, refreshToken, service.TokenTypeRefresh)
	if err != nil {
		if errors.Is(err, service.ErrTokenRevoked) {
			// Already blacklisted; revocation is idempotent.
			return nil
		}

		return err
	}

	tokenID, err := uuid.Parse(claims.ID)
	if err != nil {
		return service.ErrTokenInvalid
	}

	record := &entity.RevokedToken{
		TokenID:   tokenID,
		RevokedAt: time.Now(),
	}
	if err := s.revocationRepo.Add(ctx, record); err != nil {
		return errors.Wrap(err, "failed to record token revocation")
	}

	return nil
}

// AccessTokenDuration returns the configured duration for access tokens.
func (s *jwtService) AccessTokenDuration() time.Duration {
	return s.accessTTL
}

// RefreshTokenDuration returns the configured duration for refresh tokens.
func (s *jwtService) RefreshTokenDuration() time.Duration {
	return s.refreshTTL
}

func (s *jwtService) signToken(claims *tokenClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.secret)
}

// parseClaims verifies a token string end to end: signature, expiry, the type
// marker, and (for refresh tokens) the revocation blacklist.
func (s *jwtService) parseClaims(ctx context.Context, tokenString, expectedType string) (*tokenClaims, error) {
	claims := &tokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, service.ErrTokenExpired
		}

		return nil, service.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, service.ErrTokenInvalid
	}

	if claims.Type != expectedType {
		return nil, service.ErrTokenInvalid
	}

	if claims.Type == service.TokenTypeRefresh {
		tokenID, err := uuid.Parse(claims.ID)
		if err != nil {
			return nil, service.ErrTokenInvalid
		}

		revoked, err := s.revocationRepo.IsRevoked(ctx, tokenID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to check token revocation")
		}
		if revoked {
			return nil, service.ErrTokenRevoked
		}
	}

	return claims, nil
}
