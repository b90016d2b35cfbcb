// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "taskboard/internal/delivery/context"
	"taskboard/internal/delivery/http/cookie"
	"taskboard/internal/delivery/http/response"
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc      usecase.AccountUsecase
	cookies *cookie.Manager
	logger  *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, cookies *cookie.Manager, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:      uc,
		cookies: cookies,
		logger:  logger,
	}
}

// Register handles the registration request. A successful registration signs
// the new account in immediately: both session cookies ride on the response.
func (h *AccountHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.NewFieldError(domainerrors.NonFieldKey, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Password:        req.Password,
		PasswordConfirm: req.ConfirmPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.cookies.Attach(c, output.Tokens)

	return response.MessageWithUser(c, http.StatusCreated, "User registered successfully", output.User)
}

// Login handles the login request.
func (h *AccountHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.NewFieldError(domainerrors.NonFieldKey, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.cookies.Attach(c, output.Tokens)

	return response.MessageWithUser(c, http.StatusOK, "Login successful", output.User)
}

// Logout revokes the refresh token on a best-effort basis and always clears
// the session cookies. It never fails once the caller is authenticated.
func (h *AccountHandler) Logout(c echo.Context) error {
	refreshToken, _ := cookie.Read(c, cookie.RefreshTokenCookie)
	h.uc.Logout(c.Request().Context(), refreshToken)

	h.cookies.Clear(c)

	return response.Message(c, http.StatusOK, "Logout successful")
}

// Refresh exchanges the refresh cookie for a fresh access cookie. A missing
// or rejected token clears the session cookies so the client starts over.
func (h *AccountHandler) Refresh(c echo.Context) error {
	refreshToken, ok := cookie.Read(c, cookie.RefreshTokenCookie)
	if !ok {
		return domainerrors.ErrRefreshTokenMissing
	}

	tokens, err := h.uc.Refresh(c.Request().Context(), refreshToken)
	if err != nil {
		h.cookies.Clear(c)

		return errors.WithStack(err)
	}

	h.cookies.AttachAccess(c, tokens.AccessToken)

	return response.Message(c, http.StatusOK, "Access token refreshed successfully")
}

// GetProfile returns the authenticated account.
func (h *AccountHandler) GetProfile(c echo.Context) error {
	principal := deliverycontext.GetUser(c)
	if principal == nil {
		return domainerrors.ErrNotLoggedIn
	}

	user, err := h.uc.GetProfile(c.Request().Context(), principal.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, map[string]any{"user": response.NewUser(user)})
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
