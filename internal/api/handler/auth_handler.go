package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fullstacktime/project-tracker/internal/api/metrics"
	"github.com/fullstacktime/project-tracker/internal/core/domain"
	"github.com/fullstacktime/project-tracker/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"omitempty,oneof=ADMIN WORKER"`
}

type registerResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// obtainTokenRequest is deliberately not validated for presence: missing
// credentials are indistinguishable from wrong ones and yield 401.
type obtainTokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type obtainTokenResponse struct {
	Access   string `json:"access"`
	Refresh  string `json:"refresh"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type refreshTokenRequest struct {
	Refresh string `json:"refresh"`
}

type refreshTokenResponse struct {
	Access string `json:"access"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details; role defaults to WORKER"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorEnvelope
// @Failure      500   {object}  errorEnvelope
// @Router       /api/auth/register/ [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(user.Role)).Inc()

	return c.JSON(http.StatusCreated, registerResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
	})
}

// ObtainToken authenticates a user and returns an access/refresh pair.
// Username and role are echoed in the body for immediate client use in
// addition to being embedded in the access-token claims.
//
// @Summary      Obtain a token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      obtainTokenRequest  true  "Credentials"
// @Success      200   {object}  obtainTokenResponse
// @Failure      401   {object}  errorEnvelope
// @Router       /api/token/ [post]
func (h *AuthHandler) ObtainToken(c echo.Context) error {
	var req obtainTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	pair, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, obtainTokenResponse{
		Access:   pair.Access,
		Refresh:  pair.Refresh,
		Username: pair.Username,
		Role:     string(pair.Role),
	})
}

// RefreshToken exchanges a refresh token for a new access token.
//
// @Summary      Refresh an access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshTokenRequest  true  "Refresh token"
// @Success      200   {object}  refreshTokenResponse
// @Failure      401   {object}  errorEnvelope
// @Router       /api/token/refresh/ [post]
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var req refreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	access, err := h.authService.Refresh(c.Request().Context(), req.Refresh)
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.TokenRefreshTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, refreshTokenResponse{Access: access})
}

// Logout revokes a refresh token so it can no longer be exchanged. The
// client is expected to discard both tokens afterwards.
//
// @Summary      Revoke a refresh token
// @Tags         auth
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  refreshTokenRequest  true  "Refresh token to revoke"
// @Success      204
// @Failure      401   {object}  errorEnvelope
// @Router       /api/auth/logout/ [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.authService.Logout(c.Request().Context(), req.Refresh); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
