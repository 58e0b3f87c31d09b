package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"invoicely-backend/internal/audit"
	"invoicely-backend/internal/auth"
	"invoicely-backend/internal/middleware"
)

type AuthHandler struct {
	authService *auth.Service
}

func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// @Summary Register new user
// @Description Create a new user account and issue a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration Data"
// @Success 201 {object} auth.Result
// @Failure 409 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input RegisterRequest
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	result, err := h.authService.Register(c.UserContext(), input.Email, input.Name, input.Password, requestMeta(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// @Summary Login user
// @Description Authenticate user and get tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login Data"
// @Success 200 {object} auth.Result
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input LoginRequest
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	result, err := h.authService.Login(c.UserContext(), input.Email, input.Password, requestMeta(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}

// @Summary Refresh token
// @Description Rotate a refresh token into a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token request"
// @Success 200 {object} auth.Result
// @Failure 401 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input RefreshRequest
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input - expected JSON with refreshToken field",
		})
	}

	result, err := h.authService.Refresh(c.UserContext(), input.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}

// @Summary Logout user
// @Description Revoke the access token and delete the refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LogoutRequest true "Logout request"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var input LogoutRequest
	// Missing tokens are not an error: logout is idempotent.
	_ = c.BodyParser(&input)

	accessToken := middleware.ExtractBearerToken(c.Get(fiber.HeaderAuthorization))

	if err := h.authService.Logout(c.UserContext(), accessToken, input.RefreshToken); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// @Summary Get user profile
// @Description Get current user profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} auth.Principal
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) GetMe(c *fiber.Ctx) error {
	principal := middleware.PrincipalFromContext(c)
	if principal == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthorized",
		})
	}
	return c.JSON(principal)
}

// requestMeta captures the client context attached to audited operations.
func requestMeta(c *fiber.Ctx) audit.RequestMeta {
	ip := c.IP()
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		ip = strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	return audit.RequestMeta{
		IPAddress: ip,
		UserAgent: c.Get(fiber.HeaderUserAgent),
	}
}

// respondError maps a domain error kind to its status code; anything else
// bubbles to the fiber error handler as a 500.
func respondError(c *fiber.Ctx, err error) error {
	var status int
	switch auth.KindOf(err) {
	case auth.KindUnauthorized:
		status = fiber.StatusUnauthorized
	case auth.KindConflict:
		status = fiber.StatusConflict
	case auth.KindNotFound:
		status = fiber.StatusNotFound
	default:
		return err
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
