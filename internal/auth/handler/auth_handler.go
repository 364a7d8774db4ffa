package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/h-hub/secure-webapp/config"
	"github.com/h-hub/secure-webapp/internal/auth/dto"
	"github.com/h-hub/secure-webapp/internal/auth/service"
	autherror "github.com/h-hub/secure-webapp/internal/errors"
)

const (
	accessTokenCookie  = "token"
	refreshTokenCookie = "refreshToken"
	csrfHeader         = "X-CSRF-Token"
)

type AuthHandler struct {
	sessions *service.SessionService
	cfg      *config.Config
}

func NewAuthHandler(sessions *service.SessionService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{sessions: sessions, cfg: cfg}
}

func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var input dto.SignUpInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	if input.Email == "" || input.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing fields",
		})
	}

	if _, err := h.sessions.SignUp(c.Context(), input); err != nil {
		if errors.Is(err, autherror.ErrEmailAlreadyInUse) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "user already exists",
			})
		}

		return serverError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "sign up successful",
	})
}

func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var input dto.SignInInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	if input.Email == "" || input.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email and password required",
		})
	}

	input.Device = h.deviceInfo(c)

	result, err := h.sessions.SignIn(c.Context(), input)
	if err != nil {
		if errors.Is(err, autherror.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid credentials",
			})
		}

		return serverError(c)
	}

	h.setTokenCookie(c, accessTokenCookie, result.AccessToken, h.cfg.AccessExpiryMin*60)
	h.setTokenCookie(c, refreshTokenCookie, result.RefreshToken, h.cfg.RefreshExpiryMin*60)

	// The CSRF value travels in the body, never in a cookie: the client has
	// to read it and echo it in a header for double-submit to mean anything.
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"csrfToken": result.CSRFToken,
	})
}

func (h *AuthHandler) ValidateSession(c *fiber.Ctx) error {
	status, err := h.sessions.ValidateSession(c.Context(),
		c.Cookies(accessTokenCookie), c.Cookies(refreshTokenCookie))
	if err != nil {
		if code := autherror.ReasonCode(err); code != "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"valid": false,
				"error": code,
			})
		}

		return serverError(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"valid":     true,
		"userId":    status.UserID,
		"expiresIn": status.ExpiresIn,
	})
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies(refreshTokenCookie)
	if refreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing refreshToken",
		})
	}

	result, err := h.sessions.Refresh(c.Context(), refreshToken, h.deviceInfo(c))
	if err != nil {
		switch {
		case errors.Is(err, autherror.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "user not found",
			})
		case errors.Is(err, autherror.ErrInvalidRefreshToken),
			errors.Is(err, autherror.ErrRefreshTokenNotFound),
			errors.Is(err, autherror.ErrRefreshTokenRevoked),
			errors.Is(err, autherror.ErrRefreshTokenExpired):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid refresh token",
			})
		}

		return serverError(c)
	}

	h.setTokenCookie(c, accessTokenCookie, result.AccessToken, h.cfg.AccessExpiryMin*60)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"csrfToken": result.CSRFToken,
	})
}

func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	refreshToken := c.Cookies(refreshTokenCookie)

	// Cookies are cleared no matter what; a client that lost its session
	// must still be able to finish signing out.
	h.clearTokenCookie(c, accessTokenCookie)
	h.clearTokenCookie(c, refreshTokenCookie)

	if refreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing refreshToken",
		})
	}

	if err := h.sessions.SignOut(c.Context(), refreshToken); err != nil {
		return serverError(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	user, err := h.sessions.Profile(c.Context(), c.Cookies(accessTokenCookie), c.Get(csrfHeader))
	if err != nil {
		switch {
		case errors.Is(err, autherror.ErrCSRFMismatch):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "invalid CSRF token",
			})
		case errors.Is(err, autherror.ErrNoAccessToken),
			errors.Is(err, autherror.ErrInvalidAccessToken),
			errors.Is(err, autherror.ErrSessionIDMissing),
			errors.Is(err, autherror.ErrSessionRevoked),
			errors.Is(err, autherror.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "unauthorized",
			})
		}

		return serverError(c)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *AuthHandler) deviceInfo(c *fiber.Ctx) dto.DeviceInfo {
	return dto.DeviceInfo{
		UserAgent: string(c.Request().Header.UserAgent()),
		IPAddress: c.IP(),
	}
}

func (h *AuthHandler) setTokenCookie(c *fiber.Ctx, name, value string, maxAge int) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (h *AuthHandler) clearTokenCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func serverError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "server error",
	})
}
