package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"authportal/internal/config"
	apperrors "authportal/internal/errors"
	"authportal/internal/model"
	"authportal/internal/service"
)

// SessionCookieName is the cookie carrying the signed session ticket.
const SessionCookieName = "ap_session"

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	validator   *service.InputValidator
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, validator *service.InputValidator, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, validator: validator, cfg: cfg}
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Email           string `json:"email" validate:"max=255"`
	Password        string `json:"password" validate:"max=72"` // bcrypt input cap
	ConfirmPassword string `json:"confirm_password" validate:"max=72"`
	FullName        string `json:"full_name" validate:"max=255"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"max=255"`
	Password string `json:"password" validate:"max=72"`
	Remember bool   `json:"remember"`
}

// ValidateEmailRequest carries the email to check.
type ValidateEmailRequest struct {
	Email string `json:"email" validate:"max=255"`
}

// ValidatePasswordRequest carries the password to check.
type ValidatePasswordRequest struct {
	Password string `json:"password" validate:"max=72"`
}

// AuthResponse is the envelope for register/login outcomes. Expected
// failures keep HTTP 200 and report through success/message.
type AuthResponse struct {
	Success  bool           `json:"success"`
	Message  string         `json:"message"`
	User     *model.Profile `json:"user,omitempty"`
	Redirect string         `json:"redirect,omitempty"`
}

// CheckAuthResponse reports the session state.
type CheckAuthResponse struct {
	Authenticated bool           `json:"authenticated"`
	User          *model.Profile `json:"user,omitempty"`
}

// ValidationResponse is the envelope for the field validation endpoints.
type ValidationResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.ConfirmPassword, req.FullName)
	if err != nil {
		return h.respondAuthError(c, err)
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Success:  true,
		Message:  "account created successfully, you can now sign in",
		Redirect: "/login",
	})
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, req.Remember)
	if err != nil {
		return h.respondAuthError(c, err)
	}

	maxAge := 0 // browser-session cookie unless remembered
	if result.Permanent {
		maxAge = int(result.TTL.Seconds())
	}
	c.SetCookie(h.sessionCookie(result.Ticket, maxAge))

	profile := result.User.ToProfile()
	return c.JSON(http.StatusOK, AuthResponse{
		Success:  true,
		Message:  "logged in successfully",
		User:     &profile,
		Redirect: "/dashboard",
	})
}

// Logout godoc
// @Summary Log out and clear the session
// @Tags auth
// @Produce json
// @Success 302
// @Router /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	var storeErr error
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		storeErr = h.authService.Logout(c.Request().Context(), cookie.Value)
	}

	// The browser cookie goes away even when the store call fails; the
	// server-side record still dies on its TTL.
	c.SetCookie(h.sessionCookie("", -1))

	if storeErr != nil {
		c.Logger().Errorf("logout failure: %v", storeErr)
		return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{Message: "failed to log out"})
	}
	return c.Redirect(http.StatusFound, "/")
}

// CheckAuth godoc
// @Summary Report whether the current session is authenticated
// @Tags auth
// @Produce json
// @Success 200 {object} CheckAuthResponse
// @Router /api/check-auth [get]
func (h *AuthHandler) CheckAuth(c echo.Context) error {
	user, err := h.authService.Resolve(c.Request().Context(), h.ticketFromRequest(c))
	if err != nil || user == nil {
		// Fail closed: an unresolvable session is anonymous.
		return c.JSON(http.StatusOK, CheckAuthResponse{Authenticated: false})
	}

	profile := user.ToProfile()
	return c.JSON(http.StatusOK, CheckAuthResponse{Authenticated: true, User: &profile})
}

// ValidateEmail godoc
// @Summary Check email syntax and availability
// @Tags validation
// @Accept json
// @Produce json
// @Param request body ValidateEmailRequest true "Email to check"
// @Success 200 {object} ValidationResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/validate-email [post]
func (h *AuthHandler) ValidateEmail(c echo.Context) error {
	var req ValidateEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	valid, message, err := h.authService.CheckEmail(c.Request().Context(), req.Email)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, apperrors.ErrorResponse{Message: httpErr.Message})
	}

	return c.JSON(http.StatusOK, ValidationResponse{Valid: valid, Message: message})
}

// ValidatePassword godoc
// @Summary Check password strength
// @Tags validation
// @Accept json
// @Produce json
// @Param request body ValidatePasswordRequest true "Password to check"
// @Success 200 {object} ValidationResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/validate-password [post]
func (h *AuthHandler) ValidatePassword(c echo.Context) error {
	var req ValidatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	valid, message := h.validator.CheckPasswordStrength(req.Password)
	return c.JSON(http.StatusOK, ValidationResponse{Valid: valid, Message: message})
}

// respondAuthError keeps the response contract: expected failures answer 200
// with success=false, anything else is a generic 500.
func (h *AuthHandler) respondAuthError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusOK {
		return c.JSON(http.StatusOK, AuthResponse{Success: false, Message: httpErr.Message})
	}
	c.Logger().Errorf("auth failure: %v", err)
	return c.JSON(httpErr.StatusCode, AuthResponse{Success: false, Message: httpErr.Message})
}

// ticketFromRequest extracts the session cookie value, empty when absent.
func (h *AuthHandler) ticketFromRequest(c echo.Context) string {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: h.cfg.CookieHTTPOnly,
		Secure:   h.cfg.CookieSecure,
		SameSite: parseSameSite(h.cfg.CookieSameSite),
	}
}

func parseSameSite(mode string) http.SameSite {
	switch mode {
	case "Strict":
		return http.SameSiteStrictMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
