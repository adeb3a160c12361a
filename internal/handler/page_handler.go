package handler

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"authportal/internal/service"
)

// PageHandler serves the minimal HTML shells. The real UI is expected to be
// a separate frontend talking to the JSON endpoints; these pages only keep
// the browser flow (login -> dashboard -> logout) usable on its own.
type PageHandler struct {
	authService service.AuthService
	userService service.UserService
}

// NewPageHandler creates a new page handler.
func NewPageHandler(authService service.AuthService, userService service.UserService) *PageHandler {
	return &PageHandler{authService: authService, userService: userService}
}

// Home serves the landing page.
func (h *PageHandler) Home(c echo.Context) error {
	return c.HTML(http.StatusOK, page("Welcome",
		`<p><a href="/login">Sign in</a> or <a href="/register">create an account</a>.</p>`))
}

// LoginPage serves the login form shell.
func (h *PageHandler) LoginPage(c echo.Context) error {
	return c.HTML(http.StatusOK, page("Sign in",
		`<form id="login"><input name="email" type="email" placeholder="Email">`+
			`<input name="password" type="password" placeholder="Password">`+
			`<label><input name="remember" type="checkbox"> Remember me</label>`+
			`<button type="submit">Sign in</button></form>`))
}

// RegisterPage serves the registration form shell.
func (h *PageHandler) RegisterPage(c echo.Context) error {
	return c.HTML(http.StatusOK, page("Create account",
		`<form id="register"><input name="full_name" placeholder="Full name">`+
			`<input name="email" type="email" placeholder="Email">`+
			`<input name="password" type="password" placeholder="Password">`+
			`<input name="confirm_password" type="password" placeholder="Confirm password">`+
			`<button type="submit">Register</button></form>`))
}

// Dashboard resolves the session and greets the user, or bounces anonymous
// visitors to the login page.
func (h *PageHandler) Dashboard(c echo.Context) error {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return c.Redirect(http.StatusFound, "/login")
	}

	user, err := h.authService.Resolve(c.Request().Context(), cookie.Value)
	if err != nil || user == nil {
		return c.Redirect(http.StatusFound, "/login")
	}

	profile, err := h.userService.GetProfile(c.Request().Context(), user.ID)
	if err != nil {
		return c.Redirect(http.StatusFound, "/login")
	}

	body := fmt.Sprintf(`<p>Hello, %s.</p><p><a href="/logout">Log out</a></p>`,
		template.HTMLEscapeString(profile.FullName))
	return c.HTML(http.StatusOK, page("Dashboard", body))
}

// NotFound answers unmapped routes.
func (h *PageHandler) NotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, map[string]string{"message": "page not found"})
}

func page(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html><html><head><title>%s</title></head><body><h1>%s</h1>%s</body></html>`,
		title, title, body)
}
