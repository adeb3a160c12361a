package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"authportal/internal/model"
)

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetProfile(ctx context.Context, id uint) (*model.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func TestPageHandler_Dashboard(t *testing.T) {
	t.Run("anonymous visitor is bounced to login", func(t *testing.T) {
		h := NewPageHandler(new(MockAuthService), new(MockUserService))

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		rec := httptest.NewRecorder()
		assert.NoError(t, h.Dashboard(e.NewContext(req, rec)))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("stale session is bounced to login", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		mockAuth.On("Resolve", mock.Anything, "stale-ticket").Return(nil, nil)

		h := NewPageHandler(mockAuth, new(MockUserService))

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "stale-ticket"})
		rec := httptest.NewRecorder()
		assert.NoError(t, h.Dashboard(e.NewContext(req, rec)))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("authenticated visitor sees the dashboard", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		mockAuth.On("Resolve", mock.Anything, "signed-ticket").Return(&model.User{
			ID: 42, Email: "test@example.com", FullName: "Test User", IsActive: true,
		}, nil)

		mockUsers := new(MockUserService)
		mockUsers.On("GetProfile", mock.Anything, uint(42)).Return(&model.Profile{
			ID: 42, Email: "test@example.com", FullName: "Test User",
		}, nil)

		h := NewPageHandler(mockAuth, mockUsers)

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "signed-ticket"})
		rec := httptest.NewRecorder()
		assert.NoError(t, h.Dashboard(e.NewContext(req, rec)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Test User")
	})
}

func TestPageHandler_NotFound(t *testing.T) {
	h := NewPageHandler(new(MockAuthService), new(MockUserService))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/no-such-page", nil)
	rec := httptest.NewRecorder()
	assert.NoError(t, h.NotFound(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
