package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"authportal/internal/auth"
	apperrors "authportal/internal/errors"
	"authportal/internal/model"
	"authportal/internal/repository"
)

const bcryptCost = 10

// LoginResult carries everything a transport needs to establish a session.
type LoginResult struct {
	Ticket    string
	TTL       time.Duration
	Permanent bool
	User      *model.User
}

// AuthService handles registration, login, logout, and session resolution.
type AuthService interface {
	Register(ctx context.Context, email, password, confirmPassword, fullName string) (*model.User, error)
	Login(ctx context.Context, email, password string, remember bool) (*LoginResult, error)
	Logout(ctx context.Context, ticket string) error
	// Resolve maps a session ticket to its user. Every invalid session shape
	// (bad signature, expired, logged out, user deleted or deactivated)
	// resolves to (nil, nil): anonymous, never an error the caller must
	// distinguish. A non-nil error means infrastructure failure.
	Resolve(ctx context.Context, ticket string) (*model.User, error)
	CheckEmail(ctx context.Context, email string) (bool, string, error)
}

type authService struct {
	userRepo  repository.UserRepository
	validator *InputValidator
	tickets   *auth.TicketService
	sessions  auth.SessionStoreInterface
	lifetime  time.Duration
}

// NewAuthService creates a new authentication service. lifetime is the
// session duration used when the remember flag is set.
func NewAuthService(
	userRepo repository.UserRepository,
	validator *InputValidator,
	tickets *auth.TicketService,
	sessions auth.SessionStoreInterface,
	lifetime time.Duration,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		validator: validator,
		tickets:   tickets,
		sessions:  sessions,
		lifetime:  lifetime,
	}
}

// NormalizeEmail lowercases and trims an email for comparison and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register validates input in a fixed order and creates the user. The
// duplicate pre-check gives the friendly message; the unique index closes the
// race, rolling back and surfacing the same conflict.
func (s *authService) Register(ctx context.Context, email, password, confirmPassword, fullName string) (*model.User, error) {
	email = NormalizeEmail(email)
	fullName = strings.TrimSpace(fullName)

	if email == "" || password == "" || confirmPassword == "" || fullName == "" {
		return nil, apperrors.ErrFieldsRequired
	}
	if !s.validator.ValidateEmail(email) {
		return nil, apperrors.ErrInvalidEmail
	}
	if ok, reason := s.validator.CheckPasswordStrength(password); !ok {
		return nil, apperrors.NewValidationError(reason)
	}
	if password != confirmPassword {
		return nil, apperrors.ErrPasswordMismatch
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hashed),
		FullName:     fullName,
		IsActive:     true,
	}

	err = s.userRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		return repo.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates credentials and establishes a session. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, email, password string, remember bool) (*LoginResult, error) {
	email = NormalizeEmail(email)

	if email == "" || password == "" {
		return nil, apperrors.ErrFieldsRequired
	}
	if !s.validator.ValidateEmail(email) {
		return nil, apperrors.ErrInvalidEmail
	}

	user, err := s.userRepo.FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}
	user.LastLogin = &now

	ttl := auth.NonPermanentTTL
	if remember {
		ttl = s.lifetime
	}

	sessionID := auth.NewSessionID()
	rec := auth.SessionRecord{
		UserID:    user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Permanent: remember,
	}
	if err := s.sessions.Store(ctx, sessionID, rec, ttl); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	ticket, err := s.tickets.Issue(sessionID, user.ID, user.Email, ttl)
	if err != nil {
		return nil, fmt.Errorf("issue session ticket: %w", err)
	}

	return &LoginResult{
		Ticket:    ticket,
		TTL:       ttl,
		Permanent: remember,
		User:      user,
	}, nil
}

// Logout destroys the server-side session record. An unreadable ticket means
// there is nothing to destroy, which is not a failure.
func (s *authService) Logout(ctx context.Context, ticket string) error {
	claims, err := s.tickets.Validate(ticket)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, claims.ID)
}

func (s *authService) Resolve(ctx context.Context, ticket string) (*model.User, error) {
	if ticket == "" {
		return nil, nil
	}

	claims, err := s.tickets.Validate(ticket)
	if err != nil {
		return nil, nil
	}

	rec, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, auth.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	// Re-fetch on every request: the session dies the moment its user row
	// disappears or is deactivated.
	user, err := s.userRepo.FindByID(ctx, rec.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = s.sessions.Delete(ctx, claims.ID)
			return nil, nil
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	if !user.IsActive {
		_ = s.sessions.Delete(ctx, claims.ID)
		return nil, nil
	}

	return user, nil
}

// CheckEmail answers the live email validation endpoint: syntax plus
// availability.
func (s *authService) CheckEmail(ctx context.Context, email string) (bool, string, error) {
	email = NormalizeEmail(email)

	if email == "" {
		return false, "email is required", nil
	}
	if !s.validator.ValidateEmail(email) {
		return false, "invalid email format", nil
	}

	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return false, apperrors.ErrEmailTaken.Error(), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, "", fmt.Errorf("check email: %w", err)
	}

	return true, "email is valid", nil
}
