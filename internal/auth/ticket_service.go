package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// NonPermanentTTL is the server-side lifetime of sessions created without the
// remember flag. The cookie itself is browser-session scoped in that case.
const NonPermanentTTL = 24 * time.Hour

// TicketClaims are the claims carried inside the signed session cookie. The
// JTI is the session ID that keys the server-side record.
type TicketClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TicketService signs and validates session cookie values. The cookie is the
// tamper-proof client half of a session; the Redis record is the revocable
// server half.
type TicketService struct {
	secret []byte
}

// NewTicketService creates a ticket service with the given signing secret.
func NewTicketService(secret string) *TicketService {
	return &TicketService{secret: []byte(secret)}
}

// NewSessionID generates a fresh session identifier.
func NewSessionID() string {
	return uuid.New().String()
}

// Issue signs a ticket binding the session ID to the user identity.
func (s *TicketService) Issue(sessionID string, userID uint, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &TicketClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate checks signature and expiry and returns the claims.
func (s *TicketService) Validate(ticket string) (*TicketClaims, error) {
	token, err := jwt.ParseWithClaims(ticket, &TicketClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*TicketClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid ticket")
	}
	if claims.ID == "" {
		return nil, errors.New("ticket has no session ID")
	}
	return claims, nil
}
