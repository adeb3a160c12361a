package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"authportal/internal/cache"
	"authportal/internal/model"
	"authportal/internal/repository"
)

const profileCacheTTL = 5 * time.Minute

// UserService exposes read-side user operations.
type UserService interface {
	GetProfile(ctx context.Context, id uint) (*model.Profile, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// GetProfile returns the non-secret profile, cache-aside. The profile fields
// are immutable after registration, so no invalidation path is needed.
func (s *userService) GetProfile(ctx context.Context, id uint) (*model.Profile, error) {
	if data, err := s.cache.Get(ctx, s.cacheKey(id)); err == nil && data != nil {
		var cached model.Profile
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile := user.ToProfile()
	if payload, err := json.Marshal(profile); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, profileCacheTTL)
	}
	return &profile, nil
}
