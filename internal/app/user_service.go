package app

import (
	"context"
	"log"
	"strings"

	"accounthub/internal/model"
)

type UserService struct {
	store       UserStore
	notifier    Notifier
	avatarCache AvatarCache
}

// UserUpdate enumerates the mutable profile fields. Nil means "leave
// unchanged". Anything outside this set is rejected at the boundary.
type UserUpdate struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Age      *int    `json:"age"`
}

func NewUserService(store UserStore, notifier Notifier, avatarCache AvatarCache) *UserService {
	return &UserService{
		store:       store,
		notifier:    notifier,
		avatarCache: avatarCache,
	}
}

func (s *UserService) Update(user *model.User, update UserUpdate) (*model.User, error) {
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, ErrInvalidInput
		}
		user.Name = name
	}
	if update.Email != nil {
		email := normalizeEmail(*update.Email)
		if email == "" {
			return nil, ErrInvalidInput
		}
		if email != user.Email {
			existing, err := s.store.GetByEmail(email)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != user.ID {
				return nil, ErrEmailExists
			}
			user.Email = email
		}
	}
	if update.Password != nil {
		password := strings.TrimSpace(*update.Password)
		if !validPassword(password) {
			return nil, ErrInvalidInput
		}
		hash, err := HashPassword(password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if update.Age != nil {
		if *update.Age < 0 {
			return nil, ErrInvalidInput
		}
		user.Age = *update.Age
	}

	if err := s.store.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the user record and its sessions, evicts the cached
// avatar so the public lookup cannot outlive the account, then fires
// the farewell notification. The notification outcome never affects
// the delete result.
func (s *UserService) Delete(ctx context.Context, user *model.User) error {
	if err := s.store.Delete(user); err != nil {
		return err
	}
	if err := s.avatarCache.Delete(ctx, user.ID); err != nil {
		log.Printf("evict avatar cache failed: %v", err)
	}
	s.notifier.SendFarewell(user.Email, user.Name)
	return nil
}
