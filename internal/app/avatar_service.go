package app

import (
	"context"
	"errors"
	"log"

	"accounthub/internal/imaging"
	"accounthub/internal/model"
)

var ErrAvatarNotFound = errors.New("avatar not found")

// AvatarCache fronts public avatar reads. Cache failures are logged and
// the store remains authoritative.
type AvatarCache interface {
	Get(ctx context.Context, userID uint) ([]byte, bool, error)
	Set(ctx context.Context, userID uint, data []byte) error
	Delete(ctx context.Context, userID uint) error
}

type AvatarService struct {
	store UserStore
	cache AvatarCache
}

func NewAvatarService(store UserStore, cache AvatarCache) *AvatarService {
	return &AvatarService{
		store: store,
		cache: cache,
	}
}

// Store validates and normalizes the upload, then replaces the user's
// avatar. Validation failures carry *imaging.ValidationError.
func (s *AvatarService) Store(ctx context.Context, user *model.User, data []byte, filename string) error {
	blob, err := imaging.Normalize(data, filename)
	if err != nil {
		return err
	}

	user.Avatar = blob
	if err := s.store.Save(user); err != nil {
		return err
	}

	if err := s.cache.Set(ctx, user.ID, blob); err != nil {
		log.Printf("cache avatar failed: %v", err)
	}
	return nil
}

func (s *AvatarService) Clear(ctx context.Context, user *model.User) error {
	user.Avatar = nil
	if err := s.store.Save(user); err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, user.ID); err != nil {
		log.Printf("evict avatar cache failed: %v", err)
	}
	return nil
}

// GetByUserID serves the public avatar lookup, cache first.
func (s *AvatarService) GetByUserID(ctx context.Context, userID uint) ([]byte, error) {
	if blob, ok, err := s.cache.Get(ctx, userID); err == nil && ok {
		return blob, nil
	} else if err != nil {
		log.Printf("read avatar cache failed: %v", err)
	}

	user, err := s.store.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || len(user.Avatar) == 0 {
		return nil, ErrAvatarNotFound
	}

	if err := s.cache.Set(ctx, userID, user.Avatar); err != nil {
		log.Printf("cache avatar failed: %v", err)
	}
	return user.Avatar, nil
}
