package handler_test

import (
	"context"
	"errors"
	"sync"

	"github.com/gin-gonic/gin"

	"accounthub/internal/app"
	"accounthub/internal/model"
	httptransport "accounthub/internal/transport/http"
)

// memStore backs the handler tests with the same read-copy semantics as
// the GORM repository.
type memStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*model.User
}

func newMemStore() *memStore {
	return &memStore{users: make(map[uint]*model.User)}
}

func (s *memStore) Create(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return errors.New("duplicate email")
		}
	}
	s.nextID++
	user.ID = s.nextID
	s.users[user.ID] = copyUser(user)
	return nil
}

func (s *memStore) GetByID(id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return copyUser(u), nil
}

func (s *memStore) GetByEmail(email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (s *memStore) Save(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.users[user.ID]
	if !ok {
		return errors.New("user not found")
	}
	saved := copyUser(user)
	saved.Tokens = stored.Tokens
	s.users[user.ID] = saved
	return nil
}

func (s *memStore) Delete(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, user.ID)
	return nil
}

func (s *memStore) AddToken(userID uint, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	u.Tokens = append(u.Tokens, model.SessionToken{UserID: userID, Token: token})
	return nil
}

func (s *memStore) RemoveToken(userID uint, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil
	}
	kept := u.Tokens[:0]
	for _, t := range u.Tokens {
		if t.Token != token {
			kept = append(kept, t)
		}
	}
	u.Tokens = kept
	return nil
}

func (s *memStore) RemoveAllTokens(userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[userID]; ok {
		u.Tokens = nil
	}
	return nil
}

func copyUser(u *model.User) *model.User {
	clone := *u
	clone.Tokens = append([]model.SessionToken(nil), u.Tokens...)
	clone.Avatar = append([]byte(nil), u.Avatar...)
	return &clone
}

type stubNotifier struct {
	mu        sync.Mutex
	welcomes  []string
	farewells []string
}

func (n *stubNotifier) SendWelcome(email, name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.welcomes = append(n.welcomes, email)
}

func (n *stubNotifier) SendFarewell(email, name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.farewells = append(n.farewells, email)
}

func (n *stubNotifier) farewellCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.farewells)
}

type memCache struct {
	mu    sync.Mutex
	blobs map[uint][]byte
}

func newMemCache() *memCache {
	return &memCache{blobs: make(map[uint][]byte)}
}

func (c *memCache) Get(_ context.Context, userID uint) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	blob, ok := c.blobs[userID]
	return blob, ok, nil
}

func (c *memCache) Set(_ context.Context, userID uint, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blobs[userID] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, userID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.blobs, userID)
	return nil
}

type testEnv struct {
	router   *gin.Engine
	store    *memStore
	notifier *stubNotifier
	cache    *memCache
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	store := newMemStore()
	notifier := &stubNotifier{}
	cache := newMemCache()
	authService := app.NewAuthService(store, notifier, "test-secret")
	userService := app.NewUserService(store, notifier, cache)
	avatarService := app.NewAvatarService(store, cache)

	router := gin.New()
	httptransport.RegisterRoutes(router, authService, userService, avatarService)

	return &testEnv{
		router:   router,
		store:    store,
		notifier: notifier,
		cache:    cache,
	}
}
