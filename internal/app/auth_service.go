package app

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"accounthub/internal/model"
	"accounthub/internal/pkg/jwtutil"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrEmailExists       = errors.New("email already registered")
	ErrInvalidCredential = errors.New("invalid email or password")
	ErrUnauthorized      = errors.New("please authenticate")
	ErrUserNotFound      = errors.New("user not found")
)

// UserStore is the persistence surface the services need. The GORM
// repository satisfies it in production; tests use an in-memory fake.
type UserStore interface {
	Create(user *model.User) error
	GetByID(id uint) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
	Save(user *model.User) error
	Delete(user *model.User) error
	AddToken(userID uint, token string) error
	RemoveToken(userID uint, token string) error
	RemoveAllTokens(userID uint) error
}

// Notifier sends account lifecycle emails. Both calls are best-effort:
// implementations must never block the request on provider failures.
type Notifier interface {
	SendWelcome(email, name string)
	SendFarewell(email, name string)
}

type AuthService struct {
	store     UserStore
	notifier  Notifier
	jwtSecret string
}

type RegisterInput struct {
	Name     string
	Email    string
	Age      int
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token string
	User  *model.User
}

func NewAuthService(store UserStore, notifier Notifier, jwtSecret string) *AuthService {
	return &AuthService{
		store:     store,
		notifier:  notifier,
		jwtSecret: jwtSecret,
	}
}

func (s *AuthService) Register(input RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	password := strings.TrimSpace(input.Password)

	if name == "" || email == "" {
		return nil, ErrInvalidInput
	}
	if !validPassword(password) {
		return nil, ErrInvalidInput
	}
	if input.Age < 0 {
		return nil, ErrInvalidInput
	}

	existing, err := s.store.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		Age:          input.Age,
		PasswordHash: hash,
	}
	if err := s.store.Create(user); err != nil {
		return nil, err
	}

	s.notifier.SendWelcome(user.Email, user.Name)

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(input LoginInput) (*AuthResult, error) {
	email := normalizeEmail(input.Email)
	password := strings.TrimSpace(input.Password)
	if email == "" || password == "" {
		return nil, ErrInvalidCredential
	}

	user, err := s.store.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Authenticate resolves a bearer token to its user. The token must both
// verify against the signing secret and still be present in the user's
// active-session list, so revoked tokens fail even with a valid signature.
func (s *AuthService) Authenticate(token string) (*model.User, error) {
	claims, err := jwtutil.ParseToken(s.jwtSecret, token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.store.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.HasToken(token) {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// Logout revokes exactly the session token used for this request.
func (s *AuthService) Logout(user *model.User, token string) error {
	return s.store.RemoveToken(user.ID, token)
}

// LogoutAll revokes every active session for the user.
func (s *AuthService) LogoutAll(user *model.User) error {
	return s.store.RemoveAllTokens(user.ID)
}

func (s *AuthService) issueToken(user *model.User) (string, error) {
	token, err := jwtutil.GenerateToken(s.jwtSecret, user.ID)
	if err != nil {
		return "", fmt.Errorf("generate session token failed: %w", err)
	}
	if err := s.store.AddToken(user.ID, token); err != nil {
		return "", err
	}
	user.Tokens = append(user.Tokens, model.SessionToken{UserID: user.ID, Token: token})
	return token, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password failed: %w", err)
	}
	return string(hash), nil
}
