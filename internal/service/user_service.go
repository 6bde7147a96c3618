package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"placebook/internal/apperr"
	"placebook/internal/auth"
	"placebook/internal/domain"
	"placebook/internal/repository"
)

// UserService describes account lifecycle operations. Signup and Login also
// issue the bearer token for subsequent place mutations.
type UserService interface {
	Signup(ctx context.Context, name, email, password, imagePath string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type userService struct {
	users  repository.UserRepository
	tokens *auth.Tokens
}

func NewUserService(users repository.UserRepository, tokens *auth.Tokens) UserService {
	return &userService{users: users, tokens: tokens}
}

func (s *userService) Signup(ctx context.Context, name, email, password, imagePath string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.Internal, "could not create user, please try again", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
		ImagePath:    imagePath,
		Places:       []string{},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.Internal, "signing up failed, please try again", err)
	}
	return sanitizeUser(user), token, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return nil, "", apperr.New(apperr.Forbidden, "invalid credentials, could not log you in")
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperr.New(apperr.Forbidden, "invalid credentials, could not log you in")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.Internal, "logging in failed, please try again", err)
	}
	return sanitizeUser(user), token, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clone := *user
	clone.PasswordHash = ""
	return &clone
}
