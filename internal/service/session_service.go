package service

import (
	"context"
	"errors"

	"gympoint/internal/auth"
	"gympoint/internal/model"
	"gympoint/internal/repository"
	"gympoint/internal/validation"

	"github.com/sirupsen/logrus"
)

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
}

type TokenIssuer interface {
	Issue(userID uint) (string, error)
}

type SessionService struct {
	users  UserStore
	tokens TokenIssuer
	log    logrus.FieldLogger
}

func NewSessionService(users UserStore, tokens TokenIssuer, log logrus.FieldLogger) *SessionService {
	return &SessionService{users: users, tokens: tokens, log: log}
}

// SignIn checks the credentials and returns the user with a fresh token.
func (s *SessionService) SignIn(ctx context.Context, in validation.Session) (*model.User, string, error) {
	if res := validation.Validate(in); !res.OK() {
		return nil, "", errValidationFails
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", errUserNotFound
	}
	if err != nil {
		return nil, "", err
	}
	if !auth.CheckPassword(user.PasswordHash, in.Password) {
		return nil, "", errPasswordMismatch
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	s.log.WithField("user_id", user.ID).Info("user signed in")
	return user, token, nil
}

// EnsureAdmin creates the administrator account unless its email exists.
func (s *SessionService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.users.Create(ctx, &model.User{Name: name, Email: email, PasswordHash: hash}); err != nil {
		return err
	}

	s.log.WithField("email", email).Info("admin user seeded")
	return nil
}
