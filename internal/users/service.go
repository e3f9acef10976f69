package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"resume-builder/internal/shared/metrics"
)

// TokenIssuer signs per-request tokens for an account.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

type Service struct {
	Repo     Repo
	Hasher   *PasswordHasher
	Tokens   TokenIssuer
	validate *validator.Validate
}

func NewService(repo Repo, hasher *PasswordHasher, tokens TokenIssuer) *Service {
	return &Service{Repo: repo, Hasher: hasher, Tokens: tokens, validate: newValidator()}
}

// Signup validates the form, rejects duplicate emails and stores the account
// with a hashed password.
func (s *Service) Signup(ctx context.Context, in SignupInput) (Session, error) {
	if err := s.ready(); err != nil {
		return Session{}, err
	}
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = normalizeEmail(in.Email)
	if err := s.validate.Struct(in); err != nil {
		return Session{}, &ValidationError{Message: signupMessage(err)}
	}

	if _, err := s.Repo.GetByEmail(ctx, in.Email); err == nil {
		return Session{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return Session{}, err
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return Session{}, err
	}
	account := Account{
		ID:           uuid.NewString(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := s.Repo.Create(ctx, account); err != nil {
		return Session{}, err
	}
	metrics.SignupSucceeded.Inc()
	return s.session(account)
}

// Login checks credentials. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, in LoginInput) (Session, error) {
	if err := s.ready(); err != nil {
		return Session{}, err
	}
	in.Email = normalizeEmail(in.Email)
	if err := s.validate.Struct(in); err != nil {
		return Session{}, &ValidationError{Message: "Email and password are required"}
	}

	account, err := s.Repo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			metrics.LoginFailed.Inc()
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	if !s.Hasher.Verify(in.Password, account.PasswordHash) {
		metrics.LoginFailed.Inc()
		return Session{}, ErrInvalidCredentials
	}
	metrics.LoginSucceeded.Inc()
	return s.session(account)
}

func (s *Service) GetByID(ctx context.Context, userID string) (Account, error) {
	if err := s.ready(); err != nil {
		return Account{}, err
	}
	if strings.TrimSpace(userID) == "" {
		return Account{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID)
}

func (s *Service) session(account Account) (Session, error) {
	out := Session{Account: account}
	if s.Tokens == nil {
		return out, nil
	}
	token, err := s.Tokens.Issue(account.ID, account.Email)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	out.Token = token
	return out, nil
}

func (s *Service) ready() error {
	if s == nil || s.Repo == nil || s.Hasher == nil {
		return errors.New("users service not configured")
	}
	if s.validate == nil {
		s.validate = newValidator()
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
