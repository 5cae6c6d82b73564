package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/studyspot/studyspot/internal/metrics"
	"github.com/studyspot/studyspot/internal/model"
	"github.com/studyspot/studyspot/internal/repository"
)

// UserStore is the persistence the account service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// PasswordHasher hashes new passwords and checks submitted ones.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, stored string) (bool, error)
}

// AccountService handles signup, login and identity resolution.
type AccountService struct {
	users   UserStore
	hasher  PasswordHasher
	domain  string
	email   *regexp.Regexp
	metrics metrics.Recorder
}

// NewAccountService creates a new AccountService for addresses at domain.
func NewAccountService(users UserStore, hasher PasswordHasher, domain string, recorder metrics.Recorder) *AccountService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AccountService{
		users:   users,
		hasher:  hasher,
		domain:  domain,
		email:   NewEmailPattern(domain),
		metrics: recorder,
	}
}

// Domain returns the institutional email domain accepted at signup.
func (s *AccountService) Domain() string {
	return s.domain
}

// SignupInput defines input for creating an account.
type SignupInput struct {
	Email           string
	Password        string
	ConfirmPassword string
}

// Signup validates input and creates the account.
// Checks run in order and the first failure is returned as a *FieldError.
func (s *AccountService) Signup(ctx context.Context, input SignupInput) (*model.User, error) {
	typed := strings.TrimSpace(input.Email)
	email := normalizeEmail(typed)

	if !s.email.MatchString(email) {
		s.metrics.IncSignup(metrics.OutcomeInvalid)
		return nil, fieldError("email", ErrInvalidEmail)
	}
	if utf8.RuneCountInString(input.Password) < MinPasswordLength {
		s.metrics.IncSignup(metrics.OutcomeInvalid)
		return nil, fieldError("password", ErrPasswordTooShort)
	}
	if input.Password != input.ConfirmPassword {
		s.metrics.IncSignup(metrics.OutcomeInvalid)
		return nil, fieldError("confirm_password", ErrPasswordMismatch)
	}

	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		s.metrics.IncSignup(metrics.OutcomeConflict)
		return nil, fieldError("email", ErrEmailExists)
	case !errors.Is(err, repository.ErrNotFound):
		s.metrics.IncSignup(metrics.OutcomeError)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.metrics.IncSignup(metrics.OutcomeError)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// NetID keeps the case the user typed; the stored email is lowercased.
	netID, _, _ := strings.Cut(typed, "@")
	user := &model.User{
		NetID:        netID,
		Email:        email,
		PasswordHash: hash,
		Posts:        []string{},
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		// A concurrent signup can win between the lookup and the insert.
		if errors.Is(err, repository.ErrEmailExists) {
			s.metrics.IncSignup(metrics.OutcomeConflict)
			return nil, fieldError("email", ErrEmailExists)
		}
		s.metrics.IncSignup(metrics.OutcomeError)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncSignup(metrics.OutcomeSuccess)
	return user, nil
}

// Login returns the user whose email and password match.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.metrics.IncLogin(metrics.OutcomeInvalid)
			return nil, ErrInvalidCredentials
		}
		s.metrics.IncLogin(metrics.OutcomeError)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	ok, err := s.hasher.Check(password, user.PasswordHash)
	if err != nil || !ok {
		s.metrics.IncLogin(metrics.OutcomeInvalid)
		return nil, ErrInvalidCredentials
	}

	s.metrics.IncLogin(metrics.OutcomeSuccess)
	return user, nil
}

// CurrentUser resolves a session-bound user ID.
// It returns nil and no error when the ID is empty or no longer resolves.
func (s *AccountService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, nil
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve current user: %w", err)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
