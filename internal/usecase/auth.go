package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/ErlanBelekov/easydev/internal/domain"
	"github.com/ErlanBelekov/easydev/internal/email"
	"github.com/ErlanBelekov/easydev/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 6

// TokenIssuer is satisfied by *auth.Codec.
type TokenIssuer interface {
	Issue(userID string) (string, time.Time, error)
}

type AuthUsecase struct {
	users    repository.UserRepository
	email    email.Sender
	tokens   TokenIssuer
	logger   *slog.Logger
	hashCost int
}

func NewAuthUsecase(users repository.UserRepository, emailSender email.Sender, tokens TokenIssuer, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:    users,
		email:    emailSender,
		tokens:   tokens,
		logger:   logger.With("component", "auth"),
		hashCost: bcrypt.DefaultCost,
	}
}

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (u *AuthUsecase) WithHashCost(cost int) *AuthUsecase {
	u.hashCost = cost
	return u
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// Signup registers a user and returns a credential for it. A welcome email is
// attempted afterwards; its failure is logged and does not fail the signup.
func (u *AuthUsecase) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	addr, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if len(input.Password) < MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), u.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        addr,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	result, err := u.issue(user)
	if err != nil {
		return nil, err
	}

	subject, body := email.Welcome(user.Name)
	if err := u.email.Send(ctx, user.Email, subject, body); err != nil {
		u.logger.WarnContext(ctx, "welcome email failed", "user_id", user.ID, "error", err)
	}
	return result, nil
}

// Signin never reveals whether the email exists: both failures are ErrInvalidCredentials.
func (u *AuthUsecase) Signin(ctx context.Context, emailAddr, password string) (*AuthResult, error) {
	addr := strings.ToLower(strings.TrimSpace(emailAddr))

	user, err := u.users.FindByEmail(ctx, addr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Unknown emails still pay for one bcrypt comparison.
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return u.issue(user)
}

func (u *AuthUsecase) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (u *AuthUsecase) issue(user *domain.User) (*AuthResult, error) {
	token, expiresAt, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func normalizeEmail(raw string) (string, error) {
	addr := strings.ToLower(strings.TrimSpace(raw))
	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Address != addr {
		return "", domain.ErrInvalidEmail
	}
	return addr, nil
}

var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("easydev-unknown-user"), bcrypt.DefaultCost)
	return h
})
