package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/repository"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	// bcrypt only hashes the first 72 bytes and rejects longer input.
	maxPasswordLength = 72
)

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type TokenIssuer interface {
	Issue(user domain.UserRef) (string, time.Time, error)
}

type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

type LoginResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

type UserService struct {
	users    repository.UserRepository
	tokens   TokenIssuer
	validate *validator.Validate
	logger   *zap.Logger
	cost     int
}

func NewUserService(users repository.UserRepository, tokens TokenIssuer, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		users:    users,
		tokens:   tokens,
		validate: validator.New(),
		logger:   logger,
		cost:     bcrypt.DefaultCost,
	}
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	name := strings.TrimSpace(input.Name)

	if email == "" {
		return nil, domain.ValidationError("email required")
	}
	if err := s.validate.Var(email, "email"); err != nil {
		return nil, domain.ValidationError("invalid email")
	}
	if name == "" {
		return nil, domain.ValidationError("name required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, domain.ValidationError("password must be at least 8 characters")
	}
	if len(input.Password) > maxPasswordLength {
		return nil, domain.ValidationError("password must be at most 72 bytes")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{Email: email, Name: name, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.Int64("user_id", user.ID))
	return user, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	token, expiresAt, err := s.tokens.Issue(user.Ref())
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

var _ UserUseCase = (*UserService)(nil)
