package users

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 5
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type stubIssuer struct{}

func (stubIssuer) Issue(user domain.UserRef) (string, time.Time, error) {
	return "token-for-" + user.Name, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

func newTestService(repo *MockUserRepository) *UserService {
	s := NewUserService(repo, stubIssuer{}, nil)
	s.cost = bcrypt.MinCost
	return s
}

func TestUserService_Register(t *testing.T) {
	repo := &MockUserRepository{}
	service := newTestService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "ada@example.com" && u.Name == "Ada" && u.PasswordHash != "password123"
	})).Return(nil).Once()

	user, err := service.Register(ctx, RegisterInput{Email: " Ada@Example.com ", Name: "Ada", Password: "password123"})

	require.NoError(t, err)
	assert.Equal(t, int64(5), user.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
	repo.AssertExpectations(t)
}

func TestUserService_Register_Validation(t *testing.T) {
	testCases := []struct {
		name  string
		input RegisterInput
	}{
		{name: "missing email", input: RegisterInput{Name: "Ada", Password: "password123"}},
		{name: "malformed email", input: RegisterInput{Email: "ada", Name: "Ada", Password: "password123"}},
		{name: "missing name", input: RegisterInput{Email: "ada@example.com", Password: "password123"}},
		{name: "short password", input: RegisterInput{Email: "ada@example.com", Name: "Ada", Password: "short"}},
		{name: "password over 72 bytes", input: RegisterInput{Email: "ada@example.com", Name: "Ada", Password: strings.Repeat("p", 80)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &MockUserRepository{}
			service := newTestService(repo)

			user, err := service.Register(context.Background(), tc.input)

			assert.Nil(t, user)
			assert.Equal(t, domain.KindValidation, domain.KindOf(err))
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUserService_Register_MaxLengthPassword(t *testing.T) {
	repo := &MockUserRepository{}
	service := newTestService(repo)
	ctx := context.Background()
	password := strings.Repeat("p", maxPasswordLength)

	repo.On("Create", ctx, mock.Anything).Return(nil).Once()

	user, err := service.Register(ctx, RegisterInput{Email: "ada@example.com", Name: "Ada", Password: password})

	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)))
}

func TestUserService_Register_Duplicate(t *testing.T) {
	repo := &MockUserRepository{}
	service := newTestService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.Anything).Return(domain.ErrEmailTaken).Once()

	_, err := service.Register(ctx, RegisterInput{Email: "ada@example.com", Name: "Ada", Password: "password123"})

	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestUserService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &domain.User{ID: 5, Email: "ada@example.com", Name: "Ada", PasswordHash: string(hash)}

	repo := &MockUserRepository{}
	service := newTestService(repo)
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "ada@example.com").Return(stored, nil)
	repo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, nil)

	result, err := service.Login(ctx, "ADA@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "token-for-Ada", result.Token)
	assert.Equal(t, stored, result.User)

	_, err = service.Login(ctx, "ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = service.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Equal(t, domain.KindUnauthenticated, domain.KindOf(err))
}
