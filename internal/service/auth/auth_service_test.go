package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/Domenick1991/airline/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
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
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id int64, update domain.ProfileUpdate) (*domain.User, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

const testSecret = "test-secret"

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_Register(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewAuthService(repo, testSecret, 24*time.Hour, logger.NewNop())
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "new@example.com").Return(nil, domain.ErrUserNotFound).Once()
	repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.User).ID = 42 }).
		Return(nil).Once()

	session, err := service.Register(ctx, RegisterInput{Email: " New@Example.com ", Password: "secret1", FirstName: "Asha"})

	require.NoError(t, err)
	assert.Equal(t, int64(42), session.User.ID)
	assert.Equal(t, "new@example.com", session.User.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(session.User.PasswordHash), []byte("secret1")))

	cost, err := bcrypt.Cost([]byte(session.User.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)

	claims, err := service.parse(session.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "new@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
	repo.AssertExpectations(t)
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewAuthService(repo, testSecret, time.Hour, logger.NewNop())
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "taken@example.com").Return(&domain.User{ID: 1}, nil).Once()

	_, err := service.Register(ctx, RegisterInput{Email: "taken@example.com", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrUserExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Register_RaceOnInsert(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewAuthService(repo, testSecret, time.Hour, logger.NewNop())
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "race@example.com").Return(nil, domain.ErrUserNotFound).Once()
	repo.On("Create", ctx, mock.Anything).Return(domain.ErrUserExists).Once()

	_, err := service.Register(ctx, RegisterInput{Email: "race@example.com", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestAuthService_Register_Validation(t *testing.T) {
	service := NewAuthService(&MockUserRepository{}, testSecret, time.Hour, logger.NewNop())

	_, err := service.Register(context.Background(), RegisterInput{Email: "a@b.c"})
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestAuthService_Login(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewAuthService(repo, testSecret, time.Hour, logger.NewNop())
	ctx := context.Background()
	user := &domain.User{ID: 7, Email: "pilot@example.com", PasswordHash: hashed(t, "right")}

	repo.On("GetByEmail", ctx, "pilot@example.com").Return(user, nil)
	repo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrUserNotFound)

	session, err := service.Login(ctx, "Pilot@example.com", "right")
	require.NoError(t, err)
	assert.Equal(t, user, session.User)
	assert.NotEmpty(t, session.Token)

	_, err = service.Login(ctx, "pilot@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = service.Login(ctx, "ghost@example.com", "right")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_RepositoryError(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewAuthService(repo, testSecret, time.Hour, logger.NewNop())
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "x@example.com").Return(nil, errors.New("db down")).Once()

	_, err := service.Login(ctx, "x@example.com", "pw")
	assert.EqualError(t, err, "db down")
}

func TestAuthService_Verify(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewAuthService(repo, testSecret, time.Hour, logger.NewNop())
	ctx := context.Background()
	user := &domain.User{ID: 7, Email: "pilot@example.com"}

	token, err := service.issue(user)
	require.NoError(t, err)

	repo.On("GetByID", ctx, int64(7)).Return(user, nil).Once()
	got, err := service.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	t.Run("user gone", func(t *testing.T) {
		repo.On("GetByID", ctx, int64(7)).Return(nil, domain.ErrUserNotFound).Once()
		_, err := service.Verify(ctx, token)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := service.Verify(ctx, "not-a-token")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewAuthService(repo, "other-secret", time.Hour, logger.NewNop())
		forged, err := other.issue(user)
		require.NoError(t, err)
		_, err = service.Verify(ctx, forged)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("expired", func(t *testing.T) {
		service.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { service.now = time.Now }()
		_, err := service.Verify(ctx, token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("unsigned", func(t *testing.T) {
		none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 7}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = service.Verify(ctx, none)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
