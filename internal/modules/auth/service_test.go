package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"apibasics/internal/domain"
	"apibasics/internal/pkg/password"
	"apibasics/internal/pkg/token"
)

// Mock User Repository implementing the interface
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// Mock Refresh Token Repository
type mockRefreshTokenRepo struct {
	mock.Mock
}

func (m *mockRefreshTokenRepo) Create(ctx context.Context, t *domain.RefreshToken) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockRefreshTokenRepo) GetByToken(ctx context.Context, tok string) (*domain.RefreshToken, error) {
	args := m.Called(ctx, tok)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefreshToken), args.Error(1)
}

func (m *mockRefreshTokenRepo) DeleteByToken(ctx context.Context, tok string) (bool, error) {
	args := m.Called(ctx, tok)
	return args.Bool(0), args.Error(1)
}

func newTestService(users *mockUserRepo, refresh *mockRefreshTokenRepo) *Service {
	hasher := password.NewHasher(4)
	codec := token.NewCodec("test-secret", time.Hour)
	return NewService(users, refresh, hasher, codec, 30*24*time.Hour)
}

func TestService_Register_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	refreshRepo := new(mockRefreshTokenRepo)
	svc := newTestService(userRepo, refreshRepo)

	userRepo.On("ExistsByEmail", mock.Anything, "a@b.com").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "a@b.com",
		Password: "password123",
		Name:     "A",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "a@b.com", user.Email)
	assert.Equal(t, "A", user.Name)
	assert.Empty(t, user.PasswordHash)
	assert.Equal(t, "{}", user.Preferences)
	userRepo.AssertExpectations(t)
}

func TestService_Register_ValidationErrors(t *testing.T) {
	userRepo := new(mockUserRepo)
	refreshRepo := new(mockRefreshTokenRepo)
	svc := newTestService(userRepo, refreshRepo)

	cases := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing email", RegisterRequest{Password: "password123", Name: "A"}},
		{"missing password", RegisterRequest{Email: "a@b.com", Name: "A"}},
		{"missing name", RegisterRequest{Email: "a@b.com", Password: "password123"}},
		{"email without @", RegisterRequest{Email: "not-an-email", Password: "password123", Name: "A"}},
		{"short password", RegisterRequest{Email: "a@b.com", Password: "short", Name: "A"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	// No state change on validation failure.
	userRepo.AssertNotCalled(t, "Create")
}

func TestService_Register_EmailConflict(t *testing.T) {
	userRepo := new(mockUserRepo)
	refreshRepo := new(mockRefreshTokenRepo)
	svc := newTestService(userRepo, refreshRepo)

	userRepo.On("ExistsByEmail", mock.Anything, "a@b.com").Return(true, nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "a@b.com",
		Password: "password123",
		Name:     "A",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	userRepo.AssertNotCalled(t, "Create")
}

func TestService_Login_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	refreshRepo := new(mockRefreshTokenRepo)
	svc := newTestService(userRepo, refreshRepo)

	hasher := password.NewHasher(4)
	hash, err := hasher.Hash("password123")
	require.NoError(t, err)

	userRepo.On("GetByEmail", mock.Anything, "a@b.com").Return(&domain.User{
		ID:           "user-1",
		Email:        "a@b.com",
		PasswordHash: hash,
	}, nil)
	refreshRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	tokens, err := svc.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: "password123"})

	require.NoError(t, err)
	assert.Equal(t, "Bearer", tokens.TokenType)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.Len(t, tokens.RefreshToken, 64)
	assert.Equal(t, 3600, tokens.ExpiresIn)

	// The persisted row must expire the configured lifetime from now.
	created := refreshRepo.Calls[0].Arguments.Get(1).(*domain.RefreshToken)
	assert.Equal(t, tokens.RefreshToken, created.Token)
	assert.Equal(t, "user-1", created.UserID)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), created.ExpiresAt, time.Minute)
}

func TestService_Login_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	userRepo := new(mockUserRepo)
	refreshRepo := new(mockRefreshTokenRepo)
	svc := newTestService(userRepo, refreshRepo)

	hasher := password.NewHasher(4)
	hash, err := hasher.Hash("password123")
	require.NoError(t, err)

	userRepo.On("GetByEmail", mock.Anything, "missing@b.com").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("GetByEmail", mock.Anything, "a@b.com").Return(&domain.User{
		ID:           "user-1",
		Email:        "a@b.com",
		PasswordHash: hash,
	}, nil)

	_, errMissing := svc.Login(context.Background(), LoginRequest{Email: "missing@b.com", Password: "password123"})
	_, errWrong := svc.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: "wrong-password"})

	assert.ErrorIs(t, errMissing, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
	assert.Equal(t, errMissing, errWrong)
}

func TestService_Refresh_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	refreshRepo := new(mockRefreshTokenRepo)
	svc := newTestService(userRepo, refreshRepo)

	refreshRepo.On("GetByToken", mock.Anything, "stored-token").Return(&domain.RefreshToken{
		Token:     "stored-token",
		UserID:    "user-1",
		User:      domain.User{ID: "user-1", Email: "a@b.com"},
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)

	tokens, err := svc.Refresh(context.Background(), "stored-token")

	require.NoError(t, err)
	assert.Equal(t, "Bearer", tokens.TokenType)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.Empty(t, tokens.RefreshToken, "refresh must not rotate the token")
	refreshRepo.AssertNotCalled(t, "DeleteByToken")
	refreshRepo.AssertNotCalled(t, "Create")
}

func TestService_Refresh_UnknownToken(t *testing.T) {
	userRepo := new(mockUserRepo)
	refreshRepo := new(mockRefreshTokenRepo)
	svc := newTestService(userRepo, refreshRepo)

	refreshRepo.On("GetByToken", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Refresh(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestService_Refresh_ExpiredTokenIsConsumed(t *testing.T) {
	userRepo := new(mockUserRepo)
	refreshRepo := new(mockRefreshTokenRepo)
	svc := newTestService(userRepo, refreshRepo)

	refreshRepo.On("GetByToken", mock.Anything, "stale").Return(&domain.RefreshToken{
		Token:     "stale",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}, nil)
	refreshRepo.On("DeleteByToken", mock.Anything, "stale").Return(true, nil)

	_, err := svc.Refresh(context.Background(), "stale")

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	refreshRepo.AssertCalled(t, "DeleteByToken", mock.Anything, "stale")
}

func TestService_Revoke(t *testing.T) {
	userRepo := new(mockUserRepo)
	refreshRepo := new(mockRefreshTokenRepo)
	svc := newTestService(userRepo, refreshRepo)

	refreshRepo.On("DeleteByToken", mock.Anything, "present").Return(true, nil)
	refreshRepo.On("DeleteByToken", mock.Anything, "gone").Return(false, nil)

	assert.NoError(t, svc.Revoke(context.Background(), "present"))
	// Revoking an already-gone token is reported as not-found, not
	// silent success.
	assert.ErrorIs(t, svc.Revoke(context.Background(), "gone"), ErrTokenNotFound)
	assert.ErrorIs(t, svc.Revoke(context.Background(), "gone"), ErrTokenNotFound)
}

func TestGenerateOpaqueToken(t *testing.T) {
	first, err := generateOpaqueToken()
	require.NoError(t, err)
	second, err := generateOpaqueToken()
	require.NoError(t, err)

	assert.Len(t, first, 64)
	assert.NotEqual(t, first, second)
}
