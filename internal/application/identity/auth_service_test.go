package identity

import (
	"context"
	"testing"
	"time"

	"github.com/gestor-erp/backend/internal/domain/identity"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/gestor-erp/backend/internal/infrastructure/auth"
	"github.com/gestor-erp/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, entity *identity.User) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func newAuthService() (*AuthService, *MockUserRepository) {
	users := new(MockUserRepository)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "gestor-test",
	})
	service := NewAuthService(users, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())
	return service, users
}

func activeUser(t *testing.T, email, password string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(email, "Maria Souza", password)
	require.NoError(t, err)
	return user
}

func TestRegisterIssuesSession(t *testing.T) {
	service, users := newAuthService()

	users.On("FindByEmail", mock.Anything, "maria@oficina.com.br").Return(nil, nil)
	users.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

	result, err := service.Register(context.Background(), RegisterRequest{
		Email:    "maria@oficina.com.br",
		Name:     "Maria Souza",
		Password: "senha-forte-123",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
	assert.Equal(t, "maria@oficina.com.br", result.User.Email)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	service, users := newAuthService()
	existing := activeUser(t, "maria@oficina.com.br", "senha-forte-123")

	users.On("FindByEmail", mock.Anything, "maria@oficina.com.br").Return(existing, nil)

	_, err := service.Register(context.Background(), RegisterRequest{
		Email:    "maria@oficina.com.br",
		Name:     "Maria Souza",
		Password: "outra-senha-456",
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
	users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestLoginWithWrongPasswordFails(t *testing.T) {
	service, users := newAuthService()
	user := activeUser(t, "maria@oficina.com.br", "senha-forte-123")

	users.On("FindByEmail", mock.Anything, "maria@oficina.com.br").Return(user, nil)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "maria@oficina.com.br",
		Password: "senha-errada",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWithUnknownEmailFailsTheSameWay(t *testing.T) {
	service, users := newAuthService()

	users.On("FindByEmail", mock.Anything, "ninguem@oficina.com.br").Return(nil, nil)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "ninguem@oficina.com.br",
		Password: "qualquer-coisa",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	service, users := newAuthService()
	user := activeUser(t, "maria@oficina.com.br", "senha-forte-123")
	user.Active = false

	users.On("FindByEmail", mock.Anything, "maria@oficina.com.br").Return(user, nil)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "maria@oficina.com.br",
		Password: "senha-forte-123",
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_DISABLED", domainErr.Code)
}

func TestLoginRecordsLastLogin(t *testing.T) {
	service, users := newAuthService()
	user := activeUser(t, "maria@oficina.com.br", "senha-forte-123")

	users.On("FindByEmail", mock.Anything, "maria@oficina.com.br").Return(user, nil)
	users.On("Save", mock.Anything, user).Return(nil)

	result, err := service.Login(context.Background(), LoginRequest{
		Email:    "maria@oficina.com.br",
		Password: "senha-forte-123",
	})

	assert.NoError(t, err)
	assert.NotNil(t, user.LastLoginAt)
	assert.NotEmpty(t, result.Tokens.AccessToken)
}

func TestRefreshRotatesAndRevokesOldToken(t *testing.T) {
	service, users := newAuthService()
	user := activeUser(t, "maria@oficina.com.br", "senha-forte-123")

	users.On("FindByEmail", mock.Anything, "maria@oficina.com.br").Return(user, nil)
	users.On("Save", mock.Anything, user).Return(nil)

	session, err := service.Login(context.Background(), LoginRequest{
		Email:    "maria@oficina.com.br",
		Password: "senha-forte-123",
	})
	require.NoError(t, err)

	pair, err := service.Refresh(context.Background(), RefreshRequest{RefreshToken: session.Tokens.RefreshToken})
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	// the consumed refresh token cannot be replayed
	_, err = service.Refresh(context.Background(), RefreshRequest{RefreshToken: session.Tokens.RefreshToken})
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	service, _ := newAuthService()

	_, err := service.Refresh(context.Background(), RefreshRequest{RefreshToken: "nem-de-longe-um-jwt"})

	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestChangePasswordVerifiesCurrentOne(t *testing.T) {
	service, users := newAuthService()
	user := activeUser(t, "maria@oficina.com.br", "senha-forte-123")

	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	err := service.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		CurrentPassword: "senha-errada",
		NewPassword:     "senha-nova-789",
	})

	assert.Error(t, err)
	users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
