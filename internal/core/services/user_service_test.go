package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bizdesk/bizdesk_backend/internal/apperrors"
	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	portsrepo "github.com/bizdesk/bizdesk_backend/internal/core/ports/repositories"
	"github.com/bizdesk/bizdesk_backend/internal/core/services"
	"github.com/bizdesk/bizdesk_backend/internal/dto"
	"github.com/bizdesk/bizdesk_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserCredentials(ctx context.Context, email string) (*domain.User, string, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) FindRefreshTokenDetails(ctx context.Context, userID string) (string, time.Time, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User, passwordHash string) error {
	args := m.Called(ctx, user, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedBy string, deletedAt time.Time) error {
	args := m.Called(ctx, userID, deletedBy, deletedAt)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiry)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestCreateUser_HashesPassword(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	var savedHash string
	var savedUser domain.User
	repo.On("SaveUser", ctx, mock.AnythingOfType("domain.User"), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			savedUser = args.Get(1).(domain.User)
			savedHash = args.String(2)
		}).Return(nil)

	user, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Name:     "Sam",
		Email:    "sam@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	assert.NotEqual(t, "hunter22", savedHash)
	assert.True(t, utils.CheckPasswordHash("hunter22", savedHash))
	assert.Equal(t, domain.ProviderLocal, savedUser.AuthProvider)
	assert.Equal(t, user.UserID, savedUser.CreatedBy)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	repo.On("SaveUser", ctx, mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate)

	_, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Name:     "Sam",
		Email:    "sam@example.com",
		Password: "hunter22",
	})

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Code)
}

func TestFindOrCreateOAuthUser_ExistingUser(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	existing := &domain.User{UserID: "u-1", Email: "sam@example.com"}
	repo.On("FindUserByEmail", ctx, "sam@example.com").Return(existing, nil)

	user, err := svc.FindOrCreateOAuthUser(ctx, domain.ProviderGoogle, "sam@example.com", "Sam")
	require.NoError(t, err)

	assert.Equal(t, existing, user)
	repo.AssertNotCalled(t, "SaveUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestFindOrCreateOAuthUser_CreatesWithoutPassword(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	repo.On("FindUserByEmail", ctx, "new@example.com").Return(nil, apperrors.ErrNotFound).Once()

	var savedHash string
	repo.On("SaveUser", ctx, mock.AnythingOfType("domain.User"), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			savedHash = args.String(2)
		}).Return(nil)

	user, err := svc.FindOrCreateOAuthUser(ctx, domain.ProviderGoogle, "new@example.com", "New Person")
	require.NoError(t, err)

	assert.Empty(t, savedHash)
	assert.Equal(t, domain.ProviderGoogle, user.AuthProvider)
}

func TestFindOrCreateOAuthUser_LosesCreationRace(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	winner := &domain.User{UserID: "winner", Email: "race@example.com"}
	repo.On("FindUserByEmail", ctx, "race@example.com").Return(nil, apperrors.ErrNotFound).Once()
	repo.On("SaveUser", ctx, mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate)
	repo.On("FindUserByEmail", ctx, "race@example.com").Return(winner, nil).Once()

	user, err := svc.FindOrCreateOAuthUser(ctx, domain.ProviderGoogle, "race@example.com", "Racer")
	require.NoError(t, err)
	assert.Equal(t, winner, user)
}

func TestUpdateUser_OnlySelf(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	newName := "Imposter"
	_, err := svc.UpdateUser(context.Background(), "victim", dto.UpdateUserRequest{Name: &newName}, "attacker")

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	repo.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
}

func TestDeleteUser_OnlySelf(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	err := svc.DeleteUser(context.Background(), "victim", "attacker")

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	repo.AssertNotCalled(t, "MarkUserDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthenticateUser_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	hash, err := utils.HashPassword("correct horse")
	require.NoError(t, err)
	stored := &domain.User{UserID: "u-1", Email: "sam@example.com", AuthProvider: domain.ProviderLocal}
	repo.On("FindUserCredentials", ctx, "sam@example.com").Return(stored, hash, nil)

	user, err := svc.AuthenticateUser(ctx, "sam@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.UserID)
}

func TestAuthenticateUser_WrongPassword(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	hash, err := utils.HashPassword("correct horse")
	require.NoError(t, err)
	stored := &domain.User{UserID: "u-1", AuthProvider: domain.ProviderLocal}
	repo.On("FindUserCredentials", ctx, "sam@example.com").Return(stored, hash, nil)

	_, err = svc.AuthenticateUser(ctx, "sam@example.com", "battery staple")

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.Code)
}

func TestAuthenticateUser_UnknownEmailSameError(t *testing.T) {
	// Unknown email and bad password produce the same message, so the
	// endpoint does not leak which emails are registered.
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	repo.On("FindUserCredentials", ctx, "ghost@example.com").Return(nil, "", apperrors.ErrNotFound)

	_, err := svc.AuthenticateUser(ctx, "ghost@example.com", "anything")

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.Code)
	assert.Equal(t, "invalid email or password", appErr.Message)
}

func TestAuthenticateUser_RejectsOAuthAccount(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	stored := &domain.User{UserID: "u-1", AuthProvider: domain.ProviderGoogle}
	repo.On("FindUserCredentials", ctx, "sam@example.com").Return(stored, "", nil)

	_, err := svc.AuthenticateUser(ctx, "sam@example.com", "anything")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.Code)
}

func TestValidateRefreshToken_Expired(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	raw := "raw-token"
	repo.On("FindRefreshTokenDetails", ctx, "u-1").
		Return(utils.HashRefreshToken(raw), time.Now().Add(-time.Minute), nil)

	_, err := svc.ValidateRefreshToken(ctx, "u-1", raw)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.Code)
	assert.Equal(t, "refresh token expired", appErr.Message)
}

func TestValidateRefreshToken_Valid(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	raw := "raw-token"
	stored := &domain.User{UserID: "u-1"}
	repo.On("FindRefreshTokenDetails", ctx, "u-1").
		Return(utils.HashRefreshToken(raw), time.Now().Add(time.Hour), nil)
	repo.On("FindUserByID", ctx, "u-1").Return(stored, nil)

	user, err := svc.ValidateRefreshToken(ctx, "u-1", raw)
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.UserID)
}

func TestValidateRefreshToken_Mismatch(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	repo.On("FindRefreshTokenDetails", ctx, "u-1").
		Return(utils.HashRefreshToken("stored-token"), time.Now().Add(time.Hour), nil)

	_, err := svc.ValidateRefreshToken(ctx, "u-1", "different-token")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.Code)
	repo.AssertNotCalled(t, "FindUserByID", mock.Anything, mock.Anything)
}

func TestListUsers_ClampsLimit(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	repo.On("ListUsers", ctx, 100, 0).Return([]domain.User{}, nil).Once()
	repo.On("ListUsers", ctx, 50, 0).Return([]domain.User{}, nil).Once()

	_, err := svc.ListUsers(ctx, 9999, -3)
	require.NoError(t, err)

	_, err = svc.ListUsers(ctx, 0, 0)
	require.NoError(t, err)

	repo.AssertExpectations(t)
}
