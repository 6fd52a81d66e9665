package services_test

import (
	"context"
	"testing"

	"github.com/bizdesk/bizdesk_backend/internal/apperrors"
	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	portsrepo "github.com/bizdesk/bizdesk_backend/internal/core/ports/repositories"
	"github.com/bizdesk/bizdesk_backend/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock WorkplaceRepository ---
type MockWorkplaceRepository struct {
	mock.Mock
}

var _ portsrepo.WorkplaceRepositoryFacade = (*MockWorkplaceRepository)(nil)

func (m *MockWorkplaceRepository) FindWorkplaceByID(ctx context.Context, workplaceID string) (*domain.Workplace, error) {
	args := m.Called(ctx, workplaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workplace), args.Error(1)
}

func (m *MockWorkplaceRepository) ListWorkplacesByUser(ctx context.Context, userID string, includeDisabled bool) ([]domain.Workplace, error) {
	args := m.Called(ctx, userID, includeDisabled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workplace), args.Error(1)
}

func (m *MockWorkplaceRepository) ListWorkplaceUsers(ctx context.Context, workplaceID string) ([]domain.UserWorkplace, error) {
	args := m.Called(ctx, workplaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserWorkplace), args.Error(1)
}

func (m *MockWorkplaceRepository) FindUserWorkplaceRole(ctx context.Context, userID, workplaceID string) (domain.UserWorkplaceRole, error) {
	args := m.Called(ctx, userID, workplaceID)
	return args.Get(0).(domain.UserWorkplaceRole), args.Error(1)
}

func (m *MockWorkplaceRepository) SaveWorkplace(ctx context.Context, workplace domain.Workplace, creatorMembership domain.UserWorkplace) error {
	args := m.Called(ctx, workplace, creatorMembership)
	return args.Error(0)
}

func (m *MockWorkplaceRepository) SetWorkplaceActive(ctx context.Context, workplaceID string, active bool, updatedBy string) error {
	args := m.Called(ctx, workplaceID, active, updatedBy)
	return args.Error(0)
}

func (m *MockWorkplaceRepository) UpsertUserWorkplace(ctx context.Context, membership domain.UserWorkplace) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

// --- Mock UserReader ---
type MockUserReader struct {
	MockUserRepository
}

func TestAuthorizeUserAction_RoleRanking(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		have     domain.UserWorkplaceRole
		need     domain.UserWorkplaceRole
		expectOK bool
	}{
		{"admin can do member work", domain.RoleAdmin, domain.RoleMember, true},
		{"member can read", domain.RoleMember, domain.RoleReadOnly, true},
		{"member cannot do admin work", domain.RoleMember, domain.RoleAdmin, false},
		{"readonly cannot write", domain.RoleReadOnly, domain.RoleMember, false},
		{"removed has no access", domain.RoleRemoved, domain.RoleReadOnly, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockWorkplaceRepository)
			svc := services.NewWorkplaceService(repo, new(MockUserReader))

			repo.On("FindUserWorkplaceRole", ctx, "user-1", "wp-1").Return(tc.have, nil)

			err := svc.AuthorizeUserAction(ctx, "user-1", "wp-1", tc.need)
			if tc.expectOK {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, apperrors.ErrForbidden)
			}
		})
	}
}

func TestAuthorizeUserAction_NonMember(t *testing.T) {
	ctx := context.Background()
	repo := new(MockWorkplaceRepository)
	svc := services.NewWorkplaceService(repo, new(MockUserReader))

	repo.On("FindUserWorkplaceRole", ctx, "stranger", "wp-1").Return(domain.UserWorkplaceRole(""), apperrors.ErrNotFound)

	err := svc.AuthorizeUserAction(ctx, "stranger", "wp-1", domain.RoleReadOnly)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestCreateWorkplace_CreatorBecomesAdmin(t *testing.T) {
	ctx := context.Background()
	repo := new(MockWorkplaceRepository)
	svc := services.NewWorkplaceService(repo, new(MockUserReader))

	var savedMembership domain.UserWorkplace
	repo.On("SaveWorkplace", ctx, mock.AnythingOfType("domain.Workplace"), mock.AnythingOfType("domain.UserWorkplace")).
		Run(func(args mock.Arguments) {
			savedMembership = args.Get(2).(domain.UserWorkplace)
		}).Return(nil)

	workplace, err := svc.CreateWorkplace(ctx, "Acme Books", "accounting", "USD", "creator-1")
	require.NoError(t, err)

	assert.True(t, workplace.IsActive)
	require.NotNil(t, workplace.DefaultCurrencyCode)
	assert.Equal(t, "USD", *workplace.DefaultCurrencyCode)
	assert.Equal(t, domain.RoleAdmin, savedMembership.Role)
	assert.Equal(t, "creator-1", savedMembership.UserID)
	assert.Equal(t, workplace.WorkplaceID, savedMembership.WorkplaceID)
}

func TestCreateWorkplace_RequiresName(t *testing.T) {
	repo := new(MockWorkplaceRepository)
	svc := services.NewWorkplaceService(repo, new(MockUserReader))

	_, err := svc.CreateWorkplace(context.Background(), "", "", "", "creator-1")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	repo.AssertNotCalled(t, "SaveWorkplace", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveUserFromWorkplace_AdminCannotRemoveSelf(t *testing.T) {
	ctx := context.Background()
	repo := new(MockWorkplaceRepository)
	svc := services.NewWorkplaceService(repo, new(MockUserReader))

	repo.On("FindUserWorkplaceRole", ctx, "admin-1", "wp-1").Return(domain.RoleAdmin, nil)

	err := svc.RemoveUserFromWorkplace(ctx, "admin-1", "admin-1", "wp-1")

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	repo.AssertNotCalled(t, "UpsertUserWorkplace", mock.Anything, mock.Anything)
}

func TestRemoveUserFromWorkplace_MarksRemoved(t *testing.T) {
	ctx := context.Background()
	repo := new(MockWorkplaceRepository)
	svc := services.NewWorkplaceService(repo, new(MockUserReader))

	repo.On("FindUserWorkplaceRole", ctx, "admin-1", "wp-1").Return(domain.RoleAdmin, nil)

	var upserted domain.UserWorkplace
	repo.On("UpsertUserWorkplace", ctx, mock.AnythingOfType("domain.UserWorkplace")).
		Run(func(args mock.Arguments) {
			upserted = args.Get(1).(domain.UserWorkplace)
		}).Return(nil)

	err := svc.RemoveUserFromWorkplace(ctx, "admin-1", "member-1", "wp-1")
	require.NoError(t, err)

	assert.Equal(t, domain.RoleRemoved, upserted.Role)
	assert.Equal(t, "member-1", upserted.UserID)
}

func TestUpdateUserWorkplaceRole_AdminCannotDemoteSelf(t *testing.T) {
	ctx := context.Background()
	repo := new(MockWorkplaceRepository)
	svc := services.NewWorkplaceService(repo, new(MockUserReader))

	repo.On("FindUserWorkplaceRole", ctx, "admin-1", "wp-1").Return(domain.RoleAdmin, nil)

	err := svc.UpdateUserWorkplaceRole(ctx, "admin-1", "admin-1", "wp-1", domain.RoleMember)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	repo.AssertNotCalled(t, "UpsertUserWorkplace", mock.Anything, mock.Anything)
}

func TestAddUserToWorkplace_RejectsUnknownRole(t *testing.T) {
	ctx := context.Background()
	repo := new(MockWorkplaceRepository)
	svc := services.NewWorkplaceService(repo, new(MockUserReader))

	repo.On("FindUserWorkplaceRole", ctx, "admin-1", "wp-1").Return(domain.RoleAdmin, nil)

	err := svc.AddUserToWorkplace(ctx, "admin-1", "user-2", "wp-1", domain.UserWorkplaceRole("OWNER"))

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAddUserToWorkplace_TargetMustExist(t *testing.T) {
	ctx := context.Background()
	repo := new(MockWorkplaceRepository)
	userReader := new(MockUserReader)
	svc := services.NewWorkplaceService(repo, userReader)

	repo.On("FindUserWorkplaceRole", ctx, "admin-1", "wp-1").Return(domain.RoleAdmin, nil)
	userReader.On("FindUserByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound)

	err := svc.AddUserToWorkplace(ctx, "admin-1", "ghost", "wp-1", domain.RoleMember)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	repo.AssertNotCalled(t, "UpsertUserWorkplace", mock.Anything, mock.Anything)
}
