package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finfam/family_finance_app/internal/apperrors"
	"github.com/finfam/family_finance_app/internal/core/domain"
	portsrepo "github.com/finfam/family_finance_app/internal/core/ports/repositories"
	portssvc "github.com/finfam/family_finance_app/internal/core/ports/services"
	"github.com/finfam/family_finance_app/internal/core/services"
	"github.com/finfam/family_finance_app/internal/dto"
	"github.com/finfam/family_finance_app/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
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

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUserFamily(ctx context.Context, userID string, familyID string, updaterUserID string, now time.Time) error {
	args := m.Called(ctx, userID, familyID, updaterUserID, now)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiry *time.Time, now time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiry, now)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deleterUserID string, now time.Time) error {
	args := m.Called(ctx, userID, deleterUserID, now)
	return args.Error(0)
}

// --- Suite ---

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockUserRepository)
	s.service = services.NewUserService(s.mockRepo)
}

func (s *UserServiceTestSuite) TestCreateUser_HashesPassword() {
	ctx := context.Background()
	var saved domain.User
	s.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.User)
		}).Return(nil).Once()

	user, err := s.service.CreateUser(ctx, dto.CreateUserRequest{
		Username: "alice",
		Password: "s3cret-pass",
		Name:     "Alice",
	})

	s.Require().NoError(err)
	s.NotEmpty(user.UserID)
	s.Equal("alice", user.Username)
	s.NotEqual("s3cret-pass", saved.PasswordHash)
	s.True(utils.CheckPasswordHash("s3cret-pass", saved.PasswordHash))
	s.Equal(user.UserID, saved.CreatedBy)
}

func (s *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	s.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Return(apperrors.ErrDuplicate).Once()

	user, err := s.service.CreateUser(ctx, dto.CreateUserRequest{
		Username: "alice",
		Password: "s3cret-pass",
		Name:     "Alice",
	})

	s.Require().Error(err)
	s.Nil(user)
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *UserServiceTestSuite) TestUpdateUser_OtherUserForbidden() {
	ctx := context.Background()

	user, err := s.service.UpdateUser(ctx, uuid.NewString(), dto.UpdateUserRequest{}, uuid.NewString())

	s.Require().Error(err)
	s.Nil(user)
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.mockRepo.AssertNotCalled(s.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestUpdateUser_PatchesName() {
	ctx := context.Background()
	userID := uuid.NewString()
	s.mockRepo.On("FindUserByID", ctx, userID).Return(&domain.User{
		UserID:   userID,
		Username: "alice",
		Name:     "Alice",
	}, nil).Once()
	s.mockRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	newName := "Alice B"
	user, err := s.service.UpdateUser(ctx, userID, dto.UpdateUserRequest{Name: &newName}, userID)

	s.Require().NoError(err)
	s.Equal("Alice B", user.Name)
	s.Equal(userID, user.LastUpdatedBy)
}

func (s *UserServiceTestSuite) TestDeleteUser_OtherUserForbidden() {
	err := s.service.DeleteUser(context.Background(), uuid.NewString(), uuid.NewString())
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *UserServiceTestSuite) TestFindOrCreateGoogleUser_ExistingUser() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Username: "alice@example.com"}
	s.mockRepo.On("FindUserByUsername", ctx, "alice@example.com").Return(existing, nil).Once()

	user, err := s.service.FindOrCreateGoogleUser(ctx, &domain.GoogleUserInfo{
		Email:         "alice@example.com",
		VerifiedEmail: true,
		Name:          "Alice",
	})

	s.Require().NoError(err)
	s.Equal(existing.UserID, user.UserID)
	s.mockRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestFindOrCreateGoogleUser_ProvisionsOnFirstSignIn() {
	ctx := context.Background()
	s.mockRepo.On("FindUserByUsername", ctx, "bob@example.com").Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	user, err := s.service.FindOrCreateGoogleUser(ctx, &domain.GoogleUserInfo{
		Email:         "bob@example.com",
		VerifiedEmail: true,
		Name:          "Bob",
	})

	s.Require().NoError(err)
	s.Equal("bob@example.com", user.Username)
	s.NotEmpty(user.PasswordHash)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestFindOrCreateGoogleUser_UnverifiedEmail() {
	user, err := s.service.FindOrCreateGoogleUser(context.Background(), &domain.GoogleUserInfo{
		Email:         "bob@example.com",
		VerifiedEmail: false,
	})

	s.Require().Error(err)
	s.Nil(user)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
