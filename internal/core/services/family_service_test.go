package services_test

import (
	"context"
	"testing"

	"github.com/finfam/family_finance_app/internal/apperrors"
	"github.com/finfam/family_finance_app/internal/core/domain"
	portsrepo "github.com/finfam/family_finance_app/internal/core/ports/repositories"
	portssvc "github.com/finfam/family_finance_app/internal/core/ports/services"
	"github.com/finfam/family_finance_app/internal/core/services"
	"github.com/finfam/family_finance_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock FamilyRepository ---

type MockFamilyRepository struct {
	mock.Mock
}

var _ portsrepo.FamilyRepositoryFacade = (*MockFamilyRepository)(nil)

func (m *MockFamilyRepository) FindFamilyByID(ctx context.Context, familyID string) (*domain.Family, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Family), args.Error(1)
}

func (m *MockFamilyRepository) SaveFamily(ctx context.Context, family domain.Family) error {
	args := m.Called(ctx, family)
	return args.Error(0)
}

// --- Suite ---

type FamilyServiceTestSuite struct {
	suite.Suite
	mockFamilyRepo *MockFamilyRepository
	mockUserRepo   *MockUserRepository
	service        portssvc.FamilySvcFacade
}

func (s *FamilyServiceTestSuite) SetupTest() {
	s.mockFamilyRepo = new(MockFamilyRepository)
	s.mockUserRepo = new(MockUserRepository)
	s.service = services.NewFamilyService(s.mockFamilyRepo, s.mockUserRepo)
}

func (s *FamilyServiceTestSuite) TestCreateFamily_AttachesCreator() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	s.mockUserRepo.On("FindUserByID", ctx, creatorID).Return(&domain.User{
		UserID: creatorID,
	}, nil).Once()

	var savedFamily domain.Family
	s.mockFamilyRepo.On("SaveFamily", ctx, mock.AnythingOfType("domain.Family")).
		Run(func(args mock.Arguments) {
			savedFamily = args.Get(1).(domain.Family)
		}).Return(nil).Once()
	s.mockUserRepo.On("UpdateUserFamily", ctx, creatorID, mock.AnythingOfType("string"), creatorID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	family, err := s.service.CreateFamily(ctx, dto.CreateFamilyRequest{Name: "Smiths"}, creatorID)

	s.Require().NoError(err)
	s.Equal("Smiths", family.Name)
	s.Equal("USD", family.CurrencyCode) // default when omitted
	s.Equal(family.FamilyID, savedFamily.FamilyID)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *FamilyServiceTestSuite) TestCreateFamily_CreatorAlreadyInFamily() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	s.mockUserRepo.On("FindUserByID", ctx, creatorID).Return(&domain.User{
		UserID:   creatorID,
		FamilyID: uuid.NewString(),
	}, nil).Once()

	family, err := s.service.CreateFamily(ctx, dto.CreateFamilyRequest{Name: "Smiths"}, creatorID)

	s.Require().Error(err)
	s.Nil(family)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockFamilyRepo.AssertNotCalled(s.T(), "SaveFamily", mock.Anything, mock.Anything)
}

func (s *FamilyServiceTestSuite) TestGetMyFamily_NoFamily() {
	ctx := context.Background()
	userID := uuid.NewString()
	s.mockUserRepo.On("FindUserByID", ctx, userID).Return(&domain.User{UserID: userID}, nil).Once()

	family, err := s.service.GetMyFamily(ctx, userID)

	s.Require().Error(err)
	s.Nil(family)
	s.ErrorIs(err, apperrors.ErrNoFamily)
}

func (s *FamilyServiceTestSuite) TestAddMember() {
	ctx := context.Background()
	callerID := uuid.NewString()
	familyID := uuid.NewString()
	targetID := uuid.NewString()
	s.mockUserRepo.On("FindUserByID", ctx, callerID).Return(&domain.User{
		UserID:   callerID,
		FamilyID: familyID,
	}, nil).Once()
	s.mockUserRepo.On("FindUserByUsername", ctx, "bob").Return(&domain.User{
		UserID:   targetID,
		Username: "bob",
	}, nil).Once()
	s.mockUserRepo.On("UpdateUserFamily", ctx, targetID, familyID, callerID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := s.service.AddMember(ctx, dto.AddFamilyMemberRequest{Username: "bob"}, callerID)

	s.Require().NoError(err)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *FamilyServiceTestSuite) TestAddMember_TargetAlreadyInFamily() {
	ctx := context.Background()
	callerID := uuid.NewString()
	s.mockUserRepo.On("FindUserByID", ctx, callerID).Return(&domain.User{
		UserID:   callerID,
		FamilyID: uuid.NewString(),
	}, nil).Once()
	s.mockUserRepo.On("FindUserByUsername", ctx, "bob").Return(&domain.User{
		UserID:   uuid.NewString(),
		Username: "bob",
		FamilyID: uuid.NewString(),
	}, nil).Once()

	err := s.service.AddMember(ctx, dto.AddFamilyMemberRequest{Username: "bob"}, callerID)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockUserRepo.AssertNotCalled(s.T(), "UpdateUserFamily",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFamilyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FamilyServiceTestSuite))
}
