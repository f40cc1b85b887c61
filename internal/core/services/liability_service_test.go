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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LiabilityRepository ---

type MockLiabilityRepository struct {
	mock.Mock
}

var _ portsrepo.LiabilityRepositoryFacade = (*MockLiabilityRepository)(nil)

func (m *MockLiabilityRepository) FindLiabilityByID(ctx context.Context, liabilityID string) (*domain.Liability, error) {
	args := m.Called(ctx, liabilityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Liability), args.Error(1)
}

func (m *MockLiabilityRepository) ListLiabilities(ctx context.Context, familyID string, filter portsrepo.ListLiabilitiesFilter) ([]domain.Liability, int64, error) {
	args := m.Called(ctx, familyID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Liability), args.Get(1).(int64), args.Error(2)
}

func (m *MockLiabilityRepository) ListActiveLiabilities(ctx context.Context, familyID string) ([]domain.Liability, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Liability), args.Error(1)
}

func (m *MockLiabilityRepository) SaveLiability(ctx context.Context, liability domain.Liability) error {
	args := m.Called(ctx, liability)
	return args.Error(0)
}

func (m *MockLiabilityRepository) UpdateLiability(ctx context.Context, liability domain.Liability) error {
	args := m.Called(ctx, liability)
	return args.Error(0)
}

func (m *MockLiabilityRepository) DeleteLiability(ctx context.Context, liabilityID string) error {
	args := m.Called(ctx, liabilityID)
	return args.Error(0)
}

func (m *MockLiabilityRepository) SaveInstallmentPlan(ctx context.Context, plan domain.InstallmentPlan, installments []domain.Installment) error {
	args := m.Called(ctx, plan, installments)
	return args.Error(0)
}

func (m *MockLiabilityRepository) FindPlanByID(ctx context.Context, planID string) (*domain.InstallmentPlan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InstallmentPlan), args.Error(1)
}

func (m *MockLiabilityRepository) FindInstallmentsByPlanID(ctx context.Context, planID string) ([]domain.Installment, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Installment), args.Error(1)
}

func (m *MockLiabilityRepository) FindInstallmentForLiability(ctx context.Context, installmentID string, liabilityID string) (*domain.Installment, error) {
	args := m.Called(ctx, installmentID, liabilityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Installment), args.Error(1)
}

func (m *MockLiabilityRepository) MarkInstallmentPaid(ctx context.Context, liabilityID string, installmentID string, transactionID *string, userID string, now time.Time) (*domain.Installment, *domain.InstallmentPlan, error) {
	args := m.Called(ctx, liabilityID, installmentID, transactionID, userID, now)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Installment), args.Get(1).(*domain.InstallmentPlan), args.Error(2)
}

func (m *MockLiabilityRepository) FindUnpaidInstallmentsDue(ctx context.Context, familyID string, before time.Time) ([]domain.InstallmentDue, error) {
	args := m.Called(ctx, familyID, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InstallmentDue), args.Error(1)
}

// --- Mock AccountReader ---

type MockAccountReader struct {
	mock.Mock
}

var _ portsrepo.AccountReader = (*MockAccountReader)(nil)

func (m *MockAccountReader) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) ListAccounts(ctx context.Context, familyID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, familyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock UserReader ---

type MockUserReader struct {
	mock.Mock
}

var _ portsrepo.UserReader = (*MockUserReader)(nil)

func (m *MockUserReader) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReader) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Suite ---

type LiabilityServiceTestSuite struct {
	suite.Suite
	mockLiabilityRepo *MockLiabilityRepository
	mockAccountRepo   *MockAccountReader
	mockUserRepo      *MockUserReader
	service           portssvc.LiabilitySvcFacade

	familyID string
	userID   string
}

func (s *LiabilityServiceTestSuite) SetupTest() {
	s.mockLiabilityRepo = new(MockLiabilityRepository)
	s.mockAccountRepo = new(MockAccountReader)
	s.mockUserRepo = new(MockUserReader)
	s.service = services.NewLiabilityService(s.mockLiabilityRepo, s.mockAccountRepo, s.mockUserRepo)

	s.familyID = uuid.NewString()
	s.userID = uuid.NewString()

	s.mockUserRepo.On("FindUserByID", mock.Anything, s.userID).Return(&domain.User{
		UserID:   s.userID,
		FamilyID: s.familyID,
	}, nil).Maybe()
}

func decPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func (s *LiabilityServiceTestSuite) TestCreateLiability_Defaults() {
	ctx := context.Background()
	req := dto.CreateLiabilityRequest{
		Name:           "Car Loan",
		LiabilityType:  domain.Loan,
		OriginalAmount: decPtr("12000"),
	}

	s.mockLiabilityRepo.On("SaveLiability", ctx, mock.AnythingOfType("domain.Liability")).Return(nil).Once()

	created, err := s.service.CreateLiability(ctx, req, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(created)
	s.NotEmpty(created.LiabilityID)
	s.Equal(s.familyID, created.FamilyID)
	s.Equal(domain.LiabilityActive, created.Status)
	s.Equal("USD", created.CurrencyCode)
	s.True(created.CurrentBalance.IsZero())
	s.Equal(s.userID, created.CreatedBy)
	s.mockLiabilityRepo.AssertExpectations(s.T())
}

func (s *LiabilityServiceTestSuite) TestCreateLiability_CreditCardRequiresLimit() {
	ctx := context.Background()
	req := dto.CreateLiabilityRequest{
		Name:          "Visa",
		LiabilityType: domain.CreditCard,
	}

	created, err := s.service.CreateLiability(ctx, req, s.userID)

	s.Require().Error(err)
	s.Nil(created)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockLiabilityRepo.AssertNotCalled(s.T(), "SaveLiability", mock.Anything, mock.Anything)
}

func (s *LiabilityServiceTestSuite) TestCreateLiability_BNPLRequiresProvider() {
	ctx := context.Background()
	req := dto.CreateLiabilityRequest{
		Name:           "Sofa",
		LiabilityType:  domain.BNPL,
		OriginalAmount: decPtr("400"),
	}

	created, err := s.service.CreateLiability(ctx, req, s.userID)

	s.Require().Error(err)
	s.Nil(created)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LiabilityServiceTestSuite) TestCreateLiability_NoFamily() {
	ctx := context.Background()
	lonelyUser := uuid.NewString()
	s.mockUserRepo.On("FindUserByID", mock.Anything, lonelyUser).Return(&domain.User{
		UserID: lonelyUser,
	}, nil).Once()

	req := dto.CreateLiabilityRequest{
		Name:           "Car Loan",
		LiabilityType:  domain.Loan,
		OriginalAmount: decPtr("12000"),
	}

	created, err := s.service.CreateLiability(ctx, req, lonelyUser)

	s.Require().Error(err)
	s.Nil(created)
	s.ErrorIs(err, apperrors.ErrNoFamily)
}

func (s *LiabilityServiceTestSuite) TestCreateLiability_LinkedAccountOtherFamily() {
	ctx := context.Background()
	accountID := uuid.NewString()
	s.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(&domain.Account{
		AccountID: accountID,
		FamilyID:  uuid.NewString(), // someone else's account
	}, nil).Once()

	req := dto.CreateLiabilityRequest{
		Name:           "Car Loan",
		LiabilityType:  domain.Loan,
		OriginalAmount: decPtr("12000"),
		AccountID:      &accountID,
	}

	created, err := s.service.CreateLiability(ctx, req, s.userID)

	s.Require().Error(err)
	s.Nil(created)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LiabilityServiceTestSuite) TestGetLiabilityByID_OwnershipMissIsNotFound() {
	ctx := context.Background()
	liabilityID := uuid.NewString()
	s.mockLiabilityRepo.On("FindLiabilityByID", ctx, liabilityID).Return(&domain.Liability{
		LiabilityID: liabilityID,
		FamilyID:    uuid.NewString(), // different family
	}, nil).Once()

	liability, err := s.service.GetLiabilityByID(ctx, liabilityID, s.userID)

	s.Require().Error(err)
	s.Nil(liability)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LiabilityServiceTestSuite) TestListLiabilities_Envelope() {
	ctx := context.Background()
	rows := []domain.Liability{
		{LiabilityID: uuid.NewString(), FamilyID: s.familyID, LiabilityType: domain.Loan, CurrentBalance: decimal.NewFromInt(100)},
		{LiabilityID: uuid.NewString(), FamilyID: s.familyID, LiabilityType: domain.Loan, CurrentBalance: decimal.NewFromInt(200)},
	}
	s.mockLiabilityRepo.On("ListLiabilities", ctx, s.familyID, mock.AnythingOfType("repositories.ListLiabilitiesFilter")).
		Return(rows, int64(5), nil).Once()

	resp, err := s.service.ListLiabilities(ctx, s.userID, dto.ListLiabilitiesParams{Limit: 2, Offset: 0})

	s.Require().NoError(err)
	s.Len(resp.Liabilities, 2)
	s.Equal(int64(5), resp.Total)
	s.True(resp.HasMore)
	s.Equal(2, resp.Limit)
}

func (s *LiabilityServiceTestSuite) liabilityInFamily(liabilityID string) *domain.Liability {
	return &domain.Liability{
		LiabilityID:    liabilityID,
		FamilyID:       s.familyID,
		LiabilityType:  domain.BNPL,
		Name:           "Klarna Purchase",
		Status:         domain.LiabilityActive,
		CurrentBalance: decimal.NewFromInt(300),
		CurrencyCode:   "USD",
	}
}

func (s *LiabilityServiceTestSuite) TestCreateInstallmentPlan_MonthlySchedule() {
	ctx := context.Background()
	liabilityID := uuid.NewString()
	s.mockLiabilityRepo.On("FindLiabilityByID", ctx, liabilityID).
		Return(s.liabilityInFamily(liabilityID), nil).Once()

	var savedPlan domain.InstallmentPlan
	var savedInstallments []domain.Installment
	s.mockLiabilityRepo.On("SaveInstallmentPlan", ctx, mock.AnythingOfType("domain.InstallmentPlan"), mock.AnythingOfType("[]domain.Installment")).
		Run(func(args mock.Arguments) {
			savedPlan = args.Get(1).(domain.InstallmentPlan)
			savedInstallments = args.Get(2).([]domain.Installment)
		}).Return(nil).Once()

	start := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	req := dto.CreateInstallmentPlanRequest{
		TotalAmount:          decimal.NewFromInt(300),
		InstallmentAmount:    decimal.NewFromInt(100),
		NumberOfInstallments: 3,
		StartDate:            start,
	}

	plan, installments, err := s.service.CreateInstallmentPlan(ctx, liabilityID, req, s.userID)

	s.Require().NoError(err)
	s.Require().Len(installments, 3)
	s.Equal(3, plan.RemainingInstallments)
	s.False(plan.IsPaidOff)
	s.Equal("USD", plan.CurrencyCode) // falls back to the liability currency

	s.Equal(start, installments[0].DueDate)
	s.Equal(time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC), installments[1].DueDate)
	s.Equal(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), installments[2].DueDate)
	s.Equal(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), plan.EndDate)
	s.Equal(1, installments[0].InstallmentNumber)
	s.Equal(3, installments[2].InstallmentNumber)

	s.Equal(savedPlan.PlanID, plan.PlanID)
	s.Len(savedInstallments, 3)
}

func (s *LiabilityServiceTestSuite) TestCreateInstallmentPlan_EndOfMonthClamps() {
	ctx := context.Background()
	liabilityID := uuid.NewString()
	s.mockLiabilityRepo.On("FindLiabilityByID", ctx, liabilityID).
		Return(s.liabilityInFamily(liabilityID), nil).Once()
	s.mockLiabilityRepo.On("SaveInstallmentPlan", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	start := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	req := dto.CreateInstallmentPlanRequest{
		TotalAmount:          decimal.NewFromInt(300),
		InstallmentAmount:    decimal.NewFromInt(100),
		NumberOfInstallments: 3,
		StartDate:            start,
	}

	_, installments, err := s.service.CreateInstallmentPlan(ctx, liabilityID, req, s.userID)

	s.Require().NoError(err)
	s.Equal(time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC), installments[0].DueDate)
	// 2024 is a leap year; Jan 31 + 1 month clamps to Feb 29, not Mar 2.
	s.Equal(time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), installments[1].DueDate)
	s.Equal(time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), installments[2].DueDate)
}

func (s *LiabilityServiceTestSuite) TestMarkInstallmentPaid_AlreadyPaid() {
	ctx := context.Background()
	liabilityID := uuid.NewString()
	installmentID := uuid.NewString()
	s.mockLiabilityRepo.On("FindLiabilityByID", ctx, liabilityID).
		Return(s.liabilityInFamily(liabilityID), nil).Once()
	s.mockLiabilityRepo.On("MarkInstallmentPaid", ctx, liabilityID, installmentID, (*string)(nil), s.userID, mock.AnythingOfType("time.Time")).
		Return(nil, nil, apperrors.ErrValidation).Once()

	installment, plan, err := s.service.MarkInstallmentPaid(ctx, liabilityID, installmentID, nil, s.userID)

	s.Require().Error(err)
	s.Nil(installment)
	s.Nil(plan)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LiabilityServiceTestSuite) TestGetSummary_Aggregates() {
	ctx := context.Background()
	limit := decimal.NewFromInt(1000)
	liabilities := []domain.Liability{
		{
			LiabilityID:    uuid.NewString(),
			FamilyID:       s.familyID,
			LiabilityType:  domain.CreditCard,
			Status:         domain.LiabilityActive,
			CurrentBalance: decimal.NewFromInt(250),
			CreditLimit:    &limit,
		},
		{
			LiabilityID:    uuid.NewString(),
			FamilyID:       s.familyID,
			LiabilityType:  domain.Loan,
			Status:         domain.LiabilityActive,
			CurrentBalance: decimal.NewFromInt(500),
		},
	}
	s.mockLiabilityRepo.On("ListActiveLiabilities", ctx, s.familyID).Return(liabilities, nil).Once()
	s.mockLiabilityRepo.On("FindUnpaidInstallmentsDue", ctx, s.familyID, mock.AnythingOfType("time.Time")).
		Return([]domain.InstallmentDue{
			{Installment: domain.Installment{Amount: decimal.NewFromInt(100)}},
			{Installment: domain.Installment{Amount: decimal.NewFromInt(100)}},
		}, nil).Once()

	summary, err := s.service.GetSummary(ctx, s.userID)

	s.Require().NoError(err)
	s.Equal(2, summary.TotalCount)
	s.True(summary.TotalBalance.Equal(decimal.NewFromInt(750)))
	s.True(summary.TotalCreditLimit.Equal(decimal.NewFromInt(1000)))
	s.True(summary.OverallUtilizationPct.Equal(decimal.NewFromInt(25)))
	s.Equal(1, summary.ByType[string(domain.CreditCard)].Count)
	s.True(summary.ByType[string(domain.Loan)].TotalOwed.Equal(decimal.NewFromInt(500)))
	s.Equal(2, summary.UpcomingPaymentCount)
	s.True(summary.UpcomingPaymentTotal.Equal(decimal.NewFromInt(200)))
}

func (s *LiabilityServiceTestSuite) TestGetSummary_UpcomingIncludesCreditCardMinimums() {
	ctx := context.Background()
	minPayment := decimal.NewFromInt(35)
	dueDay := time.Now().AddDate(0, 0, 2).Day()
	limit := decimal.NewFromInt(1000)
	cc := domain.Liability{
		LiabilityID:    uuid.NewString(),
		FamilyID:       s.familyID,
		LiabilityType:  domain.CreditCard,
		Name:           "Visa",
		Status:         domain.LiabilityActive,
		CurrentBalance: decimal.NewFromInt(400),
		CreditLimit:    &limit,
		MinimumPayment: &minPayment,
		PaymentDueDay:  &dueDay,
		CurrencyCode:   "USD",
	}
	// One call each from GetSummary and from GetUpcomingPayments below.
	s.mockLiabilityRepo.On("ListActiveLiabilities", ctx, s.familyID).
		Return([]domain.Liability{cc}, nil).Twice()
	s.mockLiabilityRepo.On("FindUnpaidInstallmentsDue", ctx, s.familyID, mock.AnythingOfType("time.Time")).
		Return([]domain.InstallmentDue{}, nil).Twice()

	summary, err := s.service.GetSummary(ctx, s.userID)

	s.Require().NoError(err)
	s.Equal(1, summary.UpcomingPaymentCount)
	s.True(summary.UpcomingPaymentTotal.Equal(minPayment))

	// The summary slice is the 30-day merged view, so the two endpoints agree.
	payments, err := s.service.GetUpcomingPayments(ctx, s.userID, 30)
	s.Require().NoError(err)
	s.Len(payments, summary.UpcomingPaymentCount)
	s.True(payments[0].Amount.Equal(summary.UpcomingPaymentTotal))
}

func (s *LiabilityServiceTestSuite) TestGetInstallmentPlan() {
	ctx := context.Background()
	liabilityID := uuid.NewString()
	planID := uuid.NewString()
	s.mockLiabilityRepo.On("FindLiabilityByID", ctx, liabilityID).
		Return(s.liabilityInFamily(liabilityID), nil).Once()
	s.mockLiabilityRepo.On("FindPlanByID", ctx, planID).Return(&domain.InstallmentPlan{
		PlanID:                planID,
		LiabilityID:           liabilityID,
		NumberOfInstallments:  3,
		RemainingInstallments: 2,
	}, nil).Once()
	s.mockLiabilityRepo.On("FindInstallmentsByPlanID", ctx, planID).Return([]domain.Installment{
		{InstallmentID: uuid.NewString(), PlanID: planID, InstallmentNumber: 1, IsPaid: true},
		{InstallmentID: uuid.NewString(), PlanID: planID, InstallmentNumber: 2},
		{InstallmentID: uuid.NewString(), PlanID: planID, InstallmentNumber: 3},
	}, nil).Once()

	plan, installments, err := s.service.GetInstallmentPlan(ctx, liabilityID, planID, s.userID)

	s.Require().NoError(err)
	s.Equal(planID, plan.PlanID)
	s.Len(installments, 3)
	s.True(installments[0].IsPaid)
}

func (s *LiabilityServiceTestSuite) TestGetInstallmentPlan_OtherLiabilityIsNotFound() {
	ctx := context.Background()
	liabilityID := uuid.NewString()
	planID := uuid.NewString()
	s.mockLiabilityRepo.On("FindLiabilityByID", ctx, liabilityID).
		Return(s.liabilityInFamily(liabilityID), nil).Once()
	s.mockLiabilityRepo.On("FindPlanByID", ctx, planID).Return(&domain.InstallmentPlan{
		PlanID:      planID,
		LiabilityID: uuid.NewString(), // plan belongs to another liability
	}, nil).Once()

	plan, installments, err := s.service.GetInstallmentPlan(ctx, liabilityID, planID, s.userID)

	s.Require().Error(err)
	s.Nil(plan)
	s.Nil(installments)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockLiabilityRepo.AssertNotCalled(s.T(), "FindInstallmentsByPlanID", mock.Anything, mock.Anything)
}

func (s *LiabilityServiceTestSuite) TestGetInstallment() {
	ctx := context.Background()
	liabilityID := uuid.NewString()
	installmentID := uuid.NewString()
	s.mockLiabilityRepo.On("FindLiabilityByID", ctx, liabilityID).
		Return(s.liabilityInFamily(liabilityID), nil).Once()
	s.mockLiabilityRepo.On("FindInstallmentForLiability", ctx, installmentID, liabilityID).
		Return(&domain.Installment{
			InstallmentID:     installmentID,
			Amount:            decimal.NewFromInt(100),
			InstallmentNumber: 2,
		}, nil).Once()

	installment, err := s.service.GetInstallment(ctx, liabilityID, installmentID, s.userID)

	s.Require().NoError(err)
	s.Equal(installmentID, installment.InstallmentID)
	s.Equal(2, installment.InstallmentNumber)
}

func (s *LiabilityServiceTestSuite) TestGetUpcomingPayments_MergesAndSorts() {
	ctx := context.Background()
	now := time.Now()

	installmentDue := domain.InstallmentDue{
		Installment: domain.Installment{
			InstallmentID: uuid.NewString(),
			Amount:        decimal.NewFromInt(100),
			DueDate:       now.AddDate(0, 0, 5),
		},
		LiabilityID:   uuid.NewString(),
		LiabilityName: "Klarna Purchase",
		LiabilityType: domain.BNPL,
		CurrencyCode:  "USD",
	}
	overdue := domain.InstallmentDue{
		Installment: domain.Installment{
			InstallmentID: uuid.NewString(),
			Amount:        decimal.NewFromInt(50),
			DueDate:       now.AddDate(0, 0, -3),
		},
		LiabilityID:   uuid.NewString(),
		LiabilityName: "Affirm Purchase",
		LiabilityType: domain.BNPL,
		CurrencyCode:  "USD",
	}
	s.mockLiabilityRepo.On("FindUnpaidInstallmentsDue", ctx, s.familyID, mock.AnythingOfType("time.Time")).
		Return([]domain.InstallmentDue{installmentDue, overdue}, nil).Once()

	minPayment := decimal.NewFromInt(35)
	dueDay := now.AddDate(0, 0, 2).Day()
	cc := domain.Liability{
		LiabilityID:    uuid.NewString(),
		FamilyID:       s.familyID,
		LiabilityType:  domain.CreditCard,
		Name:           "Visa",
		Status:         domain.LiabilityActive,
		CurrentBalance: decimal.NewFromInt(400),
		MinimumPayment: &minPayment,
		PaymentDueDay:  &dueDay,
		CurrencyCode:   "USD",
	}
	paidOffCard := domain.Liability{
		LiabilityID:    uuid.NewString(),
		FamilyID:       s.familyID,
		LiabilityType:  domain.CreditCard,
		Name:           "Paid Off Card",
		Status:         domain.LiabilityActive,
		CurrentBalance: decimal.Zero,
		MinimumPayment: &minPayment,
		PaymentDueDay:  &dueDay,
		CurrencyCode:   "USD",
	}
	s.mockLiabilityRepo.On("ListActiveLiabilities", ctx, s.familyID).
		Return([]domain.Liability{cc, paidOffCard}, nil).Once()

	payments, err := s.service.GetUpcomingPayments(ctx, s.userID, 30)

	s.Require().NoError(err)
	// The zero-balance card owes nothing, so it contributes no entry.
	s.Require().Len(payments, 3)

	// Sorted ascending by due date: overdue installment first.
	s.Equal(domain.SourceInstallment, payments[0].Source)
	s.Equal("Affirm Purchase", payments[0].LiabilityName)
	s.True(payments[0].IsOverdue)
	s.Negative(payments[0].DaysUntilDue)

	s.Equal(domain.SourceMinimumPayment, payments[1].Source)
	s.Equal("Visa", payments[1].LiabilityName)
	s.True(payments[1].Amount.Equal(minPayment))
	s.False(payments[1].IsOverdue)

	s.Equal(domain.SourceInstallment, payments[2].Source)
	s.False(payments[2].IsOverdue)
}

func (s *LiabilityServiceTestSuite) TestDetectBNPL() {
	ctx := context.Background()

	match := s.service.DetectBNPL(ctx, "KLARNA*Purchase 123", "")
	s.Require().NotNil(match)
	s.Equal("Klarna", match.Provider)
	s.True(match.Confidence.Equal(decimal.NewFromFloat(0.9)))
	s.Equal("Klarna Purchase", match.SuggestedName)

	s.Nil(s.service.DetectBNPL(ctx, "Grocery Store", "Local Market"))
}

func TestLiabilityServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LiabilityServiceTestSuite))
}
