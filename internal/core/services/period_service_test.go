package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizsuite/gl_engine/internal/apperrors"
	"github.com/bizsuite/gl_engine/internal/core/domain"
	portsrepo "github.com/bizsuite/gl_engine/internal/core/ports/repositories"
	portssvc "github.com/bizsuite/gl_engine/internal/core/ports/services"
	"github.com/bizsuite/gl_engine/internal/core/services"
)

// --- Mock PeriodRepository ---
type MockPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.PeriodRepositoryFacade = (*MockPeriodRepository)(nil)

func (m *MockPeriodRepository) FindOpenPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, tenantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) CountPeriods(ctx context.Context, tenantID string) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Test Suite ---
type PeriodServiceTestSuite struct {
	suite.Suite
	mockRepo *MockPeriodRepository
	service  portssvc.PeriodSvcFacade
	tenantID string
}

func (suite *PeriodServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPeriodRepository)
	suite.service = services.NewPeriodService(suite.mockRepo)
	suite.tenantID = uuid.NewString()
}

func (suite *PeriodServiceTestSuite) TestEnsurePostable_OpenPeriodFound() {
	ctx := context.Background()
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	period := &domain.AccountingPeriod{
		PeriodID:  uuid.NewString(),
		TenantID:  suite.tenantID,
		Name:      "March 2026",
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.PeriodOpen,
	}
	suite.mockRepo.On("FindOpenPeriodForDate", ctx, suite.tenantID, date).Return(period, nil).Once()

	err := suite.service.EnsurePostable(ctx, suite.tenantID, date)

	suite.Require().NoError(err)
	// When an open period matches, period existence is not consulted.
	suite.mockRepo.AssertNotCalled(suite.T(), "CountPeriods", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestEnsurePostable_NoPeriodsConfiguredDefaultsOpen() {
	ctx := context.Background()
	date := time.Now()
	suite.mockRepo.On("FindOpenPeriodForDate", ctx, suite.tenantID, date).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("CountPeriods", ctx, suite.tenantID).Return(int64(0), nil).Once()

	err := suite.service.EnsurePostable(ctx, suite.tenantID, date)

	suite.Require().NoError(err)
}

func (suite *PeriodServiceTestSuite) TestEnsurePostable_PeriodsExistButNoneOpen() {
	ctx := context.Background()
	date := time.Now()
	suite.mockRepo.On("FindOpenPeriodForDate", ctx, suite.tenantID, date).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("CountPeriods", ctx, suite.tenantID).Return(int64(3), nil).Once()

	err := suite.service.EnsurePostable(ctx, suite.tenantID, date)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrOutsideOpenPeriod)
}

func (suite *PeriodServiceTestSuite) TestEnsurePostable_NoTenant() {
	err := suite.service.EnsurePostable(context.Background(), "", time.Now())
	suite.ErrorIs(err, apperrors.ErrNoActiveTenant)
}

func (suite *PeriodServiceTestSuite) TestAnyPeriodsExist() {
	ctx := context.Background()
	suite.mockRepo.On("CountPeriods", ctx, suite.tenantID).Return(int64(1), nil).Once()

	exists, err := suite.service.AnyPeriodsExist(ctx, suite.tenantID)

	suite.Require().NoError(err)
	suite.True(exists)
}

func TestPeriodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}
