package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizsuite/gl_engine/internal/core/domain"
	portsrepo "github.com/bizsuite/gl_engine/internal/core/ports/repositories"
	portssvc "github.com/bizsuite/gl_engine/internal/core/ports/services"
	"github.com/bizsuite/gl_engine/internal/core/services"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
	mu sync.Mutex
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// RecalculateBalance is called concurrently by the fan-out; the mutex keeps
// testify's call bookkeeping race-free.
func (m *MockAccountRepository) RecalculateBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite ---
type BalanceServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.BalanceSvcFacade
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewBalanceService(suite.mockRepo, 2)
}

func (suite *BalanceServiceTestSuite) TestRecalculateAccount_ReturnsBalance() {
	ctx := context.Background()
	accountID := uuid.NewString()
	want := decimal.RequireFromString("1234.56")
	suite.mockRepo.On("RecalculateBalance", mock.Anything, accountID).Return(want, nil).Once()

	got, err := suite.service.RecalculateAccount(ctx, accountID)

	suite.Require().NoError(err)
	suite.True(got.Equal(want))
}

func (suite *BalanceServiceTestSuite) TestRecalculateAccounts_AllAccountsTouched() {
	ctx := context.Background()
	accountIDs := []string{uuid.NewString(), uuid.NewString(), uuid.NewString(), uuid.NewString()}
	for _, id := range accountIDs {
		suite.mockRepo.On("RecalculateBalance", mock.Anything, id).Return(decimal.Zero, nil).Once()
	}

	err := suite.service.RecalculateAccounts(ctx, accountIDs)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestRecalculateAccounts_PropagatesFailure() {
	ctx := context.Background()
	good := uuid.NewString()
	bad := uuid.NewString()
	repoErr := errors.New("deadlock detected")
	suite.mockRepo.On("RecalculateBalance", mock.Anything, good).Return(decimal.Zero, nil).Maybe()
	suite.mockRepo.On("RecalculateBalance", mock.Anything, bad).Return(nil, repoErr).Once()

	err := suite.service.RecalculateAccounts(ctx, []string{good, bad})

	suite.Require().Error(err)
	suite.ErrorIs(err, repoErr)
}

func (suite *BalanceServiceTestSuite) TestRecalculateAccounts_EmptyIsNoop() {
	err := suite.service.RecalculateAccounts(context.Background(), nil)
	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "RecalculateBalance", mock.Anything, mock.Anything)
}

func TestBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
