package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/bizsuite/gl_engine/internal/apperrors"
	"github.com/bizsuite/gl_engine/internal/core/domain"
	portssvc "github.com/bizsuite/gl_engine/internal/core/ports/services"
	"github.com/bizsuite/gl_engine/internal/core/services"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
	tenantID string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
	suite.tenantID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_Success() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "1000",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	got, err := suite.service.GetAccountByID(ctx, suite.tenantID, account.AccountID)

	suite.Require().NoError(err)
	suite.Equal(account.AccountID, got.AccountID)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_WrongTenantObscured() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID: uuid.NewString(),
		TenantID:  uuid.NewString(), // different tenant
	}
	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	got, err := suite.service.GetAccountByID(ctx, suite.tenantID, account.AccountID)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestGetAccountsByIDs_FiltersForeignTenants() {
	ctx := context.Background()
	mine := domain.Account{AccountID: uuid.NewString(), TenantID: suite.tenantID}
	foreign := domain.Account{AccountID: uuid.NewString(), TenantID: uuid.NewString()}
	ids := []string{mine.AccountID, foreign.AccountID}

	suite.mockRepo.On("FindAccountsByIDs", ctx, ids).Return(map[string]domain.Account{
		mine.AccountID:    mine,
		foreign.AccountID: foreign,
	}, nil).Once()

	got, err := suite.service.GetAccountsByIDs(ctx, suite.tenantID, ids)

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.Contains(got, mine.AccountID)
	suite.NotContains(got, foreign.AccountID)
}

func (suite *AccountServiceTestSuite) TestListAccounts_DefaultsApplied() {
	ctx := context.Background()
	suite.mockRepo.On("ListAccounts", ctx, suite.tenantID, 20, 0).Return([]domain.Account{}, nil).Once()

	_, err := suite.service.ListAccounts(ctx, suite.tenantID, 0, -5)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
