package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizsuite/gl_engine/internal/apperrors"
	"github.com/bizsuite/gl_engine/internal/core/domain"
	portssvc "github.com/bizsuite/gl_engine/internal/core/ports/services"
	"github.com/bizsuite/gl_engine/internal/core/services"
	"github.com/bizsuite/gl_engine/internal/dto"
)

// --- Mock JournalService (as used by the posting adapter) ---
type MockJournalService struct {
	mock.Mock
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (m *MockJournalService) CreateJournal(ctx context.Context, tenantID string, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error) {
	args := m.Called(ctx, tenantID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalService) GetJournalByID(ctx context.Context, tenantID string, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, tenantID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalService) ListJournals(ctx context.Context, tenantID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalsResponse), args.Error(1)
}

func (m *MockJournalService) UpdateJournal(ctx context.Context, tenantID string, journalID string, req dto.UpdateJournalRequest, requestingUserID string) (*domain.Journal, error) {
	args := m.Called(ctx, tenantID, journalID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalService) PostJournal(ctx context.Context, tenantID string, journalID string, postedByUserID string) (*domain.Journal, error) {
	args := m.Called(ctx, tenantID, journalID, postedByUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalService) VoidJournal(ctx context.Context, tenantID string, journalID string, voidedByUserID string) (*domain.Journal, error) {
	args := m.Called(ctx, tenantID, journalID, voidedByUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalService) DeleteJournal(ctx context.Context, tenantID string, journalID string, requestingUserID string) error {
	return m.Called(ctx, tenantID, journalID, requestingUserID).Error(0)
}

func (m *MockJournalService) ListLinesByAccount(ctx context.Context, tenantID string, accountID string, params dto.ListJournalLinesParams) (*dto.ListJournalLinesResponse, error) {
	args := m.Called(ctx, tenantID, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalLinesResponse), args.Error(1)
}

// --- Test Suite ---
type PostingServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockJournalSvc  *MockJournalService
	mockAccountSvc  *MockAccountService
	service         portssvc.PostingSvcFacade
	tenantID        string
	userID          string
	arAccount       domain.Account
	revenueAccount  domain.Account
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockJournalSvc = new(MockJournalService)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewPostingService(suite.mockJournalRepo, suite.mockJournalSvc, suite.mockAccountSvc)

	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.arAccount = domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "1100",
		Name:        "Accounts Receivable",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "4000",
		Name:        "Sales Revenue",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
}

func (suite *PostingServiceTestSuite) invoiceRequest() dto.PostDocumentRequest {
	return dto.PostDocumentRequest{
		Source:          domain.SourceInvoice,
		SourceRef:       "INV-0042",
		TransactionDate: time.Now(),
		Description:     "Invoice INV-0042",
		Lines: []dto.PostDocumentLineRequest{
			{AccountCode: "1100", Debit: decimal.NewFromInt(500)},
			{AccountCode: "4000", Credit: decimal.NewFromInt(500)},
		},
	}
}

func (suite *PostingServiceTestSuite) TestPostDocument_Success() {
	ctx := context.Background()
	req := suite.invoiceRequest()

	suite.mockJournalRepo.On("FindJournalBySourceRef", ctx, suite.tenantID, domain.SourceInvoice, "INV-0042").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountSvc.On("GetAccountByCode", ctx, suite.tenantID, "1100").Return(&suite.arAccount, nil).Once()
	suite.mockAccountSvc.On("GetAccountByCode", ctx, suite.tenantID, "4000").Return(&suite.revenueAccount, nil).Once()

	created := &domain.Journal{
		JournalID:     uuid.NewString(),
		TenantID:      suite.tenantID,
		JournalNumber: "JE-2026-000007",
		Status:        domain.Posted,
	}
	suite.mockJournalSvc.On("CreateJournal", ctx, suite.tenantID, mock.MatchedBy(func(r dto.CreateJournalRequest) bool {
		return r.Status == domain.Posted &&
			r.Source == domain.SourceInvoice &&
			r.SourceRef == "INV-0042" &&
			len(r.Lines) == 2 &&
			r.Lines[0].AccountID == suite.arAccount.AccountID &&
			r.Lines[1].AccountID == suite.revenueAccount.AccountID
	}), suite.userID).Return(created, nil).Once()

	result, err := suite.service.PostDocumentToGL(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.Posted)
	suite.False(result.AlreadyPosted)
	suite.Equal(created.JournalID, result.JournalID)
	suite.Equal("JE-2026-000007", result.JournalNumber)
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostDocument_Idempotent() {
	ctx := context.Background()
	req := suite.invoiceRequest()

	existing := &domain.Journal{
		JournalID:     uuid.NewString(),
		TenantID:      suite.tenantID,
		JournalNumber: "JE-2026-000003",
		Status:        domain.Posted,
	}
	suite.mockJournalRepo.On("FindJournalBySourceRef", ctx, suite.tenantID, domain.SourceInvoice, "INV-0042").Return(existing, nil).Once()

	result, err := suite.service.PostDocumentToGL(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.AlreadyPosted)
	suite.False(result.Posted)
	suite.Equal(existing.JournalID, result.JournalID)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "CreateJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostDocument_MissingAccountCode() {
	ctx := context.Background()
	req := suite.invoiceRequest()

	suite.mockJournalRepo.On("FindJournalBySourceRef", ctx, suite.tenantID, domain.SourceInvoice, "INV-0042").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountSvc.On("GetAccountByCode", ctx, suite.tenantID, "1100").Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.PostDocumentToGL(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	var missingErr *services.MissingGLAccountError
	suite.Require().ErrorAs(err, &missingErr)
	suite.Equal("1100", missingErr.Code)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "CreateJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostDocument_InactiveAccountCode() {
	ctx := context.Background()
	req := suite.invoiceRequest()

	inactive := suite.arAccount
	inactive.IsActive = false
	suite.mockJournalRepo.On("FindJournalBySourceRef", ctx, suite.tenantID, domain.SourceInvoice, "INV-0042").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountSvc.On("GetAccountByCode", ctx, suite.tenantID, "1100").Return(&inactive, nil).Once()

	result, err := suite.service.PostDocumentToGL(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	var missingErr *services.MissingGLAccountError
	suite.ErrorAs(err, &missingErr)
}

func (suite *PostingServiceTestSuite) TestPostDocument_MissingSourceRef() {
	ctx := context.Background()
	req := suite.invoiceRequest()
	req.SourceRef = ""

	result, err := suite.service.PostDocumentToGL(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
