package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizsuite/gl_engine/internal/apperrors"
	"github.com/bizsuite/gl_engine/internal/core/domain"
	portsrepo "github.com/bizsuite/gl_engine/internal/core/ports/repositories"
	portssvc "github.com/bizsuite/gl_engine/internal/core/ports/services"
	"github.com/bizsuite/gl_engine/internal/dto"
	"github.com/bizsuite/gl_engine/internal/middleware"
	"github.com/bizsuite/gl_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrNoJournalLines  = errors.New("journal must have at least one line")
)

// ImbalanceError reports a line set whose debit and credit totals differ by
// more than the tolerated epsilon. Diff is sum(debit) - sum(credit).
type ImbalanceError struct {
	Diff decimal.Decimal
}

func (e *ImbalanceError) Error() string {
	return fmt.Sprintf("journal is not balanced: debits differ from credits by %s", e.Diff.String())
}

// JournalLockedError reports an attempt to mutate a journal that is no
// longer a draft. Posted and voided journals are immutable history.
type JournalLockedError struct {
	Status domain.JournalStatus
}

func (e *JournalLockedError) Error() string {
	switch e.Status {
	case domain.Posted:
		return "journal is already posted"
	case domain.Voided:
		return "journal is voided"
	default:
		return fmt.Sprintf("journal status %s does not permit this operation", e.Status)
	}
}

// journalService orchestrates the journal lifecycle: validation, numbering,
// persistence, period control, balance recalculation, and view invalidation.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryWithTx
	accountSvc  portssvc.AccountSvcFacade
	periodSvc   portssvc.PeriodSvcFacade
	balanceSvc  portssvc.BalanceSvcFacade
	invalidator portssvc.CacheInvalidator
}

// NewJournalService creates a new JournalSvcFacade.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryWithTx,
	accountSvc portssvc.AccountSvcFacade,
	periodSvc portssvc.PeriodSvcFacade,
	balanceSvc portssvc.BalanceSvcFacade,
	invalidator portssvc.CacheInvalidator,
) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
		periodSvc:   periodSvc,
		balanceSvc:  balanceSvc,
		invalidator: invalidator,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// requireCaller enforces the shared preconditions of every mutator: an
// authenticated user and a resolved tenant, checked before any repository work.
func requireCaller(tenantID, userID string) error {
	if userID == "" {
		return apperrors.ErrUnauthenticated
	}
	if tenantID == "" {
		return apperrors.ErrNoActiveTenant
	}
	return nil
}

// buildLines converts request lines into domain lines owned by journalID,
// validating that no leg is negative.
func buildLines(journalID string, reqLines []dto.CreateJournalLineRequest, userID string, now time.Time) ([]domain.JournalLine, error) {
	lines := make([]domain.JournalLine, len(reqLines))
	for i, lr := range reqLines {
		if lr.Debit.IsNegative() || lr.Credit.IsNegative() {
			return nil, fmt.Errorf("%w: debit and credit must not be negative for account %s", apperrors.ErrValidation, lr.AccountID)
		}
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			JournalID:   journalID,
			AccountID:   lr.AccountID,
			Debit:       lr.Debit,
			Credit:      lr.Credit,
			Description: lr.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}
	return lines, nil
}

// validateLines checks the aggregate double-entry balance and that every
// referenced account exists, belongs to the tenant, and is active.
func (s *journalService) validateLines(ctx context.Context, tenantID string, lines []domain.JournalLine) error {
	if len(lines) == 0 {
		return ErrNoJournalLines
	}

	if diff, ok := accounting.CheckBalanced(lines); !ok {
		return &ImbalanceError{Diff: diff}
	}

	accountIDs := domain.DistinctAccountIDs(lines)
	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, tenantID, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range accountIDs {
		acc, found := accountsMap[id]
		if !found {
			return fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}
	return nil
}

// invalidateViews signals stale tenant views after a successful mutation.
// Failures are logged, never propagated: the ledger write already committed.
func (s *journalService) invalidateViews(ctx context.Context, tenantID string) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.InvalidateViews(ctx, tenantID, portssvc.ViewJournals, portssvc.ViewGLReports, portssvc.ViewChartOfAccounts); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to invalidate tenant views", slog.String("tenant_id", tenantID), slog.String("error", err.Error()))
	}
}

// recalculateAccounts recomputes cached balances for the given accounts.
// The journal write has already committed; a failed recalculation leaves a
// stale cache that self-heals on the next trigger, so it is logged only.
func (s *journalService) recalculateAccounts(ctx context.Context, accountIDs []string) {
	if len(accountIDs) == 0 {
		return
	}
	if err := s.balanceSvc.RecalculateAccounts(ctx, accountIDs); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Balance recalculation failed after committed journal mutation", slog.String("error", err.Error()))
	}
}

// CreateJournal creates a new journal with its lines after validation.
// Implements portssvc.JournalSvcFacade
func (s *journalService) CreateJournal(ctx context.Context, tenantID string, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := requireCaller(tenantID, creatorUserID); err != nil {
		return nil, err
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: journal description is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	journalID := uuid.NewString()

	lines, err := buildLines(journalID, req.Lines, creatorUserID, now)
	if err != nil {
		return nil, err
	}
	if err := s.validateLines(ctx, tenantID, lines); err != nil {
		return nil, err
	}

	source := req.Source
	if source == "" {
		source = domain.SourceManual
	}
	status := req.Status
	if status == "" {
		status = domain.Draft
	}

	journal := domain.Journal{
		JournalID:       journalID,
		TenantID:        tenantID,
		TransactionDate: req.TransactionDate,
		Description:     req.Description,
		Source:          source,
		SourceRef:       req.SourceRef,
		Status:          status,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// Creating directly as POSTED (system sources) runs period control up
	// front and stamps the posting fields before persistence.
	if status == domain.Posted {
		if err := s.periodSvc.EnsurePostable(ctx, tenantID, req.TransactionDate); err != nil {
			return nil, err
		}
		journal.PostedBy = creatorUserID
		postingDate := now
		journal.PostingDate = &postingDate
	}

	number, err := s.journalRepo.SaveJournal(ctx, journal, lines)
	if err != nil {
		logger.Error("Failed to save journal", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to save journal: %w", err)
	}
	journal.JournalNumber = number

	if status == domain.Posted {
		s.recalculateAccounts(ctx, domain.DistinctAccountIDs(lines))
	}
	s.invalidateViews(ctx, tenantID)

	logger.Info("Journal created",
		slog.String("journal_id", journal.JournalID),
		slog.String("journal_number", number),
		slog.String("status", string(status)),
		slog.String("tenant_id", tenantID))
	journal.Lines = nil // Lines are fetched separately by readers
	return &journal, nil
}

// findTenantJournal fetches a journal and verifies tenant ownership,
// reporting ErrNotFound for foreign journals to obscure their existence.
func (s *journalService) findTenantJournal(ctx context.Context, tenantID, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if journal.TenantID != tenantID {
		middleware.GetLoggerFromCtx(ctx).Warn("Journal belongs to different tenant",
			slog.String("journal_id", journalID),
			slog.String("requested_tenant", tenantID))
		return nil, apperrors.ErrNotFound
	}
	return journal, nil
}

// GetJournalByID retrieves a journal with its lines.
// Implements portssvc.JournalSvcFacade
func (s *journalService) GetJournalByID(ctx context.Context, tenantID string, journalID string) (*domain.Journal, error) {
	if tenantID == "" {
		return nil, apperrors.ErrNoActiveTenant
	}

	journal, err := s.findTenantJournal(ctx, tenantID, journalID)
	if err != nil {
		return nil, err
	}

	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to fetch journal lines", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to retrieve lines for journal %s: %w", journalID, err)
	}
	journal.Lines = lines
	return journal, nil
}

// ListJournals retrieves a paginated list of journals for a tenant.
// Implements portssvc.JournalSvcFacade
func (s *journalService) ListJournals(ctx context.Context, tenantID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if tenantID == "" {
		return nil, apperrors.ErrNoActiveTenant
	}

	journals, nextToken, err := s.journalRepo.ListJournalsByTenant(ctx, tenantID, params.Limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list journals", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to retrieve journals: %w", err)
	}

	var linesMap map[string][]domain.JournalLine
	if params.IncludeLines && len(journals) > 0 {
		journalIDs := make([]string, len(journals))
		for i, j := range journals {
			journalIDs[i] = j.JournalID
		}
		linesMap, err = s.journalRepo.FindLinesByJournalIDs(ctx, journalIDs)
		if err != nil {
			// Continue without lines rather than failing the whole request
			logger.Warn("Failed to fetch lines for journal page", slog.String("error", err.Error()))
		}
	}

	responses := make([]dto.JournalResponse, len(journals))
	for i, journal := range journals {
		if linesMap != nil {
			journal.Lines = linesMap[journal.JournalID]
		}
		responses[i] = dto.ToJournalResponse(&journal)
	}

	return &dto.ListJournalsResponse{Journals: responses, NextToken: nextToken}, nil
}

// UpdateJournal replaces a draft journal's header fields and entire line set.
// Implements portssvc.JournalSvcFacade
func (s *journalService) UpdateJournal(ctx context.Context, tenantID string, journalID string, req dto.UpdateJournalRequest, requestingUserID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := requireCaller(tenantID, requestingUserID); err != nil {
		return nil, err
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: journal description is required", apperrors.ErrValidation)
	}

	journal, err := s.findTenantJournal(ctx, tenantID, journalID)
	if err != nil {
		return nil, err
	}
	if !journal.IsMutable() {
		return nil, &JournalLockedError{Status: journal.Status}
	}

	oldLines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve existing lines for journal %s: %w", journalID, err)
	}

	now := time.Now().UTC()
	newLines, err := buildLines(journalID, req.Lines, requestingUserID, now)
	if err != nil {
		return nil, err
	}
	if err := s.validateLines(ctx, tenantID, newLines); err != nil {
		return nil, err
	}

	journal.TransactionDate = req.TransactionDate
	journal.Description = req.Description
	journal.LastUpdatedAt = now
	journal.LastUpdatedBy = requestingUserID

	if err := s.journalRepo.ReplaceJournal(ctx, *journal, newLines); err != nil {
		logger.Error("Failed to replace journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to update journal: %w", err)
	}

	// Recalculate the union of old and new accounts: an account that lost all
	// of its lines in this edit must still be recalculated down.
	s.recalculateAccounts(ctx, unionAccountIDs(oldLines, newLines))
	s.invalidateViews(ctx, tenantID)

	logger.Info("Journal updated", slog.String("journal_id", journalID), slog.String("tenant_id", tenantID))
	journal.Lines = nil
	return journal, nil
}

// PostJournal transitions a draft journal to POSTED.
// Implements portssvc.JournalSvcFacade
func (s *journalService) PostJournal(ctx context.Context, tenantID string, journalID string, postedByUserID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := requireCaller(tenantID, postedByUserID); err != nil {
		return nil, err
	}

	journal, err := s.findTenantJournal(ctx, tenantID, journalID)
	if err != nil {
		return nil, err
	}
	if journal.Status != domain.Draft {
		return nil, &JournalLockedError{Status: journal.Status}
	}

	if err := s.periodSvc.EnsurePostable(ctx, tenantID, journal.TransactionDate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.journalRepo.MarkJournalPosted(ctx, journalID, postedByUserID, now); err != nil {
		logger.Error("Failed to mark journal posted", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to post journal: %w", err)
	}

	journal.Status = domain.Posted
	journal.PostedBy = postedByUserID
	journal.PostingDate = &now
	journal.LastUpdatedAt = now
	journal.LastUpdatedBy = postedByUserID

	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		logger.Error("Failed to fetch lines for posted journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
	} else {
		s.recalculateAccounts(ctx, domain.DistinctAccountIDs(lines))
	}
	s.invalidateViews(ctx, tenantID)

	logger.Info("Journal posted", slog.String("journal_id", journalID), slog.String("journal_number", journal.JournalNumber), slog.String("tenant_id", tenantID))
	return journal, nil
}

// VoidJournal transitions a posted journal to VOIDED. Voided lines stop
// contributing to balances, so every touched account is recalculated.
// Implements portssvc.JournalSvcFacade
func (s *journalService) VoidJournal(ctx context.Context, tenantID string, journalID string, voidedByUserID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := requireCaller(tenantID, voidedByUserID); err != nil {
		return nil, err
	}

	journal, err := s.findTenantJournal(ctx, tenantID, journalID)
	if err != nil {
		return nil, err
	}
	switch journal.Status {
	case domain.Posted:
		// Only posted journals can be voided.
	case domain.Voided:
		return nil, &JournalLockedError{Status: domain.Voided}
	default:
		return nil, fmt.Errorf("%w: only posted journals can be voided, status is %s", apperrors.ErrConflict, journal.Status)
	}

	now := time.Now().UTC()
	if err := s.journalRepo.MarkJournalVoided(ctx, journalID, voidedByUserID, now); err != nil {
		logger.Error("Failed to mark journal voided", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to void journal: %w", err)
	}

	journal.Status = domain.Voided
	journal.VoidedBy = voidedByUserID
	journal.VoidedAt = &now
	journal.LastUpdatedAt = now
	journal.LastUpdatedBy = voidedByUserID

	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		logger.Error("Failed to fetch lines for voided journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
	} else {
		s.recalculateAccounts(ctx, domain.DistinctAccountIDs(lines))
	}
	s.invalidateViews(ctx, tenantID)

	logger.Info("Journal voided", slog.String("journal_id", journalID), slog.String("tenant_id", tenantID))
	return journal, nil
}

// DeleteJournal removes a draft journal and its lines. Posted and voided
// journals are undeletable history.
// Implements portssvc.JournalSvcFacade
func (s *journalService) DeleteJournal(ctx context.Context, tenantID string, journalID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := requireCaller(tenantID, requestingUserID); err != nil {
		return err
	}

	journal, err := s.findTenantJournal(ctx, tenantID, journalID)
	if err != nil {
		return err
	}
	if !journal.IsMutable() {
		return &JournalLockedError{Status: journal.Status}
	}

	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		return fmt.Errorf("failed to retrieve lines for journal %s: %w", journalID, err)
	}

	if err := s.journalRepo.DeleteJournal(ctx, journalID); err != nil {
		logger.Error("Failed to delete journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return fmt.Errorf("failed to delete journal: %w", err)
	}

	s.recalculateAccounts(ctx, domain.DistinctAccountIDs(lines))
	s.invalidateViews(ctx, tenantID)

	logger.Info("Journal deleted", slog.String("journal_id", journalID), slog.String("tenant_id", tenantID))
	return nil
}

// ListLinesByAccount retrieves posted lines for a specific account.
// Implements portssvc.JournalSvcFacade
func (s *journalService) ListLinesByAccount(ctx context.Context, tenantID string, accountID string, params dto.ListJournalLinesParams) (*dto.ListJournalLinesResponse, error) {
	if tenantID == "" {
		return nil, apperrors.ErrNoActiveTenant
	}

	// Verifies the account exists and belongs to the tenant.
	if _, err := s.accountSvc.GetAccountByID(ctx, tenantID, accountID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	lines, nextToken, err := s.journalRepo.ListPostedLinesByAccountID(ctx, tenantID, accountID, limit, params.NextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list lines by account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve lines: %w", err)
	}

	return &dto.ListJournalLinesResponse{
		Lines:     dto.ToJournalLineResponses(lines),
		NextToken: nextToken,
	}, nil
}

// unionAccountIDs returns the distinct account IDs across two line sets.
func unionAccountIDs(a, b []domain.JournalLine) []string {
	return domain.DistinctAccountIDs(append(append([]domain.JournalLine{}, a...), b...))
}
