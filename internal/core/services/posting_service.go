package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bizsuite/gl_engine/internal/apperrors"
	"github.com/bizsuite/gl_engine/internal/core/domain"
	portsrepo "github.com/bizsuite/gl_engine/internal/core/ports/repositories"
	portssvc "github.com/bizsuite/gl_engine/internal/core/ports/services"
	"github.com/bizsuite/gl_engine/internal/dto"
	"github.com/bizsuite/gl_engine/internal/middleware"
)

// MissingGLAccountError reports a posting line that references a GL account
// code not present (or not active) in the tenant's chart of accounts.
type MissingGLAccountError struct {
	Code string
}

func (e *MissingGLAccountError) Error() string {
	return fmt.Sprintf("no active GL account with code %s", e.Code)
}

// postingService is the adapter other subsystems use to record source
// documents in the ledger. It resolves account codes to accounts and hands
// off to the journal lifecycle, creating the journal directly as POSTED.
type postingService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	journalSvc  portssvc.JournalSvcFacade
	accountSvc  portssvc.AccountSvcFacade
}

// NewPostingService creates a new PostingSvcFacade.
func NewPostingService(
	journalRepo portsrepo.JournalRepositoryFacade,
	journalSvc portssvc.JournalSvcFacade,
	accountSvc portssvc.AccountSvcFacade,
) portssvc.PostingSvcFacade {
	return &postingService{
		journalRepo: journalRepo,
		journalSvc:  journalSvc,
		accountSvc:  accountSvc,
	}
}

// Ensure postingService implements the portssvc.PostingSvcFacade interface
var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// PostDocumentToGL creates and posts a balanced journal for a source
// document. Idempotent per (tenant, source, sourceRef).
// Implements portssvc.PostingSvcFacade
func (s *postingService) PostDocumentToGL(ctx context.Context, tenantID string, req dto.PostDocumentRequest, actorUserID string) (*dto.PostDocumentResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := requireCaller(tenantID, actorUserID); err != nil {
		return nil, err
	}
	if req.SourceRef == "" {
		return nil, fmt.Errorf("%w: sourceRef is required", apperrors.ErrValidation)
	}

	existing, err := s.journalRepo.FindJournalBySourceRef(ctx, tenantID, req.Source, req.SourceRef)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing journal: %w", err)
	}
	if existing != nil {
		logger.Info("Source document already posted",
			slog.String("source", string(req.Source)),
			slog.String("source_ref", req.SourceRef),
			slog.String("journal_id", existing.JournalID))
		return &dto.PostDocumentResult{
			AlreadyPosted: true,
			JournalID:     existing.JournalID,
			JournalNumber: existing.JournalNumber,
		}, nil
	}

	lines, err := s.resolveLines(ctx, tenantID, req.Lines)
	if err != nil {
		return nil, err
	}

	journal, err := s.journalSvc.CreateJournal(ctx, tenantID, dto.CreateJournalRequest{
		TransactionDate: req.TransactionDate,
		Description:     req.Description,
		Source:          req.Source,
		SourceRef:       req.SourceRef,
		Status:          domain.Posted,
		Lines:           lines,
	}, actorUserID)
	if err != nil {
		return nil, err
	}

	logger.Info("Source document posted to GL",
		slog.String("source", string(req.Source)),
		slog.String("source_ref", req.SourceRef),
		slog.String("journal_number", journal.JournalNumber))
	return &dto.PostDocumentResult{
		Posted:        true,
		JournalID:     journal.JournalID,
		JournalNumber: journal.JournalNumber,
	}, nil
}

// resolveLines translates account codes into journal line requests addressed
// by account ID.
func (s *postingService) resolveLines(ctx context.Context, tenantID string, reqLines []dto.PostDocumentLineRequest) ([]dto.CreateJournalLineRequest, error) {
	lines := make([]dto.CreateJournalLineRequest, len(reqLines))
	resolved := make(map[string]string, len(reqLines)) // code -> accountID
	for i, lr := range reqLines {
		accountID, seen := resolved[lr.AccountCode]
		if !seen {
			account, err := s.accountSvc.GetAccountByCode(ctx, tenantID, lr.AccountCode)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, &MissingGLAccountError{Code: lr.AccountCode}
				}
				return nil, fmt.Errorf("failed to resolve account code %s: %w", lr.AccountCode, err)
			}
			if !account.IsActive {
				return nil, &MissingGLAccountError{Code: lr.AccountCode}
			}
			accountID = account.AccountID
			resolved[lr.AccountCode] = accountID
		}
		lines[i] = dto.CreateJournalLineRequest{
			AccountID:   accountID,
			Debit:       lr.Debit,
			Credit:      lr.Credit,
			Description: lr.Description,
		}
	}
	return lines, nil
}
