package services

import (
	"context"

	"github.com/bizsuite/gl_engine/internal/dto"
)

// PostingSvcFacade is the entry point invoicing/payables use to record a
// source document in the ledger. External subsystems go through this
// adapter, never the journal lifecycle directly.
type PostingSvcFacade interface {
	// PostDocumentToGL creates and posts a balanced journal for a source
	// document. Idempotent per (tenant, source, sourceRef): a second call
	// returns AlreadyPosted without creating a duplicate.
	PostDocumentToGL(ctx context.Context, tenantID string, req dto.PostDocumentRequest, actorUserID string) (*dto.PostDocumentResult, error)
}
