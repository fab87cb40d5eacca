package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/bizsuite/gl_engine/internal/apperrors"
	"github.com/bizsuite/gl_engine/internal/core/domain"
	portsrepo "github.com/bizsuite/gl_engine/internal/core/ports/repositories"
	"github.com/bizsuite/gl_engine/internal/models"
	"github.com/bizsuite/gl_engine/internal/utils/accounting"
	"github.com/bizsuite/gl_engine/internal/utils/mapping"
	"github.com/bizsuite/gl_engine/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal and line data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

const journalColumns = `journal_id, tenant_id, journal_number, transaction_date, posting_date,
       description, source, source_ref, status, posted_by, voided_by, voided_at,
       created_at, created_by, last_updated_at, last_updated_by`

// scanJournal scans one journals row in journalColumns order.
func scanJournal(row pgx.Row) (models.Journal, error) {
	var m models.Journal
	err := row.Scan(
		&m.JournalID,
		&m.TenantID,
		&m.JournalNumber,
		&m.TransactionDate,
		&m.PostingDate,
		&m.Description,
		&m.Source,
		&m.SourceRef,
		&m.Status,
		&m.PostedBy,
		&m.VoidedBy,
		&m.VoidedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

const lineInsertQuery = `
	INSERT INTO journal_lines (line_id, journal_id, account_id, debit, credit, description, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

// queueLineInserts adds one insert per line to the batch.
func queueLineInserts(batch *pgx.Batch, lines []domain.JournalLine) {
	for _, line := range lines {
		m := mapping.ToModelJournalLine(line)
		batch.Queue(lineInsertQuery,
			m.LineID,
			m.JournalID,
			m.AccountID,
			m.Debit,
			m.Credit,
			m.Description,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
}

// SaveJournal persists a journal header and its lines atomically, allocating
// the next journal number for the tenant/year inside the same transaction.
// The sequence row is upsert-incremented, so concurrent writers serialize on
// it and numbers are never duplicated. Numbers are not reclaimed when a
// draft is later deleted.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	year := journal.TransactionDate.Year()
	seqQuery := `
		INSERT INTO journal_sequences (tenant_id, year, next_seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (tenant_id, year)
		DO UPDATE SET next_seq = journal_sequences.next_seq + 1
		RETURNING next_seq;
	`
	var seq int64
	if err := tx.QueryRow(ctx, seqQuery, journal.TenantID, year).Scan(&seq); err != nil {
		return "", apperrors.NewAppError(500, "failed to allocate journal number for tenant "+journal.TenantID, err)
	}
	journal.JournalNumber = accounting.FormatJournalNumber(year, seq)

	modelJournal := mapping.ToModelJournal(journal)
	journalQuery := `
		INSERT INTO journals (
			journal_id, tenant_id, journal_number, transaction_date, posting_date,
			description, source, source_ref, status, posted_by, voided_by, voided_at,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, journalQuery,
		modelJournal.JournalID,
		modelJournal.TenantID,
		modelJournal.JournalNumber,
		modelJournal.TransactionDate,
		modelJournal.PostingDate,
		modelJournal.Description,
		modelJournal.Source,
		modelJournal.SourceRef,
		modelJournal.Status,
		modelJournal.PostedBy,
		modelJournal.VoidedBy,
		modelJournal.VoidedAt,
		modelJournal.CreatedAt,
		modelJournal.CreatedBy,
		modelJournal.LastUpdatedAt,
		modelJournal.LastUpdatedBy,
	)
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to insert journal "+modelJournal.JournalID, err)
	}

	batch := &pgx.Batch{}
	queueLineInserts(batch, lines)
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return "", apperrors.NewAppError(500, "failed to execute line batch for journal "+modelJournal.JournalID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", apperrors.NewAppError(500, "failed to commit transaction for journal "+modelJournal.JournalID, err)
	}

	return journal.JournalNumber, nil
}

// ReplaceJournal updates the journal header and replaces its entire line set
// in one transaction. Draft edits replace lines wholesale.
func (r *PgxJournalRepository) ReplaceJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelJournal := mapping.ToModelJournal(journal)
	updateQuery := `
		UPDATE journals
		SET transaction_date = $2,
		    description = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE journal_id = $1 AND status = 'DRAFT';
	`
	cmdTag, err := tx.Exec(ctx, updateQuery,
		modelJournal.JournalID,
		modelJournal.TransactionDate,
		modelJournal.Description,
		modelJournal.LastUpdatedAt,
		modelJournal.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal "+modelJournal.JournalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("draft journal " + modelJournal.JournalID + " not found for update")
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE journal_id = $1;`, modelJournal.JournalID); err != nil {
		return apperrors.NewAppError(500, "failed to delete existing lines for journal "+modelJournal.JournalID, err)
	}

	batch := &pgx.Batch{}
	queueLineInserts(batch, lines)
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute line batch for journal "+modelJournal.JournalID, err)
	}

	return r.Commit(ctx, tx)
}

// MarkJournalPosted flips a DRAFT journal to POSTED. The status guard in the
// WHERE clause makes concurrent double-posting lose the race cleanly.
func (r *PgxJournalRepository) MarkJournalPosted(ctx context.Context, journalID string, postedBy string, postingDate time.Time) error {
	query := `
		UPDATE journals
		SET status = 'POSTED',
		    posting_date = $2,
		    posted_by = $3,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE journal_id = $1 AND status = 'DRAFT';
	`
	cmdTag, err := r.Pool.Exec(ctx, query, journalID, postingDate, postedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark journal posted "+journalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "journal "+journalID+" is not in a postable state", apperrors.ErrConflict)
	}
	return nil
}

// MarkJournalVoided flips a POSTED journal to VOIDED.
func (r *PgxJournalRepository) MarkJournalVoided(ctx context.Context, journalID string, voidedBy string, voidedAt time.Time) error {
	query := `
		UPDATE journals
		SET status = 'VOIDED',
		    voided_at = $2,
		    voided_by = $3,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE journal_id = $1 AND status = 'POSTED';
	`
	cmdTag, err := r.Pool.Exec(ctx, query, journalID, voidedAt, voidedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark journal voided "+journalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "journal "+journalID+" is not in a voidable state", apperrors.ErrConflict)
	}
	return nil
}

// DeleteJournal removes a draft journal's lines and header in one
// transaction. The allocated journal number is not reclaimed.
func (r *PgxJournalRepository) DeleteJournal(ctx context.Context, journalID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE journal_id = $1;`, journalID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for journal "+journalID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM journals WHERE journal_id = $1 AND status = 'DRAFT';`, journalID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journal "+journalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("draft journal " + journalID + " not found for deletion")
	}

	return r.Commit(ctx, tx)
}

// FindJournalByID retrieves a journal by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1;`

	modelJournal, err := scanJournal(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal by ID "+journalID, err)
	}

	domainJournal := mapping.ToDomainJournal(modelJournal)
	return &domainJournal, nil
}

// FindJournalBySourceRef retrieves the journal created for a source document.
// Used by the posting adapter for idempotency.
func (r *PgxJournalRepository) FindJournalBySourceRef(ctx context.Context, tenantID string, source domain.JournalSource, sourceRef string) (*domain.Journal, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journals
		WHERE tenant_id = $1 AND source = $2 AND source_ref = $3
		ORDER BY created_at
		LIMIT 1;
	`
	modelJournal, err := scanJournal(r.Pool.QueryRow(ctx, query, tenantID, string(source), sourceRef))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal for source ref "+sourceRef, err)
	}

	domainJournal := mapping.ToDomainJournal(modelJournal)
	return &domainJournal, nil
}

// ListJournalsByTenant retrieves a paginated list of journals for a tenant
// using token-based pagination. Ordering is transaction_date DESC with
// created_at DESC as a stable tie-breaker.
func (r *PgxJournalRepository) ListJournalsByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + journalColumns + ` FROM journals WHERE tenant_id = $1`
	orderByClause := `ORDER BY transaction_date DESC, created_at DESC`

	args := []interface{}{tenantID}
	query := baseQuery

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (transaction_date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journals for tenant "+tenantID, err)
	}
	defer rows.Close()

	modelJournals := make([]models.Journal, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanJournal(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal row for tenant "+tenantID, scanErr)
		}
		modelJournals = append(modelJournals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal rows for tenant "+tenantID, err)
	}

	var nextTokenVal *string
	results := modelJournals
	if len(modelJournals) > limit {
		// The token points to the last item included in this page; the next
		// query starts after it.
		lastJournal := modelJournals[limit-1]
		newToken := pagination.EncodeToken(lastJournal.TransactionDate, lastJournal.CreatedAt)
		nextTokenVal = &newToken
		results = modelJournals[:limit]
	}

	domainJournals := make([]domain.Journal, len(results))
	for i, m := range results {
		domainJournals[i] = mapping.ToDomainJournal(m)
	}
	return domainJournals, nextTokenVal, nil
}

const lineColumns = `line_id, journal_id, account_id, debit, credit, description, created_at, created_by, last_updated_at, last_updated_by`

// scanLine scans one journal_lines row in lineColumns order.
func scanLine(row pgx.Row) (models.JournalLine, error) {
	var m models.JournalLine
	err := row.Scan(
		&m.LineID,
		&m.JournalID,
		&m.AccountID,
		&m.Debit,
		&m.Credit,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindLinesByJournalID retrieves all lines of a single journal.
func (r *PgxJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE journal_id = $1 ORDER BY created_at, line_id;`

	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal "+journalID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		m, scanErr := scanLine(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for journal "+journalID, scanErr)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for journal "+journalID, err)
	}

	return mapping.ToDomainJournalLineSlice(lines), nil
}

// FindLinesByJournalIDs retrieves lines for multiple journals, grouped by
// journal ID. Journals with no lines get an empty slice entry.
func (r *PgxJournalRepository) FindLinesByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.JournalLine, error) {
	if len(journalIDs) == 0 {
		return map[string][]domain.JournalLine{}, nil
	}

	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE journal_id = ANY($1) ORDER BY journal_id, created_at, line_id;`

	rows, err := r.Pool.Query(ctx, query, journalIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal IDs", err)
	}
	defer rows.Close()

	linesMap := make(map[string][]domain.JournalLine)
	for rows.Next() {
		m, scanErr := scanLine(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row during batch fetch", scanErr)
		}
		domainLine := mapping.ToDomainJournalLine(m)
		linesMap[domainLine.JournalID] = append(linesMap[domainLine.JournalID], domainLine)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows during batch fetch", err)
	}

	for _, jid := range journalIDs {
		if _, exists := linesMap[jid]; !exists {
			linesMap[jid] = []domain.JournalLine{}
		}
	}
	return linesMap, nil
}

// ListPostedLinesByAccountID retrieves a paginated list of posted lines for
// an account using token-based pagination.
func (r *PgxJournalRepository) ListPostedLinesByAccountID(ctx context.Context, tenantID, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT l.line_id, l.journal_id, l.account_id, l.debit, l.credit, l.description,
		       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by, j.transaction_date
		FROM journal_lines l
		JOIN journals j ON l.journal_id = j.journal_id
		WHERE l.account_id = $1 AND j.tenant_id = $2 AND j.status = 'POSTED'
	`
	orderByClause := `ORDER BY j.transaction_date DESC, l.created_at DESC`

	args := []interface{}{accountID, tenantID}
	query := baseQuery

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (j.transaction_date, l.created_at) < ($3, $4)`
		args = append(args, lastDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query lines for account "+accountID, err)
	}
	defer rows.Close()

	type lineWithDate struct {
		line models.JournalLine
		date time.Time
	}
	fetched := make([]lineWithDate, 0, fetchLimit)
	for rows.Next() {
		var m models.JournalLine
		var txnDate time.Time
		scanErr := rows.Scan(
			&m.LineID,
			&m.JournalID,
			&m.AccountID,
			&m.Debit,
			&m.Credit,
			&m.Description,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&txnDate,
		)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan line row for account "+accountID, scanErr)
		}
		fetched = append(fetched, lineWithDate{line: m, date: txnDate})
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating line rows for account "+accountID, err)
	}

	var nextTokenVal *string
	if len(fetched) > limit {
		last := fetched[limit-1]
		token := pagination.EncodeToken(last.date, last.line.CreatedAt)
		nextTokenVal = &token
		fetched = fetched[:limit]
	}

	results := make([]models.JournalLine, len(fetched))
	for i, f := range fetched {
		results[i] = f.line
	}
	return mapping.ToDomainJournalLineSlice(results), nextTokenVal, nil
}
