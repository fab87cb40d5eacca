package services

import "context"

// View names signaled to the presentation layer after ledger mutations.
const (
	ViewJournals        = "journals"
	ViewGLReports       = "gl-reports"
	ViewChartOfAccounts = "chart-of-accounts"
)

// CacheInvalidator signals that cached tenant views are stale after a
// successful mutation. This is a notification, not a data contract; the
// engine's responsibility ends at "this data changed".
type CacheInvalidator interface {
	InvalidateViews(ctx context.Context, tenantID string, views ...string) error
}
