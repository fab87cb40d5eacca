package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJournalIsMutable(t *testing.T) {
	assert.True(t, (&Journal{Status: Draft}).IsMutable())
	assert.False(t, (&Journal{Status: Posted}).IsMutable())
	assert.False(t, (&Journal{Status: Voided}).IsMutable())
}

func TestDistinctAccountIDs(t *testing.T) {
	lines := []JournalLine{
		{AccountID: "a"},
		{AccountID: "b"},
		{AccountID: "a"},
		{AccountID: "c"},
		{AccountID: "b"},
	}
	assert.Equal(t, []string{"a", "b", "c"}, DistinctAccountIDs(lines))
	assert.Empty(t, DistinctAccountIDs(nil))
}

func TestPeriodContains_BoundariesInclusive(t *testing.T) {
	period := AccountingPeriod{
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, period.Contains(period.StartDate))
	assert.True(t, period.Contains(period.EndDate))
	assert.True(t, period.Contains(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)))
	assert.False(t, period.Contains(period.StartDate.Add(-time.Second)))
	assert.False(t, period.Contains(period.EndDate.Add(time.Second)))
}
