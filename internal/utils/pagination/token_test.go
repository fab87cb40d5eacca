package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken_RoundTrip(t *testing.T) {
	journalDate := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 2, 14, 9, 30, 15, 123456789, time.UTC)

	token := EncodeToken(journalDate, createdAt)
	require.NotEmpty(t, token)

	gotDate, gotCreatedAt, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, journalDate.Equal(gotDate))
	assert.True(t, createdAt.Equal(gotCreatedAt))
}

func TestDecodeToken_InvalidBase64(t *testing.T) {
	_, _, err := DecodeToken("not-base64!!!")
	assert.Error(t, err)
}

func TestDecodeToken_MissingSeparator(t *testing.T) {
	_, _, err := DecodeToken("aGVsbG8=") // "hello", no separator
	assert.Error(t, err)
}

func TestDecodeToken_BadTimestamps(t *testing.T) {
	_, _, err := DecodeToken("bm90YXRpbWV8YWxzb25vdA==") // "notatime|alsonot"
	assert.Error(t, err)
}
