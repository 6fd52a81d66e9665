package pagination_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/bizdesk/bizdesk_backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	entryDate := time.Date(2026, 2, 14, 9, 30, 0, 123456789, time.UTC)
	createdAt := time.Date(2026, 2, 14, 9, 30, 1, 0, time.UTC)

	token := pagination.EncodeToken(entryDate, createdAt)

	gotEntryDate, gotCreatedAt, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, entryDate.Equal(gotEntryDate))
	assert.True(t, createdAt.Equal(gotCreatedAt))
}

func TestDecodeToken_InvalidBase64(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!!")
	assert.Error(t, err)
}

func TestDecodeToken_MissingSeparator(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("2026-02-14T09:30:00Z"))
	_, _, err := pagination.DecodeToken(token)
	assert.Error(t, err)
}

func TestDecodeToken_BadTimestamp(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("yesterday|2026-02-14T09:30:00Z"))
	_, _, err := pagination.DecodeToken(token)
	assert.Error(t, err)
}

func TestEncodeDecodeDateBasedToken(t *testing.T) {
	date := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	token := pagination.EncodeDateBasedToken(date)

	got, err := pagination.DecodeDateBasedToken(token)
	require.NoError(t, err)
	assert.True(t, date.Equal(got))
}

func TestDecodeDateBasedToken_Invalid(t *testing.T) {
	_, err := pagination.DecodeDateBasedToken("%%%")
	assert.Error(t, err)
}
