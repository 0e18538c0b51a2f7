package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	c := Cursor{
		SortDate:  time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC),
		ID:        "0b9f7c1e-inv",
	}

	token := EncodeToken(c)
	assert.NotEmpty(t, token, "Token should not be empty")
	assert.NotContains(t, token, "=", "Token should be unpadded")

	decoded, err := DecodeToken(token)
	assert.NoError(t, err)
	assert.Equal(t, c, decoded)

	// Zero values survive the round trip
	zero, err := DecodeToken(EncodeToken(Cursor{}))
	assert.NoError(t, err)
	assert.True(t, zero.SortDate.IsZero())
	assert.Empty(t, zero.ID)
}

func TestDecodeTokenError(t *testing.T) {
	_, err := DecodeToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	missingParts := base64.RawURLEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z"))
	_, err = DecodeToken(missingParts)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badDate := base64.RawURLEncoding.EncodeToString([]byte("notadate|2023-05-15T14:30:45Z|id"))
	_, err = DecodeToken(badDate)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sort date parse")
}
