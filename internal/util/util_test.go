package util

import (
	"database/sql"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewULID(t *testing.T) {
	a := NewULID()
	b := NewULID()

	_, err := ulid.ParseStrict(a)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", TruncateRunes("abc", 5))
	assert.Equal(t, "ab", TruncateRunes("abc", 2))
	assert.Equal(t, "", TruncateRunes("abc", -1))
	assert.Equal(t, "héé", TruncateRunes("héééé", 3))
	assert.Equal(t, 5, RuneLen("héééé"))
}

func TestNullStringHelpers(t *testing.T) {
	assert.False(t, StringToNullString("").Valid)
	assert.Equal(t, sql.NullString{String: "hard", Valid: true}, StringToNullString("hard"))
	assert.Equal(t, "", NullStringToString(sql.NullString{}))
	assert.Equal(t, "easy", NullStringToString(sql.NullString{String: "easy", Valid: true}))
}
