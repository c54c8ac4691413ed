//go:build unit

package pgconv_test

import (
	"math"
	"testing"
	"time"

	"booking-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestOptionalConversions(t *testing.T) {
	assert.False(t, pgconv.OptionalStringToPgtype("").Valid)
	assert.Equal(t, "a@b.c", pgconv.StringFromPgtype(pgconv.OptionalStringToPgtype("a@b.c")))

	assert.False(t, pgconv.UUIDToOptionalPgtype(uuid.Nil).Valid)
	assert.Nil(t, pgconv.UUIDPtrFromPgtype(pgconv.UUIDPtrToPgtype(nil)))

	id := uuid.New()
	got := pgconv.UUIDPtrFromPgtype(pgconv.UUIDPtrToPgtype(&id))
	if assert.NotNil(t, got) {
		assert.Equal(t, id, *got)
	}

	assert.False(t, pgconv.TimePtrToPgtype(nil).Valid)
	now := time.Now()
	assert.True(t, pgconv.TimePtrToPgtype(&now).Valid)
}

func TestIntToInt32(t *testing.T) {
	assert.Equal(t, int32(90), pgconv.IntToInt32(90))
	assert.Equal(t, int32(math.MaxInt32), pgconv.IntToInt32(math.MaxInt32+1))
	assert.Equal(t, int32(math.MinInt32), pgconv.IntToInt32(math.MinInt32-1))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, pgconv.IsNoRows(pgx.ErrNoRows))
	assert.False(t, pgconv.IsNoRows(nil))
}
