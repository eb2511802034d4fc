package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(1, 10)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, 10, limit)

	offset, limit = CalculateOffsetLimit(3, 20)
	assert.Equal(t, uint64(40), offset)
	assert.Equal(t, 20, limit)

	// Out-of-range values fall back to defaults
	offset, limit = CalculateOffsetLimit(0, 0)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, DefaultPageSize, limit)

	_, limit = CalculateOffsetLimit(1, MaxPageSize+1)
	assert.Equal(t, DefaultPageSize, limit)
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(45, 2, 10)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 5, info.TotalPages)
	assert.Equal(t, int64(45), info.TotalItems)

	// Page clamped to the last page
	info = NewPaginationInfo(5, 9, 10)
	assert.Equal(t, 1, info.CurrentPage)

	// Empty result set still reports one page for page 1
	info = NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, info.TotalPages)
}

func TestGetContentNullString(t *testing.T) {
	ns := GetContentNullString("")
	assert.False(t, ns.Valid)

	ns = GetContentNullString("hello")
	assert.True(t, ns.Valid)
	assert.Equal(t, "hello", ns.String)
}

func TestGetNullString(t *testing.T) {
	assert.False(t, GetNullString(nil).Valid)

	v := "photo.jpg"
	ns := GetNullString(&v)
	assert.True(t, ns.Valid)
	assert.Equal(t, "photo.jpg", ns.String)
}

func TestNullableID(t *testing.T) {
	assert.Nil(t, NullableID(0))
	assert.Equal(t, int64(7), NullableID(7))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, ParseDuration("2h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("bogus", time.Minute))
}
