package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationHasMore(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		offset  int
		pageLen int
		hasMore bool
	}{
		{name: "first of several pages", total: 45, offset: 0, pageLen: 20, hasMore: true},
		{name: "middle page", total: 45, offset: 20, pageLen: 20, hasMore: true},
		{name: "final partial page", total: 45, offset: 40, pageLen: 5, hasMore: false},
		{name: "last exact page", total: 40, offset: 20, pageLen: 20, hasMore: false},
		{name: "offset past total", total: 10, offset: 50, pageLen: 0, hasMore: false},
		{name: "empty result", total: 0, offset: 0, pageLen: 0, hasMore: false},
		{name: "single row", total: 1, offset: 0, pageLen: 1, hasMore: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.total, 20, tc.offset, tc.pageLen)
			assert.Equal(t, tc.hasMore, p.HasMore)
			assert.Equal(t, tc.total, p.TotalCount)
			assert.Equal(t, tc.offset, p.Offset)
		})
	}
}

func TestNormalizePage(t *testing.T) {
	limit, offset := NormalizePage(0, 0)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)

	limit, offset = NormalizePage(500, -3)
	assert.Equal(t, 100, limit)
	assert.Equal(t, 0, offset)

	limit, offset = NormalizePage(50, 40)
	assert.Equal(t, 50, limit)
	assert.Equal(t, 40, offset)
}
