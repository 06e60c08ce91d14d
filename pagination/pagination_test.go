package pagination_test

import (
	"testing"

	"github.com/jigsawstack/jigsawstack-go/pagination"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
		wantOffset   int
	}{
		{name: "defaults", page: 0, pageSize: 0, wantPage: 1, wantPageSize: 20, wantOffset: 0},
		{name: "negative page", page: -3, pageSize: 10, wantPage: 1, wantPageSize: 10, wantOffset: 0},
		{name: "third page", page: 3, pageSize: 20, wantPage: 3, wantPageSize: 20, wantOffset: 40},
		{name: "clamps page size", page: 2, pageSize: 500, wantPage: 2, wantPageSize: 100, wantOffset: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			page, pageSize, offset := pagination.Normalize(tt.page, tt.pageSize)

			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPageSize, pageSize)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestHasMore(t *testing.T) {
	t.Parallel()

	assert.True(t, pagination.HasMore(20, 20))
	assert.False(t, pagination.HasMore(19, 20))
	assert.False(t, pagination.HasMore(0, 20))
	assert.False(t, pagination.HasMore(5, 0))
}
