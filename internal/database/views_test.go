package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name                        string
		page, limit                 int
		wantPage, wantLimit, wantOffset int
	}{
		{"defaults", 0, 0, 1, 10, 0},
		{"negative values", -3, -1, 1, 10, 0},
		{"first page explicit", 1, 10, 1, 10, 0},
		{"second page", 2, 10, 2, 10, 10},
		{"custom limit", 3, 25, 3, 25, 50},
		{"limit capped", 1, 500, 1, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit, offset := NormalizePage(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestAverageLikes(t *testing.T) {
	// 3 videos with 2/0/4 likes
	assert.Equal(t, 2.0, AverageLikes(6, 3))
	// no videos means no average, not a division by zero
	assert.Equal(t, 0.0, AverageLikes(0, 0))
	assert.Equal(t, 0.5, AverageLikes(1, 2))
}

func TestTweetSortClause(t *testing.T) {
	assert.Equal(t, "t.created_at DESC", tweetSortClause("createdAt", "desc"))
	assert.Equal(t, "t.created_at ASC", tweetSortClause("createdAt", "asc"))
	assert.Equal(t, "t.updated_at DESC", tweetSortClause("updatedAt", ""))

	// unknown sort keys never reach the query verbatim
	assert.Equal(t, "t.created_at DESC", tweetSortClause("; DROP TABLE tweets", "desc"))
	assert.Equal(t, "t.created_at DESC", tweetSortClause("", ""))
}
