package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeScrollSize(t *testing.T) {
	assert.Equal(t, DefaultScrollSize, NormalizeScrollSize(0))
	assert.Equal(t, DefaultScrollSize, NormalizeScrollSize(-5))
	assert.Equal(t, DefaultScrollSize, NormalizeScrollSize(51))
	assert.Equal(t, 1, NormalizeScrollSize(1))
	assert.Equal(t, 50, NormalizeScrollSize(50))
}

func TestParseCursor(t *testing.T) {
	assert.Nil(t, ParseCursor(""))
	assert.Nil(t, ParseCursor("abc"))
	assert.Nil(t, ParseCursor("0"))
	assert.Nil(t, ParseCursor("-3"))

	cursor := ParseCursor("42")
	if assert.NotNil(t, cursor) {
		assert.Equal(t, int64(42), *cursor)
	}
}

func TestNewPageResponse_TotalPagesRoundsUp(t *testing.T) {
	page := NewPageResponse([]int{1, 2, 3}, 0, 10, 21)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, int64(21), page.TotalElements)

	empty := NewPageResponse[int](nil, 0, 10, 0)
	assert.NotNil(t, empty.Content)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestNewScrollResponse(t *testing.T) {
	last := int64(7)
	resp := NewScrollResponse([]int{5, 6, 7}, 20, false, &last)
	assert.Equal(t, 3, resp.Size)
	assert.Equal(t, 20, resp.RequestedSize)
	assert.False(t, resp.HasNext)

	empty := NewScrollResponse[int](nil, 20, false, nil)
	assert.NotNil(t, empty.Content)
	assert.Nil(t, empty.NextCursor)
}
