package pagination

import "strconv"

const (
	DefaultScrollSize = 20
	MaxScrollSize     = 50

	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageResponse is the offset-based pagination envelope used by admin list APIs.
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// NewPageResponse builds a page envelope. totalPages는 올림 계산.
func NewPageResponse[T any](content []T, page, size int, totalElements int64) PageResponse[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = int((totalElements + int64(size) - 1) / int64(size))
	}
	return PageResponse[T]{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: totalElements,
		TotalPages:    totalPages,
	}
}

// ScrollResponse is the cursor-based infinite scroll envelope.
// NextCursor is the last item's id in this slice, nil when the slice is empty.
type ScrollResponse[T any] struct {
	Content       []T    `json:"content"`
	NextCursor    *int64 `json:"nextCursor"`
	HasNext       bool   `json:"hasNext"`
	Size          int    `json:"size"`
	RequestedSize int    `json:"requestedSize"`
}

// NewScrollResponse builds a scroll envelope from a size+1 over-fetch result.
func NewScrollResponse[T any](content []T, requestedSize int, hasNext bool, nextCursor *int64) ScrollResponse[T] {
	if content == nil {
		content = []T{}
	}
	return ScrollResponse[T]{
		Content:       content,
		NextCursor:    nextCursor,
		HasNext:       hasNext,
		Size:          len(content),
		RequestedSize: requestedSize,
	}
}

// NormalizeScrollSize clamps the requested size. 범위를 벗어나면 기본값으로 되돌린다.
func NormalizeScrollSize(size int) int {
	if size < 1 || size > MaxScrollSize {
		return DefaultScrollSize
	}
	return size
}

// ParseScrollSize parses a query string size parameter.
func ParseScrollSize(raw string) int {
	if raw == "" {
		return DefaultScrollSize
	}
	size, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultScrollSize
	}
	return NormalizeScrollSize(size)
}

// ParseCursor parses a lastFeedId-style cursor parameter. 없으면 nil (첫 페이지).
func ParseCursor(raw string) *int64 {
	if raw == "" {
		return nil
	}
	cursor, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || cursor <= 0 {
		return nil
	}
	return &cursor
}

// NormalizePage clamps an offset-based page/size pair.
func NormalizePage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size < 1 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return page, size
}
