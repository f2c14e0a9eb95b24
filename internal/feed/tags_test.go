package feed

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTags(t *testing.T) {
	testCases := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "공백과 선행 해시 제거",
			input:    []string{"  #여행 ", "#맛집"},
			expected: []string{"여행", "맛집"},
		},
		{
			name:     "허용 문자 외 삭제",
			input:    []string{"카페☕투어", "good-day!"},
			expected: []string{"카페투어", "goodday"},
		},
		{
			name:     "빈 값 제거",
			input:    []string{"", "   ", "#", "!!!"},
			expected: []string{},
		},
		{
			name:     "첫 등장 기준 중복 제거",
			input:    []string{"여행", "#여행", "여행 ", "맛집"},
			expected: []string{"여행", "맛집"},
		},
		{
			name:     "50자 초과 제거",
			input:    []string{strings.Repeat("가", 51), strings.Repeat("가", 50)},
			expected: []string{strings.Repeat("가", 50)},
		},
		{
			name:     "밑줄과 숫자 유지",
			input:    []string{"moa_2026"},
			expected: []string{"moa_2026"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeTags(tc.input))
		})
	}
}

func TestNormalizeTags_CapsAtThirty(t *testing.T) {
	input := make([]string, 0, 40)
	for i := 0; i < 40; i++ {
		input = append(input, fmt.Sprintf("tag%d", i))
	}

	normalized := NormalizeTags(input)
	assert.Len(t, normalized, maxTagCount)
	assert.Equal(t, "tag0", normalized[0])
}
