package feed

import "strings"

const (
	maxTagLength = 50
	maxTagCount  = 30
)

// NormalizeTags 입력 태그 목록을 저장 가능한 형태로 정규화한다.
// 공백 제거, 선행 # 제거, 허용 문자(한글/영문/숫자/밑줄) 외 삭제,
// 빈 값/50자 초과 제거, 첫 등장 기준 중복 제거, 최대 30개.
func NormalizeTags(raw []string) []string {
	normalized := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		tag = strings.TrimPrefix(tag, "#")
		tag = keepAllowedRunes(tag)
		if tag == "" || len([]rune(tag)) > maxTagLength {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
		if len(normalized) == maxTagCount {
			break
		}
	}

	return normalized
}

func keepAllowedRunes(tag string) string {
	var b strings.Builder
	b.Grow(len(tag))
	for _, r := range tag {
		if isAllowedTagRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isAllowedTagRune(r rune) bool {
	switch {
	case r >= '가' && r <= '힣':
		return true
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_':
		return true
	}
	return false
}
