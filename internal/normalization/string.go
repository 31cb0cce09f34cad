package normalization

import (
	"strings"
)

// NormalizeName folds a display name for identity comparison: trimmed,
// lowercased, inner whitespace runs collapsed to single spaces.
func NormalizeName(input string) string {
	folded := strings.ToLower(strings.TrimSpace(input))
	return strings.Join(strings.Fields(folded), " ")
}

func NormalizeNamePtr(input *string) *string {
	if input == nil {
		return nil
	}
	folded := NormalizeName(*input)
	return &folded
}
