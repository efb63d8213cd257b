package services

import (
	"strings"

	fuzz "github.com/paul-mannino/go-fuzzywuzzy"
)

// SimilarityScore rates how close two texts are on a 0 to 100 scale.
// Inputs are case-folded and compared with a token sort ratio, so word
// order does not matter. Two empty strings count as identical.
func SimilarityScore(a, b string) int {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if len(a) == 0 && len(b) == 0 {
		return 100
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	return fuzz.TokenSortRatio(a, b)
}
