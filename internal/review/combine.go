package review

import (
	"math"

	"github.com/codereview/backend/internal/models"
)

const (
	staticWeight   = 0.7
	externalWeight = 0.3

	maxRecommendations = 5

	namingAdviceThreshold     = 8
	modularityAdviceThreshold = 15
)

// CombineScores blends the static and external score for each rubric
// category and scales the blend to the category's weight. External scores
// are looked up by the category's lowercase name; a category present in
// neither source combines to 0.
func CombineScores(static models.ScoreSet, external map[string]int) map[models.Category]int {
	combined := make(map[models.Category]int, len(models.CategoryWeights))
	for cat, weight := range models.CategoryWeights {
		blend := float64(static[cat])*staticWeight + float64(external[string(cat)])*externalWeight
		combined[cat] = int(math.Round(blend * float64(weight) / 100))
	}
	return combined
}

// OverallScore reduces the combined breakdown to a single 0-100 integer.
// Because the weights sum to 100 this is just the sum of the combined
// values, but it is expressed against the weight total so a reconfigured
// rubric would still normalize correctly.
func OverallScore(combined map[models.Category]int) int {
	sum := 0
	for _, v := range combined {
		sum += v
	}
	return int(math.Round(float64(sum) / float64(models.TotalWeight()) * 100))
}

// CombineRecommendations merges rule-triggered advice with the extracted
// recommendations, deduplicates preserving first-seen order, and caps the
// result at five entries. Static advice comes first so it survives the cap.
func CombineRecommendations(static models.ScoreSet, extracted []string) []string {
	var merged []string
	if static[models.CategoryNaming] < namingAdviceThreshold {
		merged = append(merged, "Use snake_case for function and variable names.")
	}
	if static[models.CategoryModularity] < modularityAdviceThreshold {
		merged = append(merged, "Consider breaking down long functions into smaller, focused functions.")
	}
	merged = append(merged, extracted...)

	seen := make(map[string]bool, len(merged))
	out := make([]string, 0, maxRecommendations)
	for _, rec := range merged {
		if seen[rec] {
			continue
		}
		seen[rec] = true
		out = append(out, rec)
		if len(out) == maxRecommendations {
			break
		}
	}
	return out
}
