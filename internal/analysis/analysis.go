// Package analysis computes the static half of the review rubric: six
// independent category scores derived from the code's structure (Python) or
// from textual heuristics (JavaScript).
package analysis

import (
	"github.com/codereview/backend/internal/models"
)

// Analyze runs the static rubric for the given language. The language must
// already be normalized (see models.NormalizeLanguage).
func Analyze(code string, language models.Language) models.ScoreSet {
	switch language {
	case models.LanguagePython:
		return AnalyzePython(code)
	case models.LanguageJavaScript:
		return AnalyzeJavaScript(code)
	}
	return zeroScores()
}

// zeroScores is the fail-closed result: every category at 0.
func zeroScores() models.ScoreSet {
	scores := make(models.ScoreSet, len(models.CategoryOrder))
	for _, cat := range models.CategoryOrder {
		scores[cat] = 0
	}
	return scores
}

func floorZero(score int) int {
	if score < 0 {
		return 0
	}
	return score
}
