package review

import (
	"reflect"
	"testing"

	"github.com/codereview/backend/internal/models"
)

func TestCombineScores(t *testing.T) {
	static := models.ScoreSet{
		models.CategoryNaming:        10,
		models.CategoryModularity:    20,
		models.CategoryComments:      20,
		models.CategoryFormatting:    13,
		models.CategoryReusability:   15,
		models.CategoryBestPractices: 20,
	}
	external := map[string]int{
		"naming":         90,
		"modularity":     90,
		"comments":       90,
		"formatting":     90,
		"reusability":    90,
		"best_practices": 90,
	}

	combined := CombineScores(static, external)

	want := map[models.Category]int{
		models.CategoryNaming:        3,
		models.CategoryModularity:    8,
		models.CategoryComments:      8,
		models.CategoryFormatting:    5,
		models.CategoryReusability:   6,
		models.CategoryBestPractices: 8,
	}
	if !reflect.DeepEqual(combined, want) {
		t.Errorf("combined = %v, want %v", combined, want)
	}

	if got := OverallScore(combined); got != 38 {
		t.Errorf("overall = %d, want 38", got)
	}
}

func TestCombineScores_MissingExternal(t *testing.T) {
	static := models.ScoreSet{
		models.CategoryNaming: 10,
	}
	combined := CombineScores(static, map[string]int{})

	// naming: (10*0.7 + 0*0.3) * 10/100 = 0.7 → 1
	if combined[models.CategoryNaming] != 1 {
		t.Errorf("naming = %d, want 1", combined[models.CategoryNaming])
	}
	// categories absent from both inputs combine to 0
	if combined[models.CategoryModularity] != 0 {
		t.Errorf("modularity = %d, want 0", combined[models.CategoryModularity])
	}
	if len(combined) != len(models.CategoryWeights) {
		t.Errorf("expected every rubric category present, got %v", combined)
	}
}

func TestCombineScores_RoundsHalfAwayFromZero(t *testing.T) {
	// naming blend: 5*0.7 + 5*0.3 = 5.0, scaled by 10/100 = 0.5 → 1
	static := models.ScoreSet{models.CategoryNaming: 5}
	external := map[string]int{"naming": 5}

	combined := CombineScores(static, external)
	if combined[models.CategoryNaming] != 1 {
		t.Errorf("naming = %d, want 1 (0.5 rounds up)", combined[models.CategoryNaming])
	}
}

func TestCombineRecommendations_StaticTriggers(t *testing.T) {
	static := models.ScoreSet{
		models.CategoryNaming:     6,
		models.CategoryModularity: 12,
	}
	recs := CombineRecommendations(static, nil)

	want := []string{
		"Use snake_case for function and variable names.",
		"Consider breaking down long functions into smaller, focused functions.",
	}
	if !reflect.DeepEqual(recs, want) {
		t.Errorf("recs = %v, want %v", recs, want)
	}
}

func TestCombineRecommendations_NoTriggersAtThreshold(t *testing.T) {
	static := models.ScoreSet{
		models.CategoryNaming:     8,
		models.CategoryModularity: 15,
	}
	recs := CombineRecommendations(static, []string{"Add tests"})

	if len(recs) != 1 || recs[0] != "Add tests" {
		t.Errorf("expected only the extracted recommendation, got %v", recs)
	}
}

func TestCombineRecommendations_DedupePreservesOrder(t *testing.T) {
	static := models.ScoreSet{
		models.CategoryNaming:     6,
		models.CategoryModularity: 20,
	}
	extracted := []string{
		"Add tests",
		"Use snake_case for function and variable names.",
		"Add tests",
		"Add docstrings",
	}
	recs := CombineRecommendations(static, extracted)

	want := []string{
		"Use snake_case for function and variable names.",
		"Add tests",
		"Add docstrings",
	}
	if !reflect.DeepEqual(recs, want) {
		t.Errorf("recs = %v, want %v", recs, want)
	}
}

func TestCombineRecommendations_CapsAtFive(t *testing.T) {
	extracted := []string{"a", "b", "c", "d", "e", "f", "g"}
	static := models.ScoreSet{
		models.CategoryNaming:     10,
		models.CategoryModularity: 20,
	}
	recs := CombineRecommendations(static, extracted)

	if len(recs) != 5 {
		t.Fatalf("expected 5 recommendations, got %d: %v", len(recs), recs)
	}
	if recs[4] != "e" {
		t.Errorf("expected first five in order, got %v", recs)
	}
}
