package feedback

import (
	"testing"
)

func TestExtractScores_Basic(t *testing.T) {
	text := "Naming: 85\nSome prose in between.\nModularity: 70"
	scores := ExtractScores(text)

	if scores["naming"] != 85 {
		t.Errorf("expected naming=85, got %d", scores["naming"])
	}
	if scores["modularity"] != 70 {
		t.Errorf("expected modularity=70, got %d", scores["modularity"])
	}
	if len(scores) != 2 {
		t.Errorf("expected 2 scores, got %d: %v", len(scores), scores)
	}
}

func TestExtractScores_LaterLinesOverwrite(t *testing.T) {
	scores := ExtractScores("Naming: 40\nNaming: 90")
	if scores["naming"] != 90 {
		t.Errorf("expected last value to win, got %d", scores["naming"])
	}
}

func TestExtractScores_NoBoundsCheck(t *testing.T) {
	scores := ExtractScores("Naming: 250")
	if scores["naming"] != 250 {
		t.Errorf("expected out-of-range value preserved, got %d", scores["naming"])
	}
}

func TestExtractScores_IgnoresNonMatching(t *testing.T) {
	text := "  Naming: 85\nnaming 85\nnaming:-5\n: 12\nscore: high"
	scores := ExtractScores(text)
	if len(scores) != 0 {
		t.Errorf("expected no scores from malformed lines, got %v", scores)
	}
}

func TestExtractScores_LowercasesKeys(t *testing.T) {
	scores := ExtractScores("Best_practices: 60\nFORMATTING: 55")
	if scores["best_practices"] != 60 {
		t.Errorf("expected best_practices=60, got %v", scores)
	}
	if scores["formatting"] != 55 {
		t.Errorf("expected formatting=55, got %v", scores)
	}
}

func TestExtractRecommendations(t *testing.T) {
	text := "Here is feedback.\n- Use more descriptive variable names\nNot a bullet\n- Add tests\n -leading space ignored\n-- double dash ignored"
	recs := ExtractRecommendations(text)

	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d: %v", len(recs), recs)
	}
	if recs[0] != "Use more descriptive variable names" {
		t.Errorf("unexpected first recommendation: %q", recs[0])
	}
	if recs[1] != "Add tests" {
		t.Errorf("unexpected second recommendation: %q", recs[1])
	}
}

func TestExtract_SpecExample(t *testing.T) {
	text := "Naming: 85\n- Use more descriptive variable names"

	scores := ExtractScores(text)
	if len(scores) != 1 || scores["naming"] != 85 {
		t.Errorf("expected exactly {naming: 85}, got %v", scores)
	}

	recs := ExtractRecommendations(text)
	if len(recs) != 1 || recs[0] != "Use more descriptive variable names" {
		t.Errorf("expected exactly one known recommendation, got %v", recs)
	}
}

func TestExtract_GarbageNeverPanics(t *testing.T) {
	garbage := []string{"", "\n\n\n", "::::", "- ", "12345: abc", "\x00\xff"}
	for _, g := range garbage {
		_ = ExtractScores(g)
		_ = ExtractRecommendations(g)
	}
}
