package analysis

import (
	"strings"
	"testing"

	"github.com/codereview/backend/internal/models"
)

func TestAnalyzePython_FailClosed(t *testing.T) {
	broken := []string{
		"def f(",
		"def f(x)\n    return x",
		`x = "unterminated`,
		"if a:\n        b = 1\n    c = 2",
	}

	for _, src := range broken {
		scores := AnalyzePython(src)
		for cat, score := range scores {
			if score != 0 {
				t.Errorf("source %q: expected %s=0 on parse failure, got %d", src, cat, score)
			}
		}
		if len(scores) != len(models.CategoryWeights) {
			t.Errorf("source %q: expected all %d categories present, got %d", src, len(models.CategoryWeights), len(scores))
		}
	}
}

func TestAnalyzePython_MinimalFunction(t *testing.T) {
	scores := AnalyzePython("def f(x):\n    return x")

	want := models.ScoreSet{
		models.CategoryNaming:        10,
		models.CategoryModularity:    20,
		models.CategoryComments:      20,
		models.CategoryFormatting:    13, // "def f(x):" is top-level, not 4-space indented
		models.CategoryReusability:   15,
		models.CategoryBestPractices: 20,
	}
	for cat, expected := range want {
		if scores[cat] != expected {
			t.Errorf("%s: expected %d, got %d", cat, expected, scores[cat])
		}
	}
}

func TestAnalyzePython_ScoresWithinBounds(t *testing.T) {
	sources := []string{
		"def f(x):\n    return x",
		"BadName = 5\nAnotherBad = 6\nThird = 7\nFourth = 8\nFifth = 9\nSixth = 10",
		"def f():\n    global a\n    global b\n    global c\n    global d\n    global e",
		strings.Repeat("x"+strings.Repeat("y", 100)+" = 1\n", 20),
	}

	for _, src := range sources {
		scores := AnalyzePython(src)
		for cat, max := range models.CategoryWeights {
			if scores[cat] < 0 || scores[cat] > max {
				t.Errorf("source %q: %s score %d outside [0, %d]", src, cat, scores[cat], max)
			}
		}
	}
}

func TestCheckNaming_PenalizesBadIdentifiers(t *testing.T) {
	// Two non-snake_case references: BadName and URL.
	scores := AnalyzePython("BadName = URL")
	if got := scores[models.CategoryNaming]; got != 6 {
		t.Errorf("expected naming 6 after two penalties, got %d", got)
	}
}

func TestCheckNaming_FunctionNames(t *testing.T) {
	scores := AnalyzePython("def DoWork():\n    pass")
	if got := scores[models.CategoryNaming]; got != 8 {
		t.Errorf("expected naming 8 for one bad function name, got %d", got)
	}
}

func TestCheckModularity_TooManyParams(t *testing.T) {
	scores := AnalyzePython("def f(a, b, c, d, e, g):\n    pass")
	if got := scores[models.CategoryModularity]; got != 17 {
		t.Errorf("expected modularity 17 for 6 params, got %d", got)
	}
}

func TestCheckModularity_LongBody(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("def f():\n")
	for i := 0; i < 21; i++ {
		sb.WriteString("    x = 1\n")
	}
	scores := AnalyzePython(sb.String())
	if got := scores[models.CategoryModularity]; got != 15 {
		t.Errorf("expected modularity 15 for 21-statement body, got %d", got)
	}
}

func TestCheckComments_SaturatesImmediately(t *testing.T) {
	one := AnalyzePython("\"\"\"doc\"\"\"\nx = 1")
	many := AnalyzePython("\"\"\"doc\"\"\"\ndef f():\n    \"\"\"doc\"\"\"\n    pass")

	max := models.CategoryWeights[models.CategoryComments]
	if one[models.CategoryComments] != max {
		t.Errorf("expected comments %d with one docstring, got %d", max, one[models.CategoryComments])
	}
	if many[models.CategoryComments] != max {
		t.Errorf("expected comments %d with several docstrings, got %d", max, many[models.CategoryComments])
	}
}

func TestCheckFormatting_ConformingLines(t *testing.T) {
	if got := checkFormatting("    x = 1\n    y = 2\n\n    z = 3"); got != 15 {
		t.Errorf("expected formatting 15 for conforming lines, got %d", got)
	}
}

func TestCheckFormatting_OneBadLine(t *testing.T) {
	if got := checkFormatting("    x = 1\nbad = 2\n    y = 3"); got != 13 {
		t.Errorf("expected formatting 13 with one non-indented line, got %d", got)
	}

	long := "    " + strings.Repeat("a", 80)
	if got := checkFormatting("    x = 1\n" + long); got != 13 {
		t.Errorf("expected formatting 13 with one long line, got %d", got)
	}
}

func TestCheckFormatting_FloorsAtZero(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 30; i++ {
		sb.WriteString("bad = 1\n")
	}
	if got := checkFormatting(sb.String()); got != 0 {
		t.Errorf("expected formatting floored at 0, got %d", got)
	}
}

func TestCheckReusability_OverusedFunction(t *testing.T) {
	src := `def f():
    helper()
    helper()
    helper()
    helper()
    once()
`
	scores := AnalyzePython(src)
	if got := scores[models.CategoryReusability]; got != 13 {
		t.Errorf("expected reusability 13 for one overused callee, got %d", got)
	}
}

func TestCheckReusability_FlatPenaltyPerName(t *testing.T) {
	// helper called 6 times is still a single -2 penalty.
	src := `def f():
    helper()
    helper()
    helper()
    helper()
    helper()
    helper()
`
	scores := AnalyzePython(src)
	if got := scores[models.CategoryReusability]; got != 13 {
		t.Errorf("expected flat penalty of 2, got score %d", got)
	}
}

func TestCheckBestPractices(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected int
	}{
		{"clean", "def f():\n    pass", 20},
		{"one global", "def f():\n    global state\n    state = 1", 15},
		{"handlerless try", "try:\n    risky()\nfinally:\n    done()", 17},
		{"try with handler", "try:\n    risky()\nexcept ValueError:\n    pass", 20},
		{"global and bare try", "def f():\n    global s\n    try:\n        r()\n    finally:\n        d()", 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := AnalyzePython(tt.src)
			if got := scores[models.CategoryBestPractices]; got != tt.expected {
				t.Errorf("expected best_practices %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestAnalyzePython_ModernSyntax(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"match block", "def handle(cmd):\n    match cmd:\n        case \"start\":\n            launch()\n        case _:\n            fallback()"},
		{"walrus in header", "def drain(stream):\n    while chunk := read_chunk(stream):\n        handle(chunk)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := AnalyzePython(tt.src)
			allZero := true
			for _, v := range scores {
				if v != 0 {
					allZero = false
				}
			}
			if allZero {
				t.Errorf("valid source must not score as unparseable, got %v", scores)
			}
		})
	}
}
