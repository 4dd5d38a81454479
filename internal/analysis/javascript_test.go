package analysis

import (
	"strings"
	"testing"

	"github.com/codereview/backend/internal/models"
)

func TestAnalyzeJavaScript_CleanSource(t *testing.T) {
	src := `// small helper
function addNumbers(a, b) {
  return a + b;
}
const total = addNumbers(1, 2);
`
	scores := AnalyzeJavaScript(src)
	for cat, max := range models.CategoryWeights {
		if scores[cat] < 0 || scores[cat] > max {
			t.Errorf("%s score %d outside [0, %d]", cat, scores[cat], max)
		}
	}
	if got := scores[models.CategoryNaming]; got != 10 {
		t.Errorf("expected naming 10, got %d", got)
	}
	if got := scores[models.CategoryBestPractices]; got != 20 {
		t.Errorf("expected best_practices 20, got %d", got)
	}
}

func TestJSNaming_PenalizesNonCamelCase(t *testing.T) {
	src := "function Bad_Name(a) {}\nconst SHOUTY = 1;\nlet fine = 2;\n"
	scores := AnalyzeJavaScript(src)
	if got := scores[models.CategoryNaming]; got != 6 {
		t.Errorf("expected naming 6 after two penalties, got %d", got)
	}
}

func TestJSModularity_WideParamList(t *testing.T) {
	src := "function f(a, b, c, d, e, g) { return a; }\n"
	scores := AnalyzeJavaScript(src)
	if got := scores[models.CategoryModularity]; got != 17 {
		t.Errorf("expected modularity 17 for 6 params, got %d", got)
	}
}

func TestJSModularity_LongBody(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("function f() {\n")
	for i := 0; i < 22; i++ {
		sb.WriteString("  doWork();\n")
	}
	sb.WriteString("}\n")

	scores := AnalyzeJavaScript(sb.String())
	if got := scores[models.CategoryModularity]; got != 15 {
		t.Errorf("expected modularity 15 for long body, got %d", got)
	}
}

func TestJSComments_Saturating(t *testing.T) {
	max := models.CategoryWeights[models.CategoryComments]
	with := AnalyzeJavaScript("// explains things\nconst a = 1;\n")
	without := AnalyzeJavaScript("const a = 1;\n")
	if with[models.CategoryComments] != max {
		t.Errorf("expected comments %d with a comment, got %d", max, with[models.CategoryComments])
	}
	if without[models.CategoryComments] != max {
		t.Errorf("expected comments %d without comments (saturating formula), got %d", max, without[models.CategoryComments])
	}
}

func TestJSFormatting_LongLines(t *testing.T) {
	long := "const x = \"" + strings.Repeat("a", 90) + "\";"
	scores := AnalyzeJavaScript("const y = 1;\n" + long + "\n")
	if got := scores[models.CategoryFormatting]; got != 13 {
		t.Errorf("expected formatting 13 with one long line, got %d", got)
	}
}

func TestJSReusability_OverusedCallee(t *testing.T) {
	src := "helper();\nhelper();\nhelper();\nhelper();\nobj.method();\n"
	scores := AnalyzeJavaScript(src)
	if got := scores[models.CategoryReusability]; got != 13 {
		t.Errorf("expected reusability 13, got %d", got)
	}
}

func TestJSBestPractices(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected int
	}{
		{"clean", "const a = 1;\nif (a === 1) { run(); }\n", 20},
		{"var declaration", "var a = 1;\n", 15},
		{"loose equality", "if (a == b) { run(); }\n", 17},
		{"strict not penalized", "if (a !== b) { run(); }\n", 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := AnalyzeJavaScript(tt.src)
			if got := scores[models.CategoryBestPractices]; got != tt.expected {
				t.Errorf("expected best_practices %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestJSStringsAndCommentsScrubbed(t *testing.T) {
	src := "const msg = \"var hidden == tricky\";\n// var alsoHidden == here\n"
	scores := AnalyzeJavaScript(src)
	if got := scores[models.CategoryBestPractices]; got != 20 {
		t.Errorf("expected no penalties from string/comment content, got %d", got)
	}
}
