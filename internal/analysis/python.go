package analysis

import (
	"regexp"
	"strings"

	"github.com/codereview/backend/internal/models"
	"github.com/codereview/backend/internal/pysrc"
)

var snakeCaseRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

const (
	maxFunctionStatements = 20
	maxPositionalParams   = 5
	maxLineLength         = 79
	overuseCallThreshold  = 3
)

// AnalyzePython parses the source and applies the six rubric rules. If the
// source does not parse, every category scores 0 rather than returning an
// error: unanalyzable code earns no static credit.
func AnalyzePython(code string) models.ScoreSet {
	mod, err := pysrc.Parse(code)
	if err != nil {
		return zeroScores()
	}

	return models.ScoreSet{
		models.CategoryNaming:        checkNaming(mod),
		models.CategoryModularity:    checkModularity(mod),
		models.CategoryComments:      checkComments(mod),
		models.CategoryFormatting:    checkFormatting(code),
		models.CategoryReusability:   checkReusability(mod),
		models.CategoryBestPractices: checkBestPractices(mod),
	}
}

// checkNaming penalizes every function definition and identifier reference
// whose name is not snake_case.
func checkNaming(mod *pysrc.Module) int {
	score := models.CategoryWeights[models.CategoryNaming]
	mod.Walk(func(s *pysrc.Stmt) {
		if s.Kind == pysrc.KindFunctionDef && !snakeCaseRe.MatchString(s.Name) {
			score -= 2
		}
		for _, name := range s.Names {
			if !snakeCaseRe.MatchString(name) {
				score -= 2
			}
		}
	})
	return floorZero(score)
}

// checkModularity penalizes long function bodies and wide parameter lists.
// Penalties accumulate across every function in the tree.
func checkModularity(mod *pysrc.Module) int {
	score := models.CategoryWeights[models.CategoryModularity]
	mod.Walk(func(s *pysrc.Stmt) {
		if s.Kind != pysrc.KindFunctionDef {
			return
		}
		if len(s.Body) > maxFunctionStatements {
			score -= 5
		}
		if len(s.Params) > maxPositionalParams {
			score -= 3
		}
	})
	return floorZero(score)
}

// checkComments rewards documentation strings: min(max, max + 5*count).
// The bonus saturates at the category maximum immediately; the saturating
// formula is intentional and must not be "fixed" into a graduated scale.
func checkComments(mod *pysrc.Module) int {
	base := models.CategoryWeights[models.CategoryComments]
	docstrings := 0
	mod.Walk(func(s *pysrc.Stmt) {
		if s.Kind == pysrc.KindExpr && s.IsString {
			docstrings++
		}
	})
	score := base + docstrings*5
	if score > base {
		return base
	}
	return score
}

// checkFormatting penalizes lines over 79 characters and non-blank lines
// that do not begin with a four-space indent. The indent rule applies to
// every line including top-level statements; it is deliberately strict.
func checkFormatting(code string) int {
	score := models.CategoryWeights[models.CategoryFormatting]
	for _, line := range strings.Split(code, "\n") {
		tooLong := len([]rune(line)) > maxLineLength
		badIndent := strings.TrimSpace(line) != "" && !strings.HasPrefix(line, "    ")
		if tooLong || badIndent {
			score -= 2
		}
	}
	return floorZero(score)
}

// checkReusability applies one flat penalty per function name that is called
// more than three times, a rough signal that repeated logic should be
// factored differently.
func checkReusability(mod *pysrc.Module) int {
	score := models.CategoryWeights[models.CategoryReusability]
	callCounts := make(map[string]int)
	mod.Walk(func(s *pysrc.Stmt) {
		for _, callee := range s.Calls {
			callCounts[callee]++
		}
	})
	for _, count := range callCounts {
		if count > overuseCallThreshold {
			score -= 2
		}
	}
	return floorZero(score)
}

// checkBestPractices penalizes global declarations and try blocks that have
// no except handler attached.
func checkBestPractices(mod *pysrc.Module) int {
	score := models.CategoryWeights[models.CategoryBestPractices]
	mod.Walk(func(s *pysrc.Stmt) {
		switch s.Kind {
		case pysrc.KindGlobal:
			score -= 5
		case pysrc.KindTry:
			if s.ExceptHandlers() == 0 {
				score -= 3
			}
		}
	})
	return floorZero(score)
}
