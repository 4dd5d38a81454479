package analysis

import (
	"regexp"
	"strings"

	"github.com/codereview/backend/internal/models"
)

// The JavaScript path has no structural parser behind it, so the six rubric
// categories are produced from line- and regex-level heuristics. These are
// approximations of the Python rules, adjusted for JS conventions (camelCase
// naming, no meaningful 4-space indent rule).

var (
	jsFunctionRe = regexp.MustCompile(`\bfunction\s*([A-Za-z_$][A-Za-z0-9_$]*)?\s*\(([^)]*)\)`)
	jsDeclRe     = regexp.MustCompile(`\b(?:const|let|var)\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
	jsVarRe      = regexp.MustCompile(`\bvar\s+[A-Za-z_$]`)
	jsCallRe     = regexp.MustCompile(`([A-Za-z_$][A-Za-z0-9_$]*)\s*\(`)
	jsLooseEqRe  = regexp.MustCompile(`[^=!<>]==[^=]|[^=!]!=[^=]`)
	camelCaseRe  = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)
)

var jsKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "catch": true,
	"function": true, "return": true, "typeof": true, "new": true,
	"do": true, "else": true, "try": true, "throw": true, "await": true,
}

// AnalyzeJavaScript scores JavaScript or JSX source with textual heuristics.
func AnalyzeJavaScript(code string) models.ScoreSet {
	scrubbed, commentLines := scrubJS(code)

	return models.ScoreSet{
		models.CategoryNaming:        jsCheckNaming(scrubbed),
		models.CategoryModularity:    jsCheckModularity(scrubbed),
		models.CategoryComments:      jsCheckComments(commentLines),
		models.CategoryFormatting:    jsCheckFormatting(code),
		models.CategoryReusability:   jsCheckReusability(scrubbed),
		models.CategoryBestPractices: jsCheckBestPractices(scrubbed),
	}
}

// scrubJS removes comments and collapses string/template literals so the
// regex heuristics never match inside them. It also returns the number of
// lines that carried a comment.
func scrubJS(code string) (string, int) {
	var out strings.Builder
	rs := []rune(code)
	commentLines := 0
	lineHasComment := false
	i := 0

	for i < len(rs) {
		c := rs[i]
		switch {
		case c == '\n':
			if lineHasComment {
				commentLines++
				lineHasComment = false
			}
			out.WriteRune('\n')
			i++
		case c == '/' && i+1 < len(rs) && rs[i+1] == '/':
			lineHasComment = true
			for i < len(rs) && rs[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(rs) && rs[i+1] == '*':
			lineHasComment = true
			i += 2
			for i < len(rs) {
				if rs[i] == '\n' {
					if lineHasComment {
						commentLines++
					}
					lineHasComment = true
					out.WriteRune('\n')
				}
				if rs[i] == '*' && i+1 < len(rs) && rs[i+1] == '/' {
					i += 2
					break
				}
				i++
			}
		case c == '"' || c == '\'' || c == '`':
			q := c
			out.WriteString(`""`)
			i++
			for i < len(rs) {
				if rs[i] == '\\' {
					i += 2
					continue
				}
				if rs[i] == q {
					i++
					break
				}
				if rs[i] == '\n' && q == '`' {
					out.WriteRune('\n')
				}
				i++
			}
		default:
			out.WriteRune(c)
			i++
		}
	}
	if lineHasComment {
		commentLines++
	}

	return out.String(), commentLines
}

// jsCheckNaming penalizes declared function and variable names that are not
// lower camelCase.
func jsCheckNaming(scrubbed string) int {
	score := models.CategoryWeights[models.CategoryNaming]
	for _, m := range jsFunctionRe.FindAllStringSubmatch(scrubbed, -1) {
		if m[1] != "" && !camelCaseRe.MatchString(m[1]) {
			score -= 2
		}
	}
	for _, m := range jsDeclRe.FindAllStringSubmatch(scrubbed, -1) {
		if !camelCaseRe.MatchString(m[1]) {
			score -= 2
		}
	}
	return floorZero(score)
}

// jsCheckModularity penalizes function bodies longer than 20 lines and
// parameter lists wider than 5, located by brace matching from each
// `function` keyword.
func jsCheckModularity(scrubbed string) int {
	score := models.CategoryWeights[models.CategoryModularity]
	for _, loc := range jsFunctionRe.FindAllStringSubmatchIndex(scrubbed, -1) {
		params := scrubbed[loc[4]:loc[5]]
		if countParams(params) > maxPositionalParams {
			score -= 3
		}
		if bodyLines(scrubbed, loc[1]) > maxFunctionStatements {
			score -= 5
		}
	}
	return floorZero(score)
}

func countParams(params string) int {
	params = strings.TrimSpace(params)
	if params == "" {
		return 0
	}
	return len(strings.Split(params, ","))
}

// bodyLines counts the newline span of the brace-delimited block starting at
// or after pos. Returns 0 if no block is found.
func bodyLines(s string, pos int) int {
	open := strings.IndexRune(s[pos:], '{')
	if open < 0 {
		return 0
	}
	depth := 0
	lines := 0
	for _, c := range s[pos+open:] {
		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return lines
			}
		case '\n':
			lines++
		}
	}
	return lines
}

func jsCheckComments(commentLines int) int {
	base := models.CategoryWeights[models.CategoryComments]
	score := base + commentLines*5
	if score > base {
		return base
	}
	return score
}

// jsCheckFormatting applies only the line-length rule; the Python 4-space
// indent rule does not transfer to JS codebases.
func jsCheckFormatting(code string) int {
	score := models.CategoryWeights[models.CategoryFormatting]
	for _, line := range strings.Split(code, "\n") {
		if len([]rune(line)) > maxLineLength {
			score -= 2
		}
	}
	return floorZero(score)
}

func jsCheckReusability(scrubbed string) int {
	score := models.CategoryWeights[models.CategoryReusability]
	callCounts := make(map[string]int)
	for _, loc := range jsCallRe.FindAllStringSubmatchIndex(scrubbed, -1) {
		name := scrubbed[loc[2]:loc[3]]
		if jsKeywords[name] {
			continue
		}
		if loc[2] > 0 && scrubbed[loc[2]-1] == '.' {
			continue // method call, not a plain function reference
		}
		callCounts[name]++
	}
	for _, count := range callCounts {
		if count > overuseCallThreshold {
			score -= 2
		}
	}
	return floorZero(score)
}

// jsCheckBestPractices penalizes function-scoped var declarations and loose
// equality comparisons.
func jsCheckBestPractices(scrubbed string) int {
	score := models.CategoryWeights[models.CategoryBestPractices]
	score -= 5 * len(jsVarRe.FindAllString(scrubbed, -1))
	score -= 3 * len(jsLooseEqRe.FindAllString(scrubbed, -1))
	return floorZero(score)
}
