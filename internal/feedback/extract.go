package feedback

import (
	"regexp"
	"strconv"
	"strings"
)

// The feedback source is asked for a strict format but is under no
// obligation to honor it, so extraction is a best-effort line scan with a
// deliberately narrow grammar: "word: integer" score lines and "- " bullet
// lines. Everything else is ignored and nothing here ever fails.

var scoreLineRe = regexp.MustCompile(`^(\w+):\s*(\d+)`)

// ExtractScores scans feedback text for lines of the form "word: integer"
// and returns a lowercase word → integer map. Later lines overwrite earlier
// ones; values are not bounds-checked. Keys that are not rubric categories
// are simply never read by the combiner.
func ExtractScores(text string) map[string]int {
	scores := make(map[string]int)
	for _, line := range strings.Split(text, "\n") {
		m := scoreLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		value, err := strconv.Atoi(m[2])
		if err != nil {
			continue // digits too large for an int; skip the line
		}
		scores[strings.ToLower(m[1])] = value
	}
	return scores
}

// ExtractRecommendations returns the text after "- " for every line that
// starts with exactly that prefix, verbatim and in order.
func ExtractRecommendations(text string) []string {
	var recs []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "- ") {
			recs = append(recs, line[2:])
		}
	}
	return recs
}
