package models

import "time"

type Language string

const (
	LanguagePython     Language = "python"
	LanguageJavaScript Language = "javascript"
)

// languageAliases maps file-extension style inputs to canonical languages.
var languageAliases = map[string]Language{
	"py":         LanguagePython,
	"python":     LanguagePython,
	"js":         LanguageJavaScript,
	"jsx":        LanguageJavaScript,
	"javascript": LanguageJavaScript,
}

// NormalizeLanguage resolves extension aliases (py, js, jsx) to a canonical
// language. The second return is false for unsupported inputs.
func NormalizeLanguage(input string) (Language, bool) {
	lang, ok := languageAliases[input]
	return lang, ok
}

type Category string

const (
	CategoryNaming        Category = "naming"
	CategoryModularity    Category = "modularity"
	CategoryComments      Category = "comments"
	CategoryFormatting    Category = "formatting"
	CategoryReusability   Category = "reusability"
	CategoryBestPractices Category = "best_practices"
)

// CategoryWeights is the fixed rubric: each category's maximum score and its
// share of the 100-point overall scale.
var CategoryWeights = map[Category]int{
	CategoryNaming:        10,
	CategoryModularity:    20,
	CategoryComments:      20,
	CategoryFormatting:    15,
	CategoryReusability:   15,
	CategoryBestPractices: 20,
}

// CategoryOrder fixes iteration order so breakdowns serialize deterministically.
var CategoryOrder = []Category{
	CategoryNaming,
	CategoryModularity,
	CategoryComments,
	CategoryFormatting,
	CategoryReusability,
	CategoryBestPractices,
}

// TotalWeight returns the sum of all category maxima.
func TotalWeight() int {
	total := 0
	for _, w := range CategoryWeights {
		total += w
	}
	return total
}

// ScoreSet holds one integer score per rubric category.
type ScoreSet map[Category]int

// ── Requests / Responses ────────────────────────────────

type CodeReviewRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
	Context  string `json:"context,omitempty"`
}

type CodeReviewResponse struct {
	OverallScore     int              `json:"overall_score"`
	Breakdown        map[Category]int `json:"breakdown"`
	Recommendations  []string         `json:"recommendations"`
	DetailedFeedback string           `json:"detailed_feedback"`
	FileName         string           `json:"file_name,omitempty"`
	Language         string           `json:"language"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// ── Stored reviews ──────────────────────────────────────

// Review is a persisted record of one completed code review.
type Review struct {
	ID               int64            `json:"id"`
	UserID           *int64           `json:"user_id,omitempty"`
	Language         string           `json:"language"`
	FileName         string           `json:"file_name,omitempty"`
	OverallScore     int              `json:"overall_score"`
	Breakdown        map[Category]int `json:"breakdown"`
	Recommendations  []string         `json:"recommendations"`
	DetailedFeedback string           `json:"detailed_feedback"`
	CreatedAt        time.Time        `json:"created_at"`
}

type ReviewListResponse struct {
	Reviews  []Review `json:"reviews"`
	Total    int      `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
}

type ReviewStats struct {
	TotalReviews int            `json:"total_reviews"`
	AverageScore float64        `json:"average_score"`
	ByLanguage   map[string]int `json:"by_language"`
}
