// Package review orchestrates a code review end to end: static analysis,
// feedback generation, score combination, and optional persistence.
package review

import (
	"context"
	"fmt"
	"log"

	"github.com/codereview/backend/internal/analysis"
	"github.com/codereview/backend/internal/feedback"
	"github.com/codereview/backend/internal/models"
)

// UnsupportedLanguageError reports a language the service cannot review.
// Handlers map it to a 400 response.
type UnsupportedLanguageError struct {
	Input string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language: %q (supported: py, js, jsx)", e.Input)
}

type Service struct {
	llm   feedback.LLMClient
	store *Store // nil disables persistence
}

func NewService(llm feedback.LLMClient, store *Store) *Service {
	return &Service{llm: llm, store: store}
}

// Review runs the full pipeline for one request. fileName is empty for raw
// code submissions; userID is nil for anonymous callers. A persistence
// failure is logged but never fails a review that already completed.
func (s *Service) Review(ctx context.Context, req models.CodeReviewRequest, fileName string, userID *int64) (*models.CodeReviewResponse, error) {
	lang, ok := models.NormalizeLanguage(req.Language)
	if !ok {
		return nil, &UnsupportedLanguageError{Input: req.Language}
	}

	static := analysis.Analyze(req.Code, lang)

	resp, err := s.llm.Generate(ctx,
		feedback.ReviewSystemPrompt(lang),
		feedback.BuildReviewPrompt(req.Code, lang, req.Context),
	)
	if err != nil {
		return nil, fmt.Errorf("generating review feedback: %w", err)
	}

	combined := CombineScores(static, feedback.ExtractScores(resp.Content))
	recommendations := CombineRecommendations(static, feedback.ExtractRecommendations(resp.Content))
	if recommendations == nil {
		recommendations = []string{}
	}

	result := &models.CodeReviewResponse{
		OverallScore:     OverallScore(combined),
		Breakdown:        combined,
		Recommendations:  recommendations,
		DetailedFeedback: resp.Content,
		FileName:         fileName,
		Language:         req.Language, // echoed as submitted, not normalized
	}

	if s.store != nil {
		if _, err := s.store.SaveReview(userID, result); err != nil {
			log.Printf("WARN: failed to persist review: %v", err)
		}
	}

	return result, nil
}
