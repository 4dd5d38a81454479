package review

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/codereview/backend/internal/models"
)

// Store persists completed reviews as an audit log. Reviews are written
// best-effort after the response is computed; reads back the history for
// authenticated users.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) SaveReview(userID *int64, resp *models.CodeReviewResponse) (int64, error) {
	breakdown, err := json.Marshal(resp.Breakdown)
	if err != nil {
		return 0, fmt.Errorf("marshal breakdown: %w", err)
	}
	recommendations, err := json.Marshal(resp.Recommendations)
	if err != nil {
		return 0, fmt.Errorf("marshal recommendations: %w", err)
	}

	var id int64
	err = s.db.QueryRow(
		`INSERT INTO reviews (user_id, language, file_name, overall_score, breakdown, recommendations, detailed_feedback)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		userID, resp.Language, resp.FileName, resp.OverallScore,
		breakdown, recommendations, resp.DetailedFeedback,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert review: %w", err)
	}
	return id, nil
}

func (s *Store) ListByUser(userID int64, page, pageSize int) (*models.ReviewListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM reviews WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT id, user_id, language, file_name, overall_score, breakdown, recommendations, detailed_feedback, created_at
		 FROM reviews
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, pageSize, (page-1)*pageSize,
	)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	return &models.ReviewListResponse{
		Reviews:  reviews,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// GetByID returns a single review owned by the given user. Reviews belonging
// to other users (or to no user) are reported as sql.ErrNoRows.
func (s *Store) GetByID(id, userID int64) (*models.Review, error) {
	row := s.db.QueryRow(
		`SELECT id, user_id, language, file_name, overall_score, breakdown, recommendations, detailed_feedback, created_at
		 FROM reviews
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	return scanReview(row)
}

func (s *Store) Stats(userID int64) (*models.ReviewStats, error) {
	stats := &models.ReviewStats{ByLanguage: map[string]int{}}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(AVG(overall_score), 0)
		 FROM reviews WHERE user_id = $1`,
		userID,
	).Scan(&stats.TotalReviews, &stats.AverageScore)
	if err != nil {
		return nil, fmt.Errorf("review stats: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT language, COUNT(*) FROM reviews WHERE user_id = $1 GROUP BY language`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("review stats by language: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var language string
		var count int
		if err := rows.Scan(&language, &count); err != nil {
			return nil, fmt.Errorf("review stats by language: %w", err)
		}
		stats.ByLanguage[language] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("review stats by language: %w", err)
	}

	return stats, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReview(row rowScanner) (*models.Review, error) {
	var review models.Review
	var fileName sql.NullString
	var breakdown, recommendations []byte

	err := row.Scan(
		&review.ID, &review.UserID, &review.Language, &fileName,
		&review.OverallScore, &breakdown, &recommendations,
		&review.DetailedFeedback, &review.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	review.FileName = fileName.String
	if err := json.Unmarshal(breakdown, &review.Breakdown); err != nil {
		return nil, fmt.Errorf("unmarshal breakdown: %w", err)
	}
	if err := json.Unmarshal(recommendations, &review.Recommendations); err != nil {
		return nil, fmt.Errorf("unmarshal recommendations: %w", err)
	}
	return &review, nil
}
