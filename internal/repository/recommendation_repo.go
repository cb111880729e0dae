package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/epeers/riskprofile/internal/database"
	"github.com/epeers/riskprofile/internal/models"
	"github.com/jackc/pgx/v5"
)

var ErrRecommendationNotFound = errors.New("recommendation bundle not found")

// RecommendationRepository handles database operations for recommendation bundles
type RecommendationRepository struct {
	pool database.Pool
}

// NewRecommendationRepository creates a new RecommendationRepository
func NewRecommendationRepository(pool database.Pool) *RecommendationRepository {
	return &RecommendationRepository{pool: pool}
}

// Save stores a bundle under b.ID. Recommendations are kept as JSONB.
func (r *RecommendationRepository) Save(ctx context.Context, b *models.RecommendationBundle) error {
	recs, err := json.Marshal(b.Recommendations)
	if err != nil {
		return fmt.Errorf("failed to encode recommendations: %w", err)
	}
	query := `
		INSERT INTO recommendation_bundle (id, investor_id, recommendations, overall_assessment, generated_at, next_review_date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.pool.Exec(ctx, query,
		b.ID, b.InvestorID, recs, b.OverallAssessment, b.GeneratedAt, b.NextReviewDate,
	); err != nil {
		return fmt.Errorf("failed to save recommendation bundle: %w", err)
	}
	return nil
}

// GetLatest retrieves the most recently generated bundle for an investor
func (r *RecommendationRepository) GetLatest(ctx context.Context, investorID string) (*models.RecommendationBundle, error) {
	query := `
		SELECT id, investor_id, recommendations, overall_assessment, generated_at, next_review_date
		FROM recommendation_bundle
		WHERE investor_id = $1
		ORDER BY generated_at DESC
		LIMIT 1
	`
	b := &models.RecommendationBundle{}
	var recs []byte
	err := r.pool.QueryRow(ctx, query, investorID).Scan(
		&b.ID, &b.InvestorID, &recs, &b.OverallAssessment, &b.GeneratedAt, &b.NextReviewDate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRecommendationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendation bundle: %w", err)
	}
	if err := json.Unmarshal(recs, &b.Recommendations); err != nil {
		return nil, fmt.Errorf("failed to decode recommendations: %w", err)
	}
	return b, nil
}
