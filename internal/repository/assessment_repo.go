package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/epeers/riskprofile/internal/database"
	"github.com/epeers/riskprofile/internal/models"
	"github.com/jackc/pgx/v5"
)

// AssessmentRepository handles database operations for completed questionnaires
type AssessmentRepository struct {
	pool database.Pool
}

// NewAssessmentRepository creates a new AssessmentRepository
func NewAssessmentRepository(pool database.Pool) *AssessmentRepository {
	return &AssessmentRepository{pool: pool}
}

// Create stores a scored assessment. Responses are kept as JSONB.
func (r *AssessmentRepository) Create(ctx context.Context, tx pgx.Tx, a *models.Assessment) error {
	responses, err := json.Marshal(a.Responses)
	if err != nil {
		return fmt.Errorf("failed to encode responses: %w", err)
	}
	query := `
		INSERT INTO assessment (id, investor_id, responses, raw_score, percentile_score, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := tx.Exec(ctx, query,
		a.ID, a.InvestorID, responses, a.RawScore, a.PercentileScore, a.CompletedAt,
	); err != nil {
		return fmt.Errorf("failed to create assessment: %w", err)
	}
	return nil
}
