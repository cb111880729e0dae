package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/epeers/riskprofile/internal/database"
	"github.com/epeers/riskprofile/internal/models"
	"github.com/jackc/pgx/v5"
)

var ErrProfileNotFound = errors.New("risk profile not found")

const profileColumns = `
	id, investor_id, assessment_id, risk_category, composite_score, tolerance_score,
	capacity_score, time_horizon_score, time_horizon,
	alloc_equities, alloc_fixed_income, alloc_alternatives, alloc_cash,
	max_drawdown, max_volatility, max_concentration,
	is_active, valid_from, valid_to
`

// RiskProfileRepository handles database operations for risk profiles
type RiskProfileRepository struct {
	pool database.Pool
}

// NewRiskProfileRepository creates a new RiskProfileRepository
func NewRiskProfileRepository(pool database.Pool) *RiskProfileRepository {
	return &RiskProfileRepository{pool: pool}
}

// BeginTx starts a new transaction
func (r *RiskProfileRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

// GetActive retrieves the investor's active profile
func (r *RiskProfileRepository) GetActive(ctx context.Context, investorID string) (*models.RiskProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM risk_profile WHERE investor_id = $1 AND is_active`
	p, err := scanProfile(r.pool.QueryRow(ctx, query, investorID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active profile: %w", err)
	}
	return p, nil
}

// ListByInvestor returns every profile for the investor, newest first
func (r *RiskProfileRepository) ListByInvestor(ctx context.Context, investorID string) ([]models.RiskProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM risk_profile WHERE investor_id = $1 ORDER BY valid_from DESC`
	rows, err := r.pool.Query(ctx, query, investorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.RiskProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

// Supersede closes the investor's active profile, if any, and inserts p as the new active one.
// A transaction-scoped advisory lock on the investor serializes concurrent submissions.
// Returns the number of profiles closed.
func (r *RiskProfileRepository) Supersede(ctx context.Context, tx pgx.Tx, p *models.RiskProfile) (int64, error) {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, p.InvestorID); err != nil {
		return 0, fmt.Errorf("failed to lock investor: %w", err)
	}

	closeQuery := `
		UPDATE risk_profile
		SET is_active = false, valid_to = $2
		WHERE investor_id = $1 AND is_active
	`
	result, err := tx.Exec(ctx, closeQuery, p.InvestorID, p.ValidFrom)
	if err != nil {
		return 0, fmt.Errorf("failed to close active profile: %w", err)
	}

	insertQuery := `
		INSERT INTO risk_profile (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`
	a, l := p.RecommendedAllocation, p.RiskLimits
	if _, err := tx.Exec(ctx, insertQuery,
		p.ID, p.InvestorID, p.AssessmentID, int(p.RiskCategory), p.CompositeScore, p.ToleranceScore,
		p.CapacityScore, p.TimeHorizonScore, p.TimeHorizon,
		a.Equities, a.FixedIncome, a.Alternatives, a.Cash,
		l.MaxDrawdown, l.MaxVolatility, l.MaxConcentration,
		p.IsActive, p.ValidFrom, p.ValidTo,
	); err != nil {
		return 0, fmt.Errorf("failed to insert profile: %w", err)
	}
	return result.RowsAffected(), nil
}

func scanProfile(row pgx.Row) (*models.RiskProfile, error) {
	p := &models.RiskProfile{}
	var category int
	var validTo *time.Time
	a, l := &p.RecommendedAllocation, &p.RiskLimits
	err := row.Scan(
		&p.ID, &p.InvestorID, &p.AssessmentID, &category, &p.CompositeScore, &p.ToleranceScore,
		&p.CapacityScore, &p.TimeHorizonScore, &p.TimeHorizon,
		&a.Equities, &a.FixedIncome, &a.Alternatives, &a.Cash,
		&l.MaxDrawdown, &l.MaxVolatility, &l.MaxConcentration,
		&p.IsActive, &p.ValidFrom, &validTo,
	)
	if err != nil {
		return nil, err
	}
	p.RiskCategory = models.RiskCategory(category)
	p.RiskCategoryName = p.RiskCategory.String()
	p.ValidTo = validTo
	return p, nil
}
