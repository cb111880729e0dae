package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/epeers/riskprofile/internal/database"
	"github.com/epeers/riskprofile/internal/models"
	"github.com/jackc/pgx/v5"
)

var ErrInvestorNotFound = errors.New("investor not found")

// InvestorRepository handles database operations for investors
type InvestorRepository struct {
	pool database.Pool
}

// NewInvestorRepository creates a new InvestorRepository
func NewInvestorRepository(pool database.Pool) *InvestorRepository {
	return &InvestorRepository{pool: pool}
}

// GetByID retrieves an investor by ID
func (r *InvestorRepository) GetByID(ctx context.Context, id string) (*models.Investor, error) {
	query := `
		SELECT id, name, age, annual_income, liquid_net_worth, time_horizon
		FROM investor
		WHERE id = $1
	`
	inv := &models.Investor{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.Name, &inv.Age, &inv.AnnualIncome, &inv.LiquidNetWorth, &inv.TimeHorizon,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvestorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get investor: %w", err)
	}
	return inv, nil
}

// Upsert creates the investor or replaces its demographic fields
func (r *InvestorRepository) Upsert(ctx context.Context, inv *models.Investor) error {
	query := `
		INSERT INTO investor (id, name, age, annual_income, liquid_net_worth, time_horizon, created, updated)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    age = EXCLUDED.age,
		    annual_income = EXCLUDED.annual_income,
		    liquid_net_worth = EXCLUDED.liquid_net_worth,
		    time_horizon = EXCLUDED.time_horizon,
		    updated = NOW()
	`
	_, err := r.pool.Exec(ctx, query,
		inv.ID, inv.Name, inv.Age, inv.AnnualIncome, inv.LiquidNetWorth, inv.TimeHorizon,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert investor: %w", err)
	}
	return nil
}
