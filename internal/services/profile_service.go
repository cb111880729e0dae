package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/epeers/riskprofile/internal/cache"
	"github.com/epeers/riskprofile/internal/models"
	"github.com/epeers/riskprofile/internal/repository"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ProfileService handles investor, assessment and risk profile business logic
type ProfileService struct {
	scorer         *AssessmentScorer
	investorRepo   *repository.InvestorRepository
	assessmentRepo *repository.AssessmentRepository
	profileRepo    *repository.RiskProfileRepository
	cache          *cache.ProfileCache
	newID          func() string
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	scorer *AssessmentScorer,
	investorRepo *repository.InvestorRepository,
	assessmentRepo *repository.AssessmentRepository,
	profileRepo *repository.RiskProfileRepository,
	profileCache *cache.ProfileCache,
) *ProfileService {
	return &ProfileService{
		scorer:         scorer,
		investorRepo:   investorRepo,
		assessmentRepo: assessmentRepo,
		profileRepo:    profileRepo,
		cache:          profileCache,
		newID:          uuid.NewString,
	}
}

// UpsertInvestor validates and stores an investor's demographics
func (s *ProfileService) UpsertInvestor(ctx context.Context, inv *models.Investor) error {
	var problems []string
	if strings.TrimSpace(inv.ID) == "" {
		problems = append(problems, "id is required")
	}
	if strings.TrimSpace(inv.Name) == "" {
		problems = append(problems, "name is required")
	}
	if inv.Age < 0 {
		problems = append(problems, "age must be non-negative")
	}
	if inv.AnnualIncome.IsNegative() {
		problems = append(problems, "annual_income must be non-negative")
	}
	if _, ok := timeHorizonScores[inv.TimeHorizon]; !ok {
		problems = append(problems, fmt.Sprintf("time_horizon must be one of short, medium, long (got %q)", inv.TimeHorizon))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(problems, "; "))
	}
	return s.investorRepo.Upsert(ctx, inv)
}

// GetInvestor retrieves an investor by ID
func (s *ProfileService) GetInvestor(ctx context.Context, investorID string) (*models.Investor, error) {
	inv, err := s.investorRepo.GetByID(ctx, investorID)
	if errors.Is(err, repository.ErrInvestorNotFound) {
		return nil, fmt.Errorf("%w: investor %s", ErrNotFound, investorID)
	}
	return inv, err
}

// SubmitAssessment scores the responses, builds a new active profile and persists it,
// superseding the investor's previous profile in the same transaction.
func (s *ProfileService) SubmitAssessment(ctx context.Context, investorID string, responses []models.AssessmentResponse) (*models.RiskProfile, error) {
	defer TrackTime("SubmitAssessment", time.Now())

	profile, err := s.submitAssessment(ctx, investorID, responses)
	recordError("SubmitAssessment", err)
	return profile, err
}

func (s *ProfileService) submitAssessment(ctx context.Context, investorID string, responses []models.AssessmentResponse) (*models.RiskProfile, error) {
	score, err := s.scorer.Score(responses)
	if err != nil {
		return nil, err
	}
	inv, err := s.GetInvestor(ctx, investorID)
	if err != nil {
		return nil, err
	}

	assessment := &models.Assessment{
		ID:              s.newID(),
		InvestorID:      investorID,
		Responses:       responses,
		RawScore:        score.RawScore,
		PercentileScore: score.PercentileScore,
		CompletedAt:     s.scorer.now().UTC(),
	}
	profile, err := s.scorer.BuildProfile(inv, assessment)
	if err != nil {
		return nil, err
	}
	profile.ID = s.newID()

	tx, err := s.profileRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.assessmentRepo.Create(ctx, tx, assessment); err != nil {
		return nil, err
	}
	closed, err := s.profileRepo.Supersede(ctx, tx, profile)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.cache.Invalidate(investorID)

	log.Infof("Investor %s assessed as %s (raw score %d, superseded %d profile(s))",
		investorID, profile.RiskCategoryName, score.RawScore, closed)
	return profile, nil
}

// GetActiveProfile returns the investor's active profile, served from cache when fresh
func (s *ProfileService) GetActiveProfile(ctx context.Context, investorID string) (*models.RiskProfile, error) {
	if p, ok := s.cache.Get(investorID); ok {
		return p, nil
	}
	// Taken before the read so a supersession committed meanwhile rejects the fill
	gen := s.cache.Generation(investorID)
	p, err := s.profileRepo.GetActive(ctx, investorID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return nil, fmt.Errorf("%w: no active risk profile for investor %s", ErrNotFound, investorID)
	}
	if err != nil {
		return nil, err
	}
	s.cache.Set(p, gen)
	return p, nil
}

// ProfileHistory returns every profile the investor has held, newest first
func (s *ProfileService) ProfileHistory(ctx context.Context, investorID string) ([]models.RiskProfile, error) {
	profiles, err := s.profileRepo.ListByInvestor(ctx, investorID)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("%w: no risk profiles for investor %s", ErrNotFound, investorID)
	}
	return profiles, nil
}
