package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/epeers/riskprofile/internal/models"
	"github.com/epeers/riskprofile/internal/reference"
	"github.com/epeers/riskprofile/internal/repository"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// AnalysisService orchestrates the calculation core for a portfolio and, where
// an investor is named, the investor's active risk profile.
type AnalysisService struct {
	profiles         *ProfileService
	ref              *reference.Store
	risk             *RiskCalculator
	concentration    *ConcentrationAnalyzer
	suitability      *SuitabilityEvaluator
	stress           *StressSimulator
	recommender      *RecommendationGenerator
	recRepo          *repository.RecommendationRepository
	defaultBenchmark string
	now              func() time.Time
	newID            func() string
}

// NewAnalysisService creates a new AnalysisService
func NewAnalysisService(
	profiles *ProfileService,
	ref *reference.Store,
	thresholds models.ConcentrationThresholds,
	recRepo *repository.RecommendationRepository,
	defaultBenchmark string,
) *AnalysisService {
	return &AnalysisService{
		profiles:         profiles,
		ref:              ref,
		risk:             NewRiskCalculator(),
		concentration:    NewConcentrationAnalyzer(thresholds),
		suitability:      NewSuitabilityEvaluator(),
		stress:           NewStressSimulator(ref),
		recommender:      NewRecommendationGenerator(),
		recRepo:          recRepo,
		defaultBenchmark: defaultBenchmark,
		now:              time.Now,
		newID:            uuid.NewString,
	}
}

// PortfolioRisk computes the risk metrics of a portfolio against a benchmark.
// An empty benchmark selects the configured default.
func (s *AnalysisService) PortfolioRisk(ctx context.Context, portfolio *models.PortfolioSnapshot, benchmark string) (*models.PortfolioRiskResult, error) {
	defer TrackTime("PortfolioRisk", time.Now())
	if benchmark == "" {
		benchmark = s.defaultBenchmark
	}
	res, err := s.risk.Calculate(ctx, portfolio, benchmark)
	recordError("PortfolioRisk", err)
	return res, err
}

// Concentration measures portfolio concentration. Nil thresholds select the configured ones.
func (s *AnalysisService) Concentration(ctx context.Context, portfolio *models.PortfolioSnapshot, thresholds *models.ConcentrationThresholds) (*models.ConcentrationResult, error) {
	defer TrackTime("Concentration", time.Now())
	res, err := s.concentration.Analyze(ctx, portfolio, thresholds)
	recordError("Concentration", err)
	return res, err
}

// Suitability evaluates the portfolio against the investor's active profile.
// Risk and concentration are computed concurrently.
func (s *AnalysisService) Suitability(ctx context.Context, investorID string, portfolio *models.PortfolioSnapshot) (*models.SuitabilityResult, error) {
	defer TrackTime("Suitability", time.Now())
	ev, err := s.evaluate(ctx, investorID, portfolio, "")
	recordError("Suitability", err)
	if err != nil {
		return nil, err
	}
	return ev.suitability, nil
}

// evaluation holds every per-investor result the recommendation rules read
type evaluation struct {
	profile     *models.RiskProfile
	risk        *models.PortfolioRiskResult
	conc        *models.ConcentrationResult
	suitability *models.SuitabilityResult
}

func (s *AnalysisService) evaluate(ctx context.Context, investorID string, portfolio *models.PortfolioSnapshot, benchmark string) (*evaluation, error) {
	profile, err := s.profiles.GetActiveProfile(ctx, investorID)
	if err != nil {
		return nil, err
	}
	if benchmark == "" {
		benchmark = s.defaultBenchmark
	}

	ev := &evaluation{profile: profile}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ev.risk, err = s.risk.Calculate(gctx, portfolio, benchmark)
		return err
	})
	g.Go(func() error {
		var err error
		ev.conc, err = s.concentration.Analyze(gctx, portfolio, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ev.suitability, err = s.suitability.Evaluate(profile, portfolio, ev.risk, ev.conc)
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// Scenarios lists the current stress scenario catalog
func (s *AnalysisService) Scenarios() *models.ScenarioListResponse {
	snap := s.ref.Snapshot()
	return &models.ScenarioListResponse{
		CatalogVersion: snap.CatalogVersion,
		Scenarios:      snap.Scenarios(),
	}
}

// StressTest runs the requested scenarios against the portfolio. When investorID is
// set and the investor has an active profile, each result is compared to its
// drawdown tolerance.
func (s *AnalysisService) StressTest(ctx context.Context, investorID string, scenarioIDs []string, portfolio *models.PortfolioSnapshot) ([]models.StressImpactResult, error) {
	defer TrackTime("StressTest", time.Now())
	results, err := s.stressTest(ctx, investorID, scenarioIDs, portfolio)
	recordError("StressTest", err)
	return results, err
}

func (s *AnalysisService) stressTest(ctx context.Context, investorID string, scenarioIDs []string, portfolio *models.PortfolioSnapshot) ([]models.StressImpactResult, error) {
	var profile *models.RiskProfile
	if investorID != "" {
		p, err := s.profiles.GetActiveProfile(ctx, investorID)
		switch {
		case err == nil:
			profile = p
		case errors.Is(err, ErrNotFound):
			log.Debugf("No active profile for investor %s, skipping tolerance comparison", investorID)
		default:
			return nil, err
		}
	}
	return s.stress.RunMany(ctx, scenarioIDs, portfolio, profile)
}

// Recommendations runs the full analysis for an investor, generates a recommendation
// bundle and persists it. A nil asOf uses the current time.
func (s *AnalysisService) Recommendations(ctx context.Context, investorID string, portfolio *models.PortfolioSnapshot, benchmark string, asOf *models.AsOfDate) (*models.RecommendationBundle, error) {
	defer TrackTime("Recommendations", time.Now())
	bundle, err := s.recommendations(ctx, investorID, portfolio, benchmark, asOf)
	recordError("Recommendations", err)
	return bundle, err
}

func (s *AnalysisService) recommendations(ctx context.Context, investorID string, portfolio *models.PortfolioSnapshot, benchmark string, asOf *models.AsOfDate) (*models.RecommendationBundle, error) {
	now := s.now()
	if asOf != nil {
		if err := asOf.NotAfter(now); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	ev, err := s.evaluate(ctx, investorID, portfolio, benchmark)
	if err != nil {
		return nil, err
	}

	snap := s.ref.Snapshot()
	ids := make([]string, 0, len(snap.Scenarios()))
	for _, sc := range snap.Scenarios() {
		ids = append(ids, sc.ScenarioID)
	}
	stress, err := s.stress.RunMany(ctx, ids, portfolio, ev.profile)
	if err != nil {
		return nil, err
	}

	when := now
	if asOf != nil {
		when = asOf.Time
	}
	bundle := s.recommender.Generate(RecommendationInput{
		InvestorID:    investorID,
		Risk:          ev.risk,
		Concentration: ev.conc,
		Suitability:   ev.suitability,
		Stress:        stress,
		AsOf:          when,
	})
	bundle.ID = s.newID()
	if err := s.recRepo.Save(ctx, bundle); err != nil {
		return nil, err
	}
	log.Infof("Generated %d recommendation(s) for investor %s", len(bundle.Recommendations), investorID)
	return bundle, nil
}

// LatestRecommendations returns the investor's most recently persisted bundle
func (s *AnalysisService) LatestRecommendations(ctx context.Context, investorID string) (*models.RecommendationBundle, error) {
	bundle, err := s.recRepo.GetLatest(ctx, investorID)
	if errors.Is(err, repository.ErrRecommendationNotFound) {
		return nil, fmt.Errorf("%w: no recommendations for investor %s", ErrNotFound, investorID)
	}
	return bundle, err
}
