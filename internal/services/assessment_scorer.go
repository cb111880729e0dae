package services

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/epeers/riskprofile/internal/models"
	"github.com/epeers/riskprofile/internal/reference"
	"github.com/shopspring/decimal"
)

// Reference magnitudes for the capacity score: each contributes up to 50 points
var (
	capacityNetWorthReference = decimal.NewFromInt(1_000_000)
	capacityIncomeReference   = decimal.NewFromInt(300_000)
)

const maxToleranceJitter = 5

var timeHorizonScores = map[models.TimeHorizon]float64{
	models.TimeHorizonShort:  25,
	models.TimeHorizonMedium: 50,
	models.TimeHorizonLong:   75,
}

// ScoreResult is the outcome of scoring a set of questionnaire responses
type ScoreResult struct {
	RawScore        int
	MaxScore        int
	PercentileScore float64
}

// AssessmentScorer turns questionnaire answers into a raw score and, combined with
// investor demographics, into a risk profile.
type AssessmentScorer struct {
	ref        *reference.Store
	now        func() time.Time
	jitter     bool
	jitterSeed int64
}

// ScorerOption configures an AssessmentScorer
type ScorerOption func(*AssessmentScorer)

// WithToleranceJitter enables a ±5 adjustment of the tolerance score. The adjustment
// is drawn from a source seeded with seed and the investor ID, so the same inputs
// always yield the same profile.
func WithToleranceJitter(seed int64) ScorerOption {
	return func(s *AssessmentScorer) {
		s.jitter = true
		s.jitterSeed = seed
	}
}

// WithClock overrides the clock used for ValidFrom
func WithClock(now func() time.Time) ScorerOption {
	return func(s *AssessmentScorer) {
		s.now = now
	}
}

// NewAssessmentScorer creates a new AssessmentScorer
func NewAssessmentScorer(ref *reference.Store, opts ...ScorerOption) *AssessmentScorer {
	s := &AssessmentScorer{
		ref: ref,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score sums the option scores of the responses and normalizes against the
// questionnaire maximum. Every response is validated before anything is summed.
func (s *AssessmentScorer) Score(responses []models.AssessmentResponse) (*ScoreResult, error) {
	if len(responses) == 0 {
		return nil, fmt.Errorf("%w: no questionnaire responses", ErrValidation)
	}
	q := s.ref.Snapshot().Questionnaire

	answered := make(map[string]struct{}, len(responses))
	scores := make([]int, 0, len(responses))
	for i, r := range responses {
		if _, dup := answered[r.QuestionID]; dup {
			return nil, fmt.Errorf("%w: response[%d]: question %s answered more than once", ErrValidation, i, r.QuestionID)
		}
		answered[r.QuestionID] = struct{}{}

		opt, err := q.Lookup(r.QuestionID, r.OptionID)
		if err != nil {
			return nil, fmt.Errorf("%w: response[%d]: %v", ErrValidation, i, err)
		}
		scores = append(scores, opt.Score)
	}

	raw := 0
	for _, sc := range scores {
		raw += sc
	}
	return &ScoreResult{
		RawScore:        raw,
		MaxScore:        q.MaxScore(),
		PercentileScore: round2(float64(raw) / float64(q.MaxScore()) * 100),
	}, nil
}

// Classify maps a raw score to its risk category and the category's allocation and limits
func (s *AssessmentScorer) Classify(rawScore int) (models.RiskCategory, reference.CategoryProfile) {
	category := reference.CategoryForScore(rawScore)
	profile, _ := reference.ProfileForCategory(category)
	return category, profile
}

// BuildProfile derives a complete, active risk profile from a scored assessment.
// The returned profile has no ID; the caller assigns one when persisting it.
func (s *AssessmentScorer) BuildProfile(investor *models.Investor, assessment *models.Assessment) (*models.RiskProfile, error) {
	if investor == nil {
		return nil, fmt.Errorf("%w: investor is required", ErrValidation)
	}
	if assessment == nil {
		return nil, fmt.Errorf("%w: assessment is required", ErrValidation)
	}
	if assessment.InvestorID != "" && assessment.InvestorID != investor.ID {
		return nil, fmt.Errorf("%w: assessment %s belongs to investor %s, not %s",
			ErrValidation, assessment.ID, assessment.InvestorID, investor.ID)
	}
	horizonScore, ok := timeHorizonScores[investor.TimeHorizon]
	if !ok {
		return nil, fmt.Errorf("%w: unknown time horizon %q", ErrValidation, investor.TimeHorizon)
	}

	category, catProfile := s.Classify(assessment.RawScore)
	composite := assessment.PercentileScore
	tolerance := clamp(composite+s.toleranceJitter(investor.ID), 0, 100)

	return &models.RiskProfile{
		InvestorID:            investor.ID,
		AssessmentID:          assessment.ID,
		RiskCategory:          category,
		RiskCategoryName:      category.String(),
		CompositeScore:        composite,
		ToleranceScore:        tolerance,
		CapacityScore:         CapacityScore(investor.LiquidNetWorth, investor.AnnualIncome),
		TimeHorizonScore:      horizonScore,
		TimeHorizon:           investor.TimeHorizon,
		RecommendedAllocation: catProfile.Allocation,
		RiskLimits:            catProfile.Limits,
		IsActive:              true,
		ValidFrom:             s.now().UTC(),
	}, nil
}

func (s *AssessmentScorer) toleranceJitter(investorID string) float64 {
	if !s.jitter {
		return 0
	}
	h := fnv.New64a()
	h.Write([]byte(investorID))
	rng := rand.New(rand.NewSource(s.jitterSeed ^ int64(h.Sum64())))
	return float64(rng.Intn(2*maxToleranceJitter+1) - maxToleranceJitter)
}

// CapacityScore is a bounded linear function of liquid net worth and income,
// each normalized against its reference magnitude.
func CapacityScore(liquidNetWorth, annualIncome decimal.Decimal) float64 {
	worth := liquidNetWorth.Div(capacityNetWorthReference).InexactFloat64() * 50
	income := annualIncome.Div(capacityIncomeReference).InexactFloat64() * 50
	return round2(clamp(worth+income, 0, 100))
}

// Supersede closes a profile's validity interval. The input is not modified.
func Supersede(old *models.RiskProfile, now time.Time) *models.RiskProfile {
	closed := *old
	validTo := now.UTC()
	closed.IsActive = false
	closed.ValidTo = &validTo
	return &closed
}
