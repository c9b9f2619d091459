// internal/scoring/scorer.go
package scoring

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"credit-scoring/internal/common/logger"
)

// The heuristic score is capped before perturbation.
const (
	scoreFloor = 0.0
	scoreCap   = 0.4

	perturbationRange = 0.01
)

// PerturbationSource yields the small random term added to every score.
// It is an interface so tests can pin the value.
type PerturbationSource interface {
	Perturbation() float64
}

// UniformSource draws uniformly from [-perturbationRange, +perturbationRange].
type UniformSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewUniformSource() *UniformSource {
	return &UniformSource{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (s *UniformSource) Perturbation() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()*2*perturbationRange - perturbationRange
}

// FixedSource always returns the same perturbation. Used by tests and by
// deployments that want fully deterministic output.
type FixedSource struct {
	Value float64
}

func (s FixedSource) Perturbation() float64 {
	return s.Value
}

// Scorer maps an applicant record to a default probability using a
// hand-tuned additive heuristic. The production gradient-boosted model and
// its calibrator live outside this service; this heuristic is the stand-in
// behind the same contract.
type Scorer struct {
	perturb PerturbationSource
	logger  logger.Logger
}

func NewScorer(perturb PerturbationSource, log logger.Logger) *Scorer {
	return &Scorer{
		perturb: perturb,
		logger:  log.WithFields(map[string]interface{}{"component": "scorer"}),
	}
}

// Score computes the default probability for one applicant. The raw rule sum
// is clamped to [0, 0.4] and the perturbation is added afterwards, so the
// final probability can land slightly outside that range. Upstream behavior,
// kept for parity.
func (s *Scorer) Score(app Applicant) Prediction {
	factors := deriveFactors(app)

	raw := s.exposureAdjustment(factors) +
		s.ageAdjustment(app.Age) +
		s.employmentAdjustment(app.EmploymentYears) +
		s.contractAdjustment(app.ContractType) +
		s.educationAdjustment(app.Education)

	clamped := clamp(raw, scoreFloor, scoreCap)
	probability := clamped + s.perturb.Perturbation()

	s.logger.Info("score computed", map[string]interface{}{
		"rawScore":        raw,
		"probability":     probability,
		"creditToIncome":  factors.CreditToIncome,
		"annuityToIncome": factors.AnnuityToIncome,
		"debtToIncome":    factors.DebtToIncome,
	})

	return Prediction{
		Probability: probability,
		RawScore:    raw,
		Factors:     factors,
	}
}

func deriveFactors(app Applicant) RiskFactors {
	return RiskFactors{
		CreditToIncome:  app.CreditAmount / app.AnnualIncome,
		AnnuityToIncome: app.Annuity / app.AnnualIncome,
		DebtToIncome:    (app.Annuity * 12) / app.AnnualIncome,
	}
}

// exposureAdjustment scores the two debt-load ratios. Tiers are exclusive
// and boundaries are strict: a credit-to-income of exactly 3.0 takes the
// ">2" tier.
func (s *Scorer) exposureAdjustment(f RiskFactors) float64 {
	score := 0.0

	if f.CreditToIncome > 3 {
		score += 0.08
	} else if f.CreditToIncome > 2 {
		score += 0.05
	} else if f.CreditToIncome > 1 {
		score += 0.03
	}

	if f.DebtToIncome > 0.5 {
		score += 0.06
	} else if f.DebtToIncome > 0.3 {
		score += 0.03
	}

	return score
}

func (s *Scorer) ageAdjustment(age float64) float64 {
	if age < 25 {
		return 0.04
	}
	if age > 60 {
		return 0.02
	}
	return 0.0
}

func (s *Scorer) employmentAdjustment(years float64) float64 {
	if years < 1 {
		return 0.05
	}
	if years < 3 {
		return 0.03
	}
	if years > 10 {
		return -0.02
	}
	return 0.0
}

func (s *Scorer) contractAdjustment(contractType string) float64 {
	if strings.Contains(strings.ToLower(contractType), "revolving") {
		return 0.02
	}
	return 0.0
}

func (s *Scorer) educationAdjustment(education string) float64 {
	switch strings.ToLower(strings.TrimSpace(education)) {
	case "academic degree", "higher education":
		return -0.02
	case "lower secondary":
		return 0.02
	}
	return 0.0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
