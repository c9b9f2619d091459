// internal/scoring/scorer_test.go
package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credit-scoring/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestScorer(t *testing.T, perturbation float64) *Scorer {
	return NewScorer(FixedSource{Value: perturbation}, logger.NewTestLogger(t))
}

// baselineApplicant carries no risk signal: every rule stays neutral.
func baselineApplicant() Applicant {
	return Applicant{
		AnnualIncome:    100000,
		CreditAmount:    50000, // credit-to-income 0.5
		Annuity:         2000,  // debt-to-income 0.24
		Age:             40,
		EmploymentYears: 5,
		Gender:          "M",
		ContractType:    "Cash loans",
		Education:       "Secondary / secondary special",
	}
}

// ==========================
// Rule Table Tests
// ==========================

func TestScorer_Score_RuleAdjustments(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(app *Applicant)
		expected float64 // raw score relative to the zero baseline
	}{
		{
			name:     "baseline applicant scores zero",
			mutate:   func(app *Applicant) {},
			expected: 0.0,
		},
		{
			name: "credit-to-income above 3",
			mutate: func(app *Applicant) {
				app.CreditAmount = 350000
			},
			expected: 0.08,
		},
		{
			name: "credit-to-income above 2",
			mutate: func(app *Applicant) {
				app.CreditAmount = 250000
			},
			expected: 0.05,
		},
		{
			name: "credit-to-income above 1",
			mutate: func(app *Applicant) {
				app.CreditAmount = 150000
			},
			expected: 0.03,
		},
		{
			name: "credit-to-income exactly 3 takes the middle tier",
			mutate: func(app *Applicant) {
				app.CreditAmount = 300000
			},
			expected: 0.05,
		},
		{
			name: "debt-to-income above 0.5",
			mutate: func(app *Applicant) {
				app.Annuity = 5000 // 60000/100000
			},
			expected: 0.06,
		},
		{
			name: "debt-to-income above 0.3",
			mutate: func(app *Applicant) {
				app.Annuity = 3000 // 36000/100000
			},
			expected: 0.03,
		},
		{
			name: "age below 25",
			mutate: func(app *Applicant) {
				app.Age = 22
			},
			expected: 0.04,
		},
		{
			name: "age above 60",
			mutate: func(app *Applicant) {
				app.Age = 65
			},
			expected: 0.02,
		},
		{
			name: "employment under a year",
			mutate: func(app *Applicant) {
				app.EmploymentYears = 0
			},
			expected: 0.05,
		},
		{
			name: "employment under three years",
			mutate: func(app *Applicant) {
				app.EmploymentYears = 2
			},
			expected: 0.03,
		},
		{
			name: "long employment earns a discount",
			mutate: func(app *Applicant) {
				app.EmploymentYears = 15
			},
			expected: -0.02,
		},
		{
			name: "revolving contract",
			mutate: func(app *Applicant) {
				app.ContractType = "Revolving loans"
			},
			expected: 0.02,
		},
		{
			name: "higher education discount",
			mutate: func(app *Applicant) {
				app.Education = "Higher education"
			},
			expected: -0.02,
		},
		{
			name: "academic degree discount",
			mutate: func(app *Applicant) {
				app.Education = "Academic degree"
			},
			expected: -0.02,
		},
		{
			name: "lower secondary surcharge",
			mutate: func(app *Applicant) {
				app.Education = "Lower secondary"
			},
			expected: 0.02,
		},
		{
			name: "incomplete higher is neutral",
			mutate: func(app *Applicant) {
				app.Education = "Incomplete higher"
			},
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer := createTestScorer(t, 0)

			app := baselineApplicant()
			tt.mutate(&app)

			result := scorer.Score(app)
			assert.InDelta(t, tt.expected, result.RawScore, 1e-9)
			// The clamp floors negative raw sums before the (zero) perturbation.
			assert.InDelta(t, clamp(tt.expected, scoreFloor, scoreCap), result.Probability, 1e-9)
		})
	}
}

func TestScorer_Score_RulesAccumulate(t *testing.T) {
	scorer := createTestScorer(t, 0)

	// Young, newly employed, revolving credit, lower secondary education:
	// 0.04 + 0.05 + 0.02 + 0.02 stacked on a neutral financial profile.
	app := Applicant{
		AnnualIncome:    100000,
		CreditAmount:    50000,
		Annuity:         2000,
		Age:             20,
		EmploymentYears: 0,
		Gender:          "M",
		ContractType:    "Revolving loans",
		Education:       "Lower secondary",
	}

	result := scorer.Score(app)
	assert.InDelta(t, 0.13, result.RawScore, 1e-9)

	baseline := scorer.Score(baselineApplicant())
	assert.Greater(t, result.Probability, baseline.Probability)
}

func TestScorer_Score_ReferenceApplicant(t *testing.T) {
	scorer := createTestScorer(t, 0)

	app := Applicant{
		AnnualIncome:    147150,
		CreditAmount:    599025,
		Annuity:         27108,
		Age:             35,
		EmploymentYears: 5,
		Gender:          "F",
		ContractType:    "Cash loans",
		Education:       "Higher education",
	}

	result := scorer.Score(app)

	// credit-to-income 4.07 (+0.08), debt-to-income 2.21 (+0.06),
	// higher education (-0.02); age and employment stay neutral.
	assert.InDelta(t, 4.0709, result.Factors.CreditToIncome, 1e-4)
	assert.InDelta(t, 2.2106, result.Factors.DebtToIncome, 1e-4)
	assert.InDelta(t, 0.12, result.RawScore, 1e-9)
	assert.InDelta(t, 0.12, result.Probability, 1e-9)
}

// ==========================
// Clamp And Perturbation
// ==========================

func TestScorer_Score_ClampsToCap(t *testing.T) {
	scorer := createTestScorer(t, 0)

	// Every surcharge at once sums to 0.27, still under the cap, so the rule
	// table alone cannot exceed it; verify the clamp helper directly.
	assert.Equal(t, 0.4, clamp(0.55, scoreFloor, scoreCap))
	assert.Equal(t, 0.0, clamp(-0.02, scoreFloor, scoreCap))
	assert.Equal(t, 0.25, clamp(0.25, scoreFloor, scoreCap))

	app := baselineApplicant()
	app.Education = "Higher education"
	app.EmploymentYears = 15

	// Raw sum is -0.04; the clamp floors the pre-perturbation score at zero.
	result := scorer.Score(app)
	assert.InDelta(t, -0.04, result.RawScore, 1e-9)
	assert.InDelta(t, 0.0, result.Probability, 1e-9)
}

// The perturbation lands after the clamp, so the final probability can sit
// just outside [0, 0.4]. Upstream quirk kept on purpose.
func TestScorer_Score_PerturbationAppliedAfterClamp(t *testing.T) {
	app := baselineApplicant()
	app.Education = "Higher education"
	app.EmploymentYears = 15 // raw -0.04, clamped to 0

	scorer := createTestScorer(t, -0.01)
	result := scorer.Score(app)
	assert.InDelta(t, -0.01, result.Probability, 1e-9)
	assert.Less(t, result.Probability, 0.0)
}

func TestScorer_Score_DeterministicWithFixedSource(t *testing.T) {
	scorer := createTestScorer(t, 0.005)
	app := baselineApplicant()
	app.CreditAmount = 250000

	first := scorer.Score(app)
	second := scorer.Score(app)

	assert.Equal(t, first.Probability, second.Probability)
	assert.Equal(t, first.RawScore, second.RawScore)
	assert.Equal(t, first.Factors, second.Factors)
}

func TestUniformSource_StaysInRange(t *testing.T) {
	source := NewUniformSource()
	for i := 0; i < 1000; i++ {
		p := source.Perturbation()
		require.GreaterOrEqual(t, p, -perturbationRange)
		require.LessOrEqual(t, p, perturbationRange)
	}
}

// ==========================
// Inert Inputs
// ==========================

func TestScorer_Score_GenderHasNoEffect(t *testing.T) {
	scorer := createTestScorer(t, 0)

	male := baselineApplicant()
	female := baselineApplicant()
	female.Gender = "F"

	assert.Equal(t, scorer.Score(male).Probability, scorer.Score(female).Probability)
}

func TestScorer_Score_AnnuityToIncomeComputedButUnscored(t *testing.T) {
	scorer := createTestScorer(t, 0)

	app := baselineApplicant()
	result := scorer.Score(app)
	assert.InDelta(t, 0.02, result.Factors.AnnuityToIncome, 1e-9)
	// The ratio is reported but contributes nothing to the raw score.
	assert.InDelta(t, 0.0, result.RawScore, 1e-9)
}
