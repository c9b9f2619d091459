// internal/scoring/applicant.go
package scoring

// Field names of the applicant payload, as sent by the intake form.
const (
	FieldAnnualIncome    = "annual_income"
	FieldCreditAmount    = "credit_amount"
	FieldAnnuity         = "annuity"
	FieldAge             = "age"
	FieldEmploymentYears = "employment_years"
	FieldGender          = "gender"
	FieldContractType    = "contract_type"
	FieldEducation       = "education"
)

// RequiredFields lists every key the data payload must carry, in the order
// they are reported when missing.
var RequiredFields = []string{
	FieldAnnualIncome,
	FieldCreditAmount,
	FieldAnnuity,
	FieldAge,
	FieldEmploymentYears,
	FieldGender,
	FieldContractType,
	FieldEducation,
}

// Applicant is a single loan applicant record. Gender is accepted but has no
// effect on the score.
type Applicant struct {
	AnnualIncome    float64 `json:"annual_income"`
	CreditAmount    float64 `json:"credit_amount"`
	Annuity         float64 `json:"annuity"`
	Age             float64 `json:"age"`
	EmploymentYears float64 `json:"employment_years"`
	Gender          string  `json:"gender"`
	ContractType    string  `json:"contract_type"`
	Education       string  `json:"education"`
}

// RiskFactors carries the ratios derived from an applicant record. They are
// logged and persisted for observability; AnnuityToIncome never enters the
// score.
type RiskFactors struct {
	CreditToIncome  float64 `json:"credit_to_income"`
	AnnuityToIncome float64 `json:"annuity_to_income"`
	DebtToIncome    float64 `json:"debt_to_income"`
}

// Prediction is the outcome of scoring and bucketing one applicant.
type Prediction struct {
	Probability float64     `json:"probability"`
	Bucket      string      `json:"bucket"`
	RawScore    float64     `json:"raw_score"`
	Factors     RiskFactors `json:"factors"`
}
