// internal/scoring/validator.go
package scoring

import (
	"fmt"

	"credit-scoring/internal/common/errors"
)

// ValidateRequest checks that the parsed request body carries a data object
// with every required applicant field present. The check is deliberately
// shallow: presence of the key is enough, value types are not inspected
// here. The intake form owns enum/type correctness; the first missing key is
// reported by name.
func ValidateRequest(body map[string]interface{}) (map[string]interface{}, error) {
	raw, ok := body["data"]
	if !ok {
		return nil, errors.NewMissingDataFieldError()
	}

	data, ok := raw.(map[string]interface{})
	if !ok {
		return nil, errors.NewMissingDataFieldError()
	}

	for _, field := range RequiredFields {
		if _, exists := data[field]; !exists {
			return nil, errors.NewMissingFieldError(field)
		}
	}

	return data, nil
}

// DecodeApplicant converts a validated data payload into a typed applicant
// record. Numeric fields are coerced from their JSON representation; a
// non-positive annual income is rejected here so the ratio math downstream
// never divides by zero.
func DecodeApplicant(data map[string]interface{}) (Applicant, error) {
	var app Applicant
	var err error

	if app.AnnualIncome, err = toFloat(data[FieldAnnualIncome]); err != nil {
		return Applicant{}, errors.NewInvalidFieldError(FieldAnnualIncome, err.Error())
	}
	if app.CreditAmount, err = toFloat(data[FieldCreditAmount]); err != nil {
		return Applicant{}, errors.NewInvalidFieldError(FieldCreditAmount, err.Error())
	}
	if app.Annuity, err = toFloat(data[FieldAnnuity]); err != nil {
		return Applicant{}, errors.NewInvalidFieldError(FieldAnnuity, err.Error())
	}
	if app.Age, err = toFloat(data[FieldAge]); err != nil {
		return Applicant{}, errors.NewInvalidFieldError(FieldAge, err.Error())
	}
	if app.EmploymentYears, err = toFloat(data[FieldEmploymentYears]); err != nil {
		return Applicant{}, errors.NewInvalidFieldError(FieldEmploymentYears, err.Error())
	}

	app.Gender, _ = data[FieldGender].(string)
	app.ContractType, _ = data[FieldContractType].(string)
	app.Education, _ = data[FieldEducation].(string)

	if app.AnnualIncome <= 0 {
		return Applicant{}, errors.NewInvalidFieldError(FieldAnnualIncome,
			fmt.Sprintf("annual income must be positive, got %v", app.AnnualIncome))
	}

	return app, nil
}

func toFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("expected number, got %T", value)
	}
}
