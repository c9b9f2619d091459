// internal/audit/store.go
package audit

import (
	"context"
	"database/sql"
	"fmt"

	"credit-scoring/internal/common/logger"
)

const insertPredictionQuery = `
	INSERT INTO predictions (
		request_id, annual_income, credit_amount, annuity, age,
		employment_years, gender, contract_type, education,
		credit_to_income, annuity_to_income, debt_to_income,
		raw_score, probability, bucket, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

// Store persists prediction records to Postgres.
type Store struct {
	db     *sql.DB
	logger logger.Logger
}

func NewStore(db *sql.DB, log logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "audit-store"}),
	}
}

// Record inserts one prediction row. Callers treat failures as best-effort:
// the error is returned for logging but never surfaced to the API caller.
func (s *Store) Record(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx, insertPredictionQuery,
		rec.RequestID,
		rec.Applicant.AnnualIncome,
		rec.Applicant.CreditAmount,
		rec.Applicant.Annuity,
		rec.Applicant.Age,
		rec.Applicant.EmploymentYears,
		rec.Applicant.Gender,
		rec.Applicant.ContractType,
		rec.Applicant.Education,
		rec.Prediction.Factors.CreditToIncome,
		rec.Prediction.Factors.AnnuityToIncome,
		rec.Prediction.Factors.DebtToIncome,
		rec.Prediction.RawScore,
		rec.Prediction.Probability,
		rec.Prediction.Bucket,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert prediction: %w", err)
	}

	s.logger.Debug("prediction recorded", map[string]interface{}{
		"requestId": rec.RequestID,
		"bucket":    rec.Prediction.Bucket,
	})
	return nil
}
