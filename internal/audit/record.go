// internal/audit/record.go
package audit

import (
	"time"

	"credit-scoring/internal/scoring"
)

// Record is the audit snapshot of one served prediction. Write-only
// observability data; nothing in the scoring path ever reads it back.
type Record struct {
	RequestID  string             `json:"request_id"`
	Applicant  scoring.Applicant  `json:"applicant"`
	Prediction scoring.Prediction `json:"prediction"`
	CreatedAt  time.Time          `json:"created_at"`
}
