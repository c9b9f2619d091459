// internal/scoring/classifier.go
package scoring

import "fmt"

// Bucket labels, ordered from lowest to highest risk.
const (
	BucketA = "A"
	BucketB = "B"
	BucketC = "C"
	BucketD = "D"
)

// Cutoffs is the ordered triple of probability boundaries separating the
// risk buckets. Loaded once at startup and passed by value; safe for
// concurrent use.
type Cutoffs struct {
	A float64 `json:"A"`
	B float64 `json:"B"`
	C float64 `json:"C"`
}

// Validate enforces the strict ordering A < B < C. The boundaries are
// probabilities, so they must also sit in [0, 1].
func (c Cutoffs) Validate() error {
	if !(c.A < c.B && c.B < c.C) {
		return fmt.Errorf("cutoffs must be strictly increasing: A=%v B=%v C=%v", c.A, c.B, c.C)
	}
	if c.A < 0 || c.C > 1 {
		return fmt.Errorf("cutoffs must lie in [0, 1]: A=%v C=%v", c.A, c.C)
	}
	return nil
}

// Bucket maps a probability to the first bucket whose upper cutoff is at
// least the probability. A probability exactly on a cutoff takes the safer
// bucket. Anything above C, including out-of-range values, is D.
func (c Cutoffs) Bucket(probability float64) string {
	switch {
	case probability <= c.A:
		return BucketA
	case probability <= c.B:
		return BucketB
	case probability <= c.C:
		return BucketC
	default:
		return BucketD
	}
}
