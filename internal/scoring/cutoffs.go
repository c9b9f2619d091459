// internal/scoring/cutoffs.go
package scoring

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"

	"credit-scoring/internal/common/errors"
)

// cutoffsSchema describes the static cutoff resource. Validated before
// decoding so a malformed file fails startup with a field-level message
// instead of a zero-valued struct.
const cutoffsSchema = `{
	"type": "object",
	"properties": {
		"A": {"type": "number", "minimum": 0, "maximum": 1},
		"B": {"type": "number", "minimum": 0, "maximum": 1},
		"C": {"type": "number", "minimum": 0, "maximum": 1}
	},
	"required": ["A", "B", "C"]
}`

// LoadCutoffs reads the cutoff triple from a static JSON file and asserts
// its invariants. Called once at startup; the result is passed around by
// value afterwards.
func LoadCutoffs(path string) (Cutoffs, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Cutoffs{}, errors.NewCutoffConfigError(fmt.Sprintf("read %s: %v", path, err))
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(cutoffsSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return Cutoffs{}, errors.NewCutoffConfigError(fmt.Sprintf("validate %s: %v", path, err))
	}
	if !result.Valid() {
		details := ""
		for _, desc := range result.Errors() {
			if details != "" {
				details += "; "
			}
			details += desc.String()
		}
		return Cutoffs{}, errors.NewCutoffConfigError(details)
	}

	var cutoffs Cutoffs
	if err := json.Unmarshal(raw, &cutoffs); err != nil {
		return Cutoffs{}, errors.NewCutoffConfigError(fmt.Sprintf("decode %s: %v", path, err))
	}

	if err := cutoffs.Validate(); err != nil {
		return Cutoffs{}, errors.NewCutoffConfigError(err.Error())
	}

	return cutoffs, nil
}
