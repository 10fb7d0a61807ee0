package revisions

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/nbbackup/internal/common"
)

// ParseEnvelope extracts the integer "revision" field from a JSON-encoded
// board. A missing field, a non-integer value or invalid JSON is
// ErrMalformedInput. Negative and very large values are accepted as long as
// they fit in an int64.
func ParseEnvelope(raw []byte) (int64, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return 0, fmt.Errorf("%w: empty envelope", common.ErrMalformedInput)
	}

	var env struct {
		Revision *json.Number `json:"revision"`
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&env); err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrMalformedInput, err)
	}
	if env.Revision == nil {
		return 0, fmt.Errorf("%w: no revision field", common.ErrMalformedInput)
	}
	n, err := env.Revision.Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: revision %q is not an integer", common.ErrMalformedInput, env.Revision.String())
	}
	return n, nil
}

// FileName returns the snapshot file name for revision.
func FileName(revision int64) string {
	return fmt.Sprintf("rev-%08d.nbx", revision)
}
