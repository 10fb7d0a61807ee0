package tokens

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/nbbackup/internal/common"
)

const (
	// randomBytes of entropy; 256^10 < 36^16 < 256^11.
	randomBytes = 11
	tokenChars  = 16
	groupSize   = 4
)

var tokenPattern = regexp.MustCompile(`^([0-9A-Z]{4}-){3}[0-9A-Z]{4}$`)

// Generate returns a fresh random token such as "A1B2-C3D4-E5F6-G7H8".
func Generate() (string, error) {
	b, err := common.RandomBytes(randomBytes)
	if err != nil {
		return "", err
	}
	return encode(b), nil
}

// encode renders b as base-36, keeps the leading 16 digits, left pads with
// zeros and groups the result in fours.
func encode(b []byte) string {
	s := strings.ToUpper(new(big.Int).SetBytes(b).Text(36))
	if len(s) > tokenChars {
		s = s[:tokenChars]
	}
	s = strings.Repeat("0", tokenChars-len(s)) + s

	groups := make([]string, 0, tokenChars/groupSize)
	for i := 0; i < tokenChars; i += groupSize {
		groups = append(groups, s[i:i+groupSize])
	}
	return strings.Join(groups, "-")
}

// Format returns token unchanged when it has the canonical grouped shape,
// and ErrInvalidFormat otherwise. It does not consult the ledger.
func Format(token string) (string, error) {
	if !tokenPattern.MatchString(token) {
		return "", fmt.Errorf("%w: token %q does not conform to token format", common.ErrInvalidFormat, token)
	}
	return token, nil
}
