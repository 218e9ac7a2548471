package parse

import (
	"fmt"
	"strconv"
	"strings"
)

// LotNumber extracts the leading numeric component of an upstream lot id,
// e.g. "020_uw" -> 20, "67-ramp" -> 67, "46" -> 46. Everything after the
// first non-digit is ignored.
func LotNumber(lotID string) (int, error) {
	s := strings.TrimSpace(lotID)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("lot id %q has no leading numeric component", lotID)
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, fmt.Errorf("lot id %q: %w", lotID, err)
	}
	return n, nil
}
