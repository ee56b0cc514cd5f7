package services

import (
	"strconv"
	"strings"
)

var symbolicPriceLevels = map[string]int{
	"FREE":           0,
	"INEXPENSIVE":    1,
	"MODERATE":       2,
	"EXPENSIVE":      3,
	"VERY_EXPENSIVE": 4,
}

// NormalizePriceLevel maps provider price levels onto 0..4. Accepts the
// symbolic names with or without the PRICE_LEVEL_ prefix and the digits 0-4.
// Anything else, including PRICE_LEVEL_UNSPECIFIED, is unknown (nil).
func NormalizePriceLevel(raw string) *int {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return nil
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 4 {
			return nil
		}
		return &n
	}

	if level, ok := symbolicPriceLevels[strings.TrimPrefix(s, "PRICE_LEVEL_")]; ok {
		return &level
	}
	return nil
}
