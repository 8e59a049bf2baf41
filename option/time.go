package option

import (
	"time"

	"github.com/meenmo/optlib/utils"
)

// TimeToExpiry converts a valuation date and an expiry date into a year
// fraction on an ACT/365F basis. It returns 0 when expiry is not after the
// valuation date.
func TimeToExpiry(valuation, expiry time.Time) float64 {
	if !expiry.After(valuation) {
		return 0
	}
	return utils.YearFraction(valuation, expiry, "ACT/365F")
}
