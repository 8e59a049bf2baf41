package closedform

import (
	"math"

	"github.com/meenmo/optlib/option"
)

// ParityGap returns call − put − (S·e^{-qT} − K·e^{-rT}) for the European
// pair implied by p. Under put-call parity the gap is zero up to floating-
// point noise; a significant gap in quoted prices indicates an arbitrage or
// an input error.
func ParityGap(p option.Params, callPrice, putPrice float64) float64 {
	forward := p.Spot*math.Exp(-p.Dividend*p.Maturity) -
		p.Strike*math.Exp(-p.Rate*p.Maturity)
	return callPrice - putPrice - forward
}
