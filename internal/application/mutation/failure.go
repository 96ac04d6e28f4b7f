package mutation

import "videovault/internal/ports"

// FixedRate injects failures with a constant probability
type FixedRate float64

// Rate returns r clamped to [0,1]
func (r FixedRate) Rate() float64 {
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	default:
		return float64(r)
	}
}

var _ ports.FailureInjector = FixedRate(0)

// injectFailure draws once and reports whether the item must be failed
func (c *Coordinator) injectFailure() bool {
	rate := c.failures.Rate()
	if rate <= 0 {
		return false
	}
	return c.random() < rate
}
