package service

// Estimator produces the synthetic progress curve shown while a lookup is
// in flight. Each tick closes a fixed fraction of the remaining distance
// to 100, so progress rises fast at first and flattens out, and it never
// reaches the cap on its own: only resolution reports 100
type Estimator struct {
	cur    float64
	factor float64
	cap    float64
}

// NewEstimator builds an estimator advancing by factor of the remaining
// gap per tick, capped at cap
func NewEstimator(factor, cap float64) *Estimator {
	return &Estimator{factor: factor, cap: cap}
}

// Tick advances the curve one step and returns the new value
func (e *Estimator) Tick() float64 {
	e.cur += (100 - e.cur) * e.factor
	if e.cur > e.cap {
		e.cur = e.cap
	}
	return e.cur
}

// Current returns the value without advancing
func (e *Estimator) Current() float64 { return e.cur }

// Reset rewinds the curve to zero for a fresh attempt
func (e *Estimator) Reset() { e.cur = 0 }
