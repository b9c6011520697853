// Package keeper implements the goalkeeper motion controller: lead-compensated
// ball tracking, joint lookup, score keeping, and discrete command dispatch.
package keeper

const (
	// leadDepth is the number of lateral samples kept for lead prediction.
	leadDepth = 6
	// leadGain approximates ball velocity over the window's time span.
	leadGain = 2.25
)

// A LeadPredictor computes a lead-compensated lateral target from a fixed-depth
// history of recent positions.
type LeadPredictor struct {
	window []float64
}

// NewLeadPredictor returns a predictor with a zeroed window. The first few
// predictions transiently underestimate velocity until the window fills;
// callers accept this warm-up rather than special-casing it.
func NewLeadPredictor() *LeadPredictor {
	return &LeadPredictor{window: make([]float64, leadDepth)}
}

// Predict returns the lead-compensated target for the current position. It
// does not advance the window.
func (lp *LeadPredictor) Predict(y float64) float64 {
	return y + leadGain*(y-lp.window[0])
}

// Push advances the window: the new sample is appended and the oldest dropped.
func (lp *LeadPredictor) Push(y float64) {
	lp.window = append(lp.window[1:], y)
}

// Reset zeroes the window.
func (lp *LeadPredictor) Reset() {
	for i := range lp.window {
		lp.window[i] = 0
	}
}

// Window returns a copy of the current window, oldest first.
func (lp *LeadPredictor) Window() []float64 {
	out := make([]float64, len(lp.window))
	copy(out, lp.window)
	return out
}
