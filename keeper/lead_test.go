package keeper

import (
	"testing"

	"go.viam.com/test"
)

func TestLeadWindowFIFO(t *testing.T) {
	lp := NewLeadPredictor()
	for _, v := range []float64{1, 2, 3, 4, 5, 6, 7, 8} {
		lp.Push(v)
	}
	test.That(t, lp.Window(), test.ShouldResemble, []float64{3, 4, 5, 6, 7, 8})
}

func TestLeadPredictWarmUp(t *testing.T) {
	lp := NewLeadPredictor()
	// Zeroed window: the velocity term sees the full current position.
	test.That(t, lp.Predict(0.1), test.ShouldAlmostEqual, 0.325, 1e-9)

	// Predict does not advance the window.
	test.That(t, lp.Predict(0.1), test.ShouldAlmostEqual, 0.325, 1e-9)
}

func TestLeadPredictUsesOldest(t *testing.T) {
	lp := NewLeadPredictor()
	for _, v := range []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6} {
		lp.Push(v)
	}
	// oldest is now 0.1
	test.That(t, lp.Predict(0.7), test.ShouldAlmostEqual, 0.7+2.25*0.6, 1e-9)
}

func TestLeadReset(t *testing.T) {
	lp := NewLeadPredictor()
	for i := 0; i < 10; i++ {
		lp.Push(0.2)
	}
	lp.Reset()
	test.That(t, lp.Window(), test.ShouldResemble, make([]float64, 6))
	test.That(t, lp.Predict(0.2), test.ShouldAlmostEqual, 0.65, 1e-9)
}
