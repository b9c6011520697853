package keeper

import (
	"gonum.org/v1/gonum/interp"

	"github.com/strikerlabs/goalkeeper/arm"
)

const (
	// flickJoint gets a fixed offset when the ball is close along the depth
	// axis, producing the flick posture.
	flickJoint     = 4
	flickOffset    = -0.5 // radians
	proximityDepth = -0.6
)

// HomeJoints is the fixed home configuration published by the reset command,
// matching the solver's centered posture.
var HomeJoints = []float64{-1.05, -1.22, 1.60, -1.80, -1.57, 0}

// solverTable maps lateral target positions to measured joint configurations.
// The values are calibration data recorded against the physical goal.
var solverTable = []struct {
	y      float64
	joints [arm.NumJoints]float64
}{
	{-0.30, [arm.NumJoints]float64{-0.85, -1.40, 1.85, -1.95, -1.00, 0}},
	{-0.15, [arm.NumJoints]float64{-0.95, -1.30, 1.70, -1.85, -1.25, 0}},
	{0.00, [arm.NumJoints]float64{-1.05, -1.22, 1.60, -1.80, -1.57, 0}},
	{0.15, [arm.NumJoints]float64{-1.15, -1.30, 1.70, -1.85, -1.90, 0}},
	{0.30, [arm.NumJoints]float64{-1.25, -1.40, 1.85, -1.95, -2.15, 0}},
}

// A JointSolver maps a lateral target position to a six-joint configuration by
// interpolating the calibration table.
type JointSolver struct {
	preds      [arm.NumJoints]interp.PiecewiseLinear
	minY, maxY float64
}

// NewJointSolver fits the interpolators from the calibration table.
func NewJointSolver() (*JointSolver, error) {
	xs := make([]float64, len(solverTable))
	for i, row := range solverTable {
		xs[i] = row.y
	}
	js := &JointSolver{minY: xs[0], maxY: xs[len(xs)-1]}
	for j := 0; j < arm.NumJoints; j++ {
		ys := make([]float64, len(solverTable))
		for i, row := range solverTable {
			ys[i] = row.joints[j]
		}
		if err := js.preds[j].Fit(xs, ys); err != nil {
			return nil, err
		}
	}
	return js, nil
}

// Solve returns the joint configuration for the given lateral target. Targets
// outside the table clamp to the nearest bound. If the ball is closer than
// proximityDepth along the depth axis, the flick offset is applied.
func (js *JointSolver) Solve(targetY, proximityX float64) []float64 {
	y := targetY
	if y < js.minY {
		y = js.minY
	}
	if y > js.maxY {
		y = js.maxY
	}

	out := make([]float64, arm.NumJoints)
	for j := 0; j < arm.NumJoints; j++ {
		out[j] = js.preds[j].Predict(y)
	}
	if proximityX < proximityDepth {
		out[flickJoint] += flickOffset
	}
	return out
}
