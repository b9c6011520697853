package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// EulerAngles represents an orientation as rotations about the x (roll),
// y (pitch), and z (yaw) axes, applied in roll, pitch, yaw order.
type EulerAngles struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// NewZeroEulerAngles returns an EulerAngles with no rotation.
func NewZeroEulerAngles() *EulerAngles {
	return &EulerAngles{}
}

// QuatToEulerAngles converts a rotation unit quaternion to euler angles.
// See the following wikipedia page for the formulas used here:
// https://en.wikipedia.org/wiki/Conversion_between_quaternions_and_Euler_angles
func QuatToEulerAngles(q quat.Number) *EulerAngles {
	w := q.Real
	x := q.Imag
	y := q.Jmag
	z := q.Kmag

	sinPitch := 2 * (w*y - x*z)
	// Clamp against floating point error at the poles
	if sinPitch > 1 {
		sinPitch = 1
	}
	if sinPitch < -1 {
		sinPitch = -1
	}

	return &EulerAngles{
		Roll:  math.Atan2(2*(w*x+y*z), 1-2*(x*x+y*y)),
		Pitch: math.Asin(sinPitch),
		Yaw:   math.Atan2(2*(w*z+y*x), 1-2*(y*y+z*z)),
	}
}

// Quaternion returns the orientation as a unit quaternion.
func (ea *EulerAngles) Quaternion() quat.Number {
	cr := math.Cos(ea.Roll / 2)
	sr := math.Sin(ea.Roll / 2)
	cp := math.Cos(ea.Pitch / 2)
	sp := math.Sin(ea.Pitch / 2)
	cy := math.Cos(ea.Yaw / 2)
	sy := math.Sin(ea.Yaw / 2)

	return quat.Number{
		Real: cr*cp*cy + sr*sp*sy,
		Imag: sr*cp*cy - cr*sp*sy,
		Jmag: cr*sp*cy + sr*cp*sy,
		Kmag: cr*cp*sy - sr*sp*cy,
	}
}
