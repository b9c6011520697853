// Package transform converts camera-frame ball observations into the robot
// frame using a fiducial-marker detection and fixed calibration offsets.
package transform

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"github.com/strikerlabs/goalkeeper/spatialmath"
)

// Sentinel errors for input that must suppress output rather than produce a
// stale or garbage position.
var (
	ErrInvalidObservation = errors.New("observation not marked valid")
	ErrNoDetection        = errors.New("no fiducial detection available")
)

// BallObservation is a ball position reported by perception, in the camera
// frame.
type BallObservation struct {
	X     float64
	Y     float64
	Z     float64
	Valid bool
}

// Point returns the observation as a camera-frame point.
func (o BallObservation) Point() r3.Vector {
	return r3.Vector{X: o.X, Y: o.Y, Z: o.Z}
}

// FiducialDetection is a marker pose relative to the camera.
type FiducialDetection struct {
	Position    r3.Vector
	Orientation quat.Number
}

// FirstDetection returns the first entry of a detection sequence; only the
// first marker is ever used. An empty sequence yields ErrNoDetection so the
// caller skips the update instead of faulting.
func FirstDetection(detections []FiducialDetection) (FiducialDetection, error) {
	if len(detections) == 0 {
		return FiducialDetection{}, ErrNoDetection
	}
	return detections[0], nil
}

// A Transformer maps camera-frame ball observations into the robot frame. It
// holds only fixed calibration; the fiducial detection is passed in with every
// observation so a stale detection can never be silently reused.
type Transformer struct {
	markerToRobot *spatialmath.RigidTransform
	// cameraToRobot is measured during calibration but takes no part in the
	// composition; the live marker detection supersedes it.
	cameraToRobot *spatialmath.RigidTransform
	lateralOffset float64
}

// NewTransformer returns a Transformer with the given calibration.
func NewTransformer(markerToRobot, cameraToRobot *spatialmath.RigidTransform, lateralOffset float64) *Transformer {
	return &Transformer{
		markerToRobot: markerToRobot,
		cameraToRobot: cameraToRobot,
		lateralOffset: lateralOffset,
	}
}

// Transform maps a ball observation into the robot frame using the given
// fiducial detection. Observations not marked valid produce no output.
func (t *Transformer) Transform(det FiducialDetection, ball BallObservation) (r3.Vector, error) {
	if !ball.Valid {
		return r3.Vector{}, ErrInvalidObservation
	}

	markerInCamera := spatialmath.NewTransformFromEuler(
		spatialmath.QuatToEulerAngles(det.Orientation), det.Position)
	cameraInMarker := markerInCamera.Invert()
	ballInCamera := spatialmath.NewTransformFromPoint(ball.Point())

	pos := t.markerToRobot.Compose(cameraInMarker).Compose(ballInCamera).Point()

	// Axis corrections into the robot's frame convention: the lateral axis is
	// mirrored and offset, the vertical axis is mirrored.
	pos.Y = -pos.Y + t.lateralOffset
	pos.Z = -pos.Z
	return pos, nil
}
