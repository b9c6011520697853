// Package spatialmath implements the rigid transforms used to map between the
// camera, marker, and robot coordinate frames.
package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// RigidTransform is a 3D rigid-body pose represented as a 4x4 homogeneous
// matrix. Transforms are immutable once built; composition and inversion
// return new values.
type RigidTransform struct {
	mat mgl64.Mat4
}

// NewZeroTransform returns the identity transform.
func NewZeroTransform() *RigidTransform {
	return &RigidTransform{mgl64.Ident4()}
}

// NewTransformFromPoint returns a transform that is a pure translation to the
// given point.
func NewTransformFromPoint(pt r3.Vector) *RigidTransform {
	return &RigidTransform{mgl64.Translate3D(pt.X, pt.Y, pt.Z)}
}

// NewTransformFromEuler builds a transform from Euler angles and a translation.
// The rotation is composed yaw, then pitch, then roll (Rz * Ry * Rx), with the
// translation left-multiplied on.
func NewTransformFromEuler(ea *EulerAngles, pt r3.Vector) *RigidTransform {
	rot := mgl64.HomogRotate3DZ(ea.Yaw).
		Mul4(mgl64.HomogRotate3DY(ea.Pitch)).
		Mul4(mgl64.HomogRotate3DX(ea.Roll))
	return &RigidTransform{mgl64.Translate3D(pt.X, pt.Y, pt.Z).Mul4(rot)}
}

// NewTransformFromQuaternion builds a transform from a rotation quaternion and
// a translation.
func NewTransformFromQuaternion(q quat.Number, pt r3.Vector) *RigidTransform {
	return NewTransformFromEuler(QuatToEulerAngles(q), pt)
}

// NewTransformFromMatrix wraps a raw homogeneous matrix.
func NewTransformFromMatrix(m mgl64.Mat4) *RigidTransform {
	return &RigidTransform{m}
}

// Compose returns t * other, i.e. other applied first.
func (t *RigidTransform) Compose(other *RigidTransform) *RigidTransform {
	return &RigidTransform{t.mat.Mul4(other.mat)}
}

// Invert returns the inverse transform.
func (t *RigidTransform) Invert() *RigidTransform {
	return &RigidTransform{t.mat.Inv()}
}

// Point returns the translation component.
func (t *RigidTransform) Point() r3.Vector {
	return r3.Vector{X: t.mat.At(0, 3), Y: t.mat.At(1, 3), Z: t.mat.At(2, 3)}
}

// TransformPoint applies the transform to a point.
func (t *RigidTransform) TransformPoint(p r3.Vector) r3.Vector {
	v := t.mat.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// Matrix returns the underlying homogeneous matrix.
func (t *RigidTransform) Matrix() mgl64.Mat4 {
	return t.mat
}

// AlmostEqual reports whether two transforms agree element-wise within eps.
func (t *RigidTransform) AlmostEqual(other *RigidTransform, eps float64) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(t.mat.At(i, j)-other.mat.At(i, j)) > eps {
				return false
			}
		}
	}
	return true
}
