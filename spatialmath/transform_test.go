package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

const floatEpsilon = 1e-9

func TestTransformRoundTrip(t *testing.T) {
	cases := []struct {
		ea *EulerAngles
		pt r3.Vector
	}{
		{NewZeroEulerAngles(), r3.Vector{}},
		{NewZeroEulerAngles(), r3.Vector{X: 1, Y: -2, Z: 3}},
		{&EulerAngles{Roll: math.Pi / 4}, r3.Vector{X: 0.5}},
		{&EulerAngles{Roll: 0.3, Pitch: -0.7, Yaw: 1.9}, r3.Vector{X: -1.2, Y: 0.1, Z: 0.3}},
		{&EulerAngles{Roll: -2.1, Pitch: 1.2, Yaw: -3.0}, r3.Vector{X: 4, Y: 5, Z: -6}},
	}
	for _, c := range cases {
		tf := NewTransformFromEuler(c.ea, c.pt)
		ident := tf.Compose(tf.Invert())
		test.That(t, ident.AlmostEqual(NewZeroTransform(), 1e-8), test.ShouldBeTrue)
	}
}

func TestTransformAssociativity(t *testing.T) {
	a := NewTransformFromEuler(&EulerAngles{Roll: 0.2, Pitch: 0.4, Yaw: -0.9}, r3.Vector{X: 1, Y: 2, Z: 3})
	b := NewTransformFromEuler(&EulerAngles{Roll: -1.1, Yaw: 0.5}, r3.Vector{X: -0.2, Z: 0.8})
	c := NewTransformFromEuler(&EulerAngles{Pitch: 2.2}, r3.Vector{Y: -4})

	left := a.Compose(b).Compose(c)
	right := a.Compose(b.Compose(c))
	test.That(t, left.AlmostEqual(right, 1e-9), test.ShouldBeTrue)
}

func TestTransformPoint(t *testing.T) {
	// 90 degree yaw sends +x to +y
	tf := NewTransformFromEuler(&EulerAngles{Yaw: math.Pi / 2}, r3.Vector{})
	got := tf.TransformPoint(r3.Vector{X: 1})
	test.That(t, got.X, test.ShouldAlmostEqual, 0, floatEpsilon)
	test.That(t, got.Y, test.ShouldAlmostEqual, 1, floatEpsilon)
	test.That(t, got.Z, test.ShouldAlmostEqual, 0, floatEpsilon)

	// translation is applied after rotation
	tf = NewTransformFromEuler(&EulerAngles{Yaw: math.Pi / 2}, r3.Vector{Z: 2})
	got = tf.TransformPoint(r3.Vector{X: 1})
	test.That(t, got.Y, test.ShouldAlmostEqual, 1, floatEpsilon)
	test.That(t, got.Z, test.ShouldAlmostEqual, 2, floatEpsilon)
}

func TestComposeOrder(t *testing.T) {
	rot := NewTransformFromEuler(&EulerAngles{Yaw: math.Pi / 2}, r3.Vector{})
	trans := NewTransformFromPoint(r3.Vector{X: 1})

	// trans then rot: the translated point gets rotated
	got := rot.Compose(trans).TransformPoint(r3.Vector{})
	test.That(t, got.X, test.ShouldAlmostEqual, 0, floatEpsilon)
	test.That(t, got.Y, test.ShouldAlmostEqual, 1, floatEpsilon)

	// rot then trans: the translation is unrotated
	got = trans.Compose(rot).TransformPoint(r3.Vector{})
	test.That(t, got.X, test.ShouldAlmostEqual, 1, floatEpsilon)
	test.That(t, got.Y, test.ShouldAlmostEqual, 0, floatEpsilon)
}

func TestEulerQuaternionRoundTrip(t *testing.T) {
	cases := []*EulerAngles{
		NewZeroEulerAngles(),
		{Roll: 0.5},
		{Pitch: -0.4},
		{Yaw: 2.8},
		{Roll: 0.3, Pitch: -0.7, Yaw: 1.9},
		{Roll: -1.2, Pitch: 0.2, Yaw: -2.6},
	}
	for _, ea := range cases {
		got := QuatToEulerAngles(ea.Quaternion())
		test.That(t, got.Roll, test.ShouldAlmostEqual, ea.Roll, 1e-8)
		test.That(t, got.Pitch, test.ShouldAlmostEqual, ea.Pitch, 1e-8)
		test.That(t, got.Yaw, test.ShouldAlmostEqual, ea.Yaw, 1e-8)
	}
}

func TestQuaternionTransformMatchesEuler(t *testing.T) {
	ea := &EulerAngles{Roll: 0.1, Pitch: 0.2, Yaw: 0.3}
	fromQuat := NewTransformFromQuaternion(ea.Quaternion(), r3.Vector{X: 1})
	fromEuler := NewTransformFromEuler(ea, r3.Vector{X: 1})
	test.That(t, fromQuat.AlmostEqual(fromEuler, 1e-8), test.ShouldBeTrue)
}
