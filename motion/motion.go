// Package motion defines the contract with the external motion planner used
// for point-to-point arm moves.
package motion

import (
	"context"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/strikerlabs/goalkeeper/spatialmath"
)

// ErrPlanningFailed is returned by planners that could not produce a plan for
// the requested target.
var ErrPlanningFailed = errors.New("no plan found for target pose")

// Pose is an end-effector target in the robot frame.
type Pose struct {
	Position    r3.Vector
	Orientation spatialmath.EulerAngles
}

// Plan is a joint-space trajectory produced by a planner. It must only be
// executed by the planner that produced it.
type Plan struct {
	Waypoints [][]float64
}

// A Planner computes and executes point-to-point arm motions. Execute blocks
// until the physical motion completes; there is no cancellation beyond the
// context and no timeout.
type Planner interface {
	// Plan computes a trajectory to the target pose, or fails without side effects.
	Plan(ctx context.Context, target Pose) (*Plan, error)

	// Execute runs a previously computed plan, blocking until motion completes.
	Execute(ctx context.Context, plan *Plan) error
}

// Box is an axis-aligned extent in the robot frame.
type Box struct {
	Min r3.Vector
	Max r3.Vector
}

// Contains reports whether the point lies inside the box.
func (b Box) Contains(p r3.Vector) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Workspace holds the collision geometry the planner must avoid: the ground
// plane and the goal region.
type Workspace struct {
	Ground Box
	Goal   Box
}
