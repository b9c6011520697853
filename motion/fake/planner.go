// Package fake implements a motion planner for simulation and tests.
package fake

import (
	"context"
	"sync"
	"time"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/strikerlabs/goalkeeper/motion"
)

// Planner is a fake planner. It produces a single-waypoint plan for any target
// outside the configured collision geometry and records how often it is called.
type Planner struct {
	logger    golog.Logger
	workspace motion.Workspace

	// ExecuteDelay, when set, makes Execute block for that long to mimic a
	// physical move.
	ExecuteDelay time.Duration

	// FailPlanning, when set, makes every Plan call fail.
	FailPlanning bool

	mu           sync.Mutex
	planCalls    int
	executeCalls int
}

// NewPlanner returns a new fake planner that avoids the given workspace geometry.
func NewPlanner(workspace motion.Workspace, logger golog.Logger) *Planner {
	return &Planner{logger: logger, workspace: workspace}
}

// Plan fails for targets inside the ground or goal extents, otherwise returns
// a trivial single-waypoint plan.
func (p *Planner) Plan(ctx context.Context, target motion.Pose) (*motion.Plan, error) {
	p.mu.Lock()
	p.planCalls++
	p.mu.Unlock()

	if p.FailPlanning {
		return nil, motion.ErrPlanningFailed
	}
	if p.workspace.Ground.Contains(target.Position) || p.workspace.Goal.Contains(target.Position) {
		return nil, errors.Wrap(motion.ErrPlanningFailed, "target in collision")
	}
	return &motion.Plan{Waypoints: [][]float64{{
		target.Position.X, target.Position.Y, target.Position.Z,
		target.Orientation.Roll, target.Orientation.Pitch, target.Orientation.Yaw,
	}}}, nil
}

// Execute pretends to run the plan.
func (p *Planner) Execute(ctx context.Context, plan *motion.Plan) error {
	p.mu.Lock()
	p.executeCalls++
	p.mu.Unlock()

	if plan == nil || len(plan.Waypoints) == 0 {
		return errors.New("refusing to execute an empty plan")
	}
	if p.ExecuteDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.ExecuteDelay):
		}
	}
	p.logger.Debugw("executed plan", "waypoints", len(plan.Waypoints))
	return nil
}

// PlanCalls returns how many times Plan has been invoked.
func (p *Planner) PlanCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.planCalls
}

// ExecuteCalls returns how many times Execute has been invoked.
func (p *Planner) ExecuteCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.executeCalls
}
