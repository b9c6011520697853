// Package fake implements a gripper that records its setpoints.
package fake

import (
	"context"
	"sync"

	"github.com/edaniels/golog"
)

// Gripper is a fake gripper that records every setpoint it is given.
type Gripper struct {
	logger golog.Logger

	mu        sync.Mutex
	setpoints []float64
}

// NewGripper returns a new fake gripper.
func NewGripper(logger golog.Logger) *Gripper {
	return &Gripper{logger: logger}
}

// Set records the setpoint.
func (g *Gripper) Set(ctx context.Context, position float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.setpoints = append(g.setpoints, position)
	g.logger.Debugw("gripper setpoint", "position", position)
	return nil
}

// Setpoints returns a copy of every setpoint received so far.
func (g *Gripper) Setpoints() []float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]float64, len(g.setpoints))
	copy(out, g.setpoints)
	return out
}
