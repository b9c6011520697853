// Package fake implements an arm that records the commands it is given.
package fake

import (
	"context"
	"sync"

	"github.com/edaniels/golog"

	"github.com/strikerlabs/goalkeeper/arm"
)

// Arm is a fake arm that simply records joint commands.
type Arm struct {
	logger golog.Logger

	mu       sync.Mutex
	commands []arm.JointCommand
}

// NewArm returns a new fake arm.
func NewArm(logger golog.Logger) *Arm {
	return &Arm{logger: logger}
}

// MoveToJointPositions records the command.
func (a *Arm) MoveToJointPositions(ctx context.Context, cmd arm.JointCommand) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.commands = append(a.commands, cmd)
	a.logger.Debugw("joint command", "positions", cmd.Positions)
	return nil
}

// Commands returns a copy of every command received so far.
func (a *Arm) Commands() []arm.JointCommand {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]arm.JointCommand, len(a.commands))
	copy(out, a.commands)
	return out
}
