// Package arm defines the contract with the goalkeeper's arm driver.
package arm

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// NumJoints is the number of joints on the goalkeeper arm.
const NumJoints = 6

// JointNames are the names published alongside every direct joint command, in
// joint order.
var JointNames = []string{
	"shoulder_pan_joint",
	"shoulder_lift_joint",
	"elbow_joint",
	"wrist_1_joint",
	"wrist_2_joint",
	"wrist_3_joint",
}

// An Arm executes direct joint commands. Implementations talk to hardware or a
// simulator; commands bypass any motion planning.
type Arm interface {
	// MoveToJointPositions commands the arm's joints to the given positions.
	MoveToJointPositions(ctx context.Context, cmd JointCommand) error
}

// JointCommand is a direct joint-space command for all six joints.
type JointCommand struct {
	Names         []string
	Positions     []float64 // radians
	TimeFromStart time.Duration
}

// NewJointCommand builds a command for the standard joint set.
func NewJointCommand(positions []float64, timeFromStart time.Duration) (JointCommand, error) {
	if len(positions) != NumJoints {
		return JointCommand{}, errors.Errorf("expected %d joint positions, got %d", NumJoints, len(positions))
	}
	return JointCommand{
		Names:         JointNames,
		Positions:     positions,
		TimeFromStart: timeFromStart,
	}, nil
}
