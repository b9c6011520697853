// Package gripper defines the contract with the goalkeeper's gripper driver.
package gripper

import "context"

// Recognized setpoints for the two-state gripper.
const (
	OpenPosition   = 0.8
	ClosedPosition = 0.1
)

// A Gripper accepts a single float setpoint.
type Gripper interface {
	// Set commands the gripper to the given setpoint.
	Set(ctx context.Context, position float64) error
}
