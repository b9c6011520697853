package keeper

import (
	"context"
	"math"
	"time"

	"github.com/golang/geo/r3"

	"github.com/strikerlabs/goalkeeper/arm"
	"github.com/strikerlabs/goalkeeper/gripper"
	"github.com/strikerlabs/goalkeeper/motion"
	"github.com/strikerlabs/goalkeeper/spatialmath"
)

// Keep targets must stay within the goal mouth.
const keepLateralLimit = 0.3

// Keeping stance in front of the robot.
const (
	keepStandDepth  = 0.35
	keepStandHeight = 0.25
	// The alternate strategy approaches from above before settling.
	keepApproachHeight = 0.45
)

// Reset publishes the fixed home configuration directly to the arm, bypassing
// the planner entirely.
func (c *Controller) Reset(ctx context.Context) (ErrorCode, error) {
	return c.submit(ctx, func(ctx context.Context) ErrorCode {
		cmd, err := arm.NewJointCommand(HomeJoints, homeCommandDuration)
		if err != nil {
			c.logger.Errorw("bad home configuration", "error", err)
			return PlanningFailed
		}
		if err := c.arm.MoveToJointPositions(ctx, cmd); err != nil {
			c.logger.Errorw("home command failed", "error", err)
		}
		return Success
	})
}

// Step moves the end effector to an arbitrary target pose via the planner,
// then opens or closes the gripper.
func (c *Controller) Step(ctx context.Context, target motion.Pose, open bool) (ErrorCode, error) {
	return c.submit(ctx, func(ctx context.Context) ErrorCode {
		if code := c.plannedMove(ctx, target); code != Success {
			return code
		}
		setpoint := gripper.ClosedPosition
		if open {
			setpoint = gripper.OpenPosition
		}
		c.setGripper(ctx, setpoint)
		return Success
	})
}

// Keep moves the end effector to a lateral offset in front of the robot via
// the planner. Positions outside the goal mouth are rejected before planning
// is attempted.
func (c *Controller) Keep(ctx context.Context, lateral float64) (ErrorCode, error) {
	return c.submit(ctx, func(ctx context.Context) ErrorCode {
		if lateral <= -keepLateralLimit || lateral >= keepLateralLimit {
			return OutOfRange
		}
		if c.keepStyleAlternate {
			// Never taken with the current construction; kept until the
			// second strategy is either wired to a trigger or removed.
			if code := c.plannedMove(ctx, keepPose(lateral, keepApproachHeight)); code != Success {
				return code
			}
		}
		return c.plannedMove(ctx, keepPose(lateral, keepStandHeight))
	})
}

func keepPose(lateral, height float64) motion.Pose {
	return motion.Pose{
		Position:    r3.Vector{X: keepStandDepth, Y: lateral, Z: height},
		Orientation: spatialmath.EulerAngles{Pitch: math.Pi / 2},
	}
}

// StartKeeping transitions to Keeping; ball updates begin driving the arm.
func (c *Controller) StartKeeping(ctx context.Context) (ErrorCode, error) {
	return c.submit(ctx, func(context.Context) ErrorCode {
		c.setMode(ModeKeeping)
		return Success
	})
}

// StopKeeping transitions to Idle. The lead window is reset so a later resume
// starts clean.
func (c *Controller) StopKeeping(ctx context.Context) (ErrorCode, error) {
	return c.submit(ctx, func(context.Context) ErrorCode {
		c.setMode(ModeIdle)
		c.lead.Reset()
		return Success
	})
}

// Open commands the gripper to the open setpoint.
func (c *Controller) Open(ctx context.Context) (ErrorCode, error) {
	return c.submit(ctx, func(ctx context.Context) ErrorCode {
		c.setGripper(ctx, gripper.OpenPosition)
		return Success
	})
}

// Close commands the gripper to the closed setpoint.
func (c *Controller) Close(ctx context.Context) (ErrorCode, error) {
	return c.submit(ctx, func(ctx context.Context) ErrorCode {
		c.setGripper(ctx, gripper.ClosedPosition)
		return Success
	})
}

// AbovePaddle moves the end effector above the tool holster via the planner.
func (c *Controller) AbovePaddle(ctx context.Context) (ErrorCode, error) {
	return c.submit(ctx, c.abovePaddle)
}

// RetrievePaddle runs the full pickup sequence: above the holster, open,
// descend, close around the paddle, and return above, with settle waits
// between steps.
func (c *Controller) RetrievePaddle(ctx context.Context) (ErrorCode, error) {
	return c.submit(ctx, func(ctx context.Context) ErrorCode {
		if code := c.abovePaddle(ctx); code != Success {
			return code
		}
		c.setGripper(ctx, gripper.OpenPosition)
		c.wait(ctx, c.opts.SettleWait)

		if code := c.plannedMove(ctx, c.holsterPose(c.opts.Holster.ZAligned)); code != Success {
			return code
		}
		c.setGripper(ctx, gripper.ClosedPosition)
		c.wait(ctx, c.opts.SettleWait)

		return c.plannedMove(ctx, c.holsterPose(c.opts.Holster.ZAbove))
	})
}

func (c *Controller) abovePaddle(ctx context.Context) ErrorCode {
	return c.plannedMove(ctx, c.holsterPose(c.opts.Holster.ZAbove))
}

func (c *Controller) holsterPose(z float64) motion.Pose {
	return motion.Pose{
		Position:    r3.Vector{X: c.opts.Holster.X, Y: c.opts.Holster.Y, Z: z},
		Orientation: spatialmath.EulerAngles{Pitch: math.Pi / 2},
	}
}

// plannedMove runs one plan/execute round trip. On planning failure the
// target is dropped and the failure reported; a failed plan is never executed
// and nothing retries. Execute blocks the run loop, so the controller is busy
// until the physical motion completes.
func (c *Controller) plannedMove(ctx context.Context, target motion.Pose) ErrorCode {
	plan, err := c.planner.Plan(ctx, target)
	if err != nil {
		c.logger.Debugw("planning failed", "target", target.Position, "error", err)
		return PlanningFailed
	}

	c.setBusy(true)
	defer c.setBusy(false)
	if err := c.planner.Execute(ctx, plan); err != nil {
		c.logger.Errorw("plan execution failed", "error", err)
		return PlanningFailed
	}
	return Success
}

func (c *Controller) setGripper(ctx context.Context, position float64) {
	if err := c.gripper.Set(ctx, position); err != nil {
		c.logger.Errorw("gripper command failed", "position", position, "error", err)
	}
}

func (c *Controller) wait(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := c.clock.Timer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
