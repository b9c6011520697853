// Package main runs the goalkeeper: perception ingest, the motion controller,
// and the HTTP command API.
package main

import (
	"context"
	"flag"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	armfake "github.com/strikerlabs/goalkeeper/arm/fake"
	"github.com/strikerlabs/goalkeeper/config"
	gripperfake "github.com/strikerlabs/goalkeeper/gripper/fake"
	"github.com/strikerlabs/goalkeeper/keeper"
	motionfake "github.com/strikerlabs/goalkeeper/motion/fake"
	"github.com/strikerlabs/goalkeeper/perception"
	"github.com/strikerlabs/goalkeeper/transform"
	"github.com/strikerlabs/goalkeeper/web"
)

var logger = golog.NewDevelopmentLogger("goalkeeper")

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	flag.Parse()
	if flag.Arg(0) == "" {
		return errors.New("usage: goalkeeper <config.json>")
	}
	cfg, err := config.Read(flag.Arg(0))
	if err != nil {
		return err
	}

	// Simulation drivers; hardware-backed implementations satisfy the same
	// interfaces.
	keeperArm := armfake.NewArm(logger.Named("arm"))
	keeperGripper := gripperfake.NewGripper(logger.Named("gripper"))
	planner := motionfake.NewPlanner(cfg.Workspace.PlannerWorkspace(), logger.Named("planner"))

	ctrl, err := keeper.NewController(keeperArm, keeperGripper, planner, keeper.Options{
		Holster: keeper.Holster{
			X:        cfg.Holster.X,
			Y:        cfg.Holster.Y,
			ZAbove:   cfg.Holster.ZAbove,
			ZAligned: cfg.Holster.ZAligned,
		},
		SettleWait: cfg.SettleWait(),
		ScoreFunc: func(s keeper.ScoreUpdate) {
			logger.Debugw("score", "human", s.Human, "robot", s.Robot)
		},
	}, logger.Named("keeper"))
	if err != nil {
		return err
	}

	transformer := transform.NewTransformer(
		cfg.Calibration.MarkerToRobot.Pose(),
		cfg.Calibration.CameraToRobot.Pose(),
		cfg.Calibration.LateralOffset,
	)
	listener := perception.NewListener(
		transformer, ctrl, cfg.Calibration.MaxDetectionAge(), nil, logger.Named("perception"))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	utils.PanicCapturingGo(func() {
		if err := ctrl.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Errorw("controller stopped", "error", err)
		}
	})
	utils.PanicCapturingGo(func() {
		if err := listener.Run(ctx, cfg.PerceptionAddress); err != nil && !errors.Is(err, context.Canceled) {
			logger.Errorw("perception listener stopped", "error", err)
		}
	})

	return web.NewServer(ctrl, logger.Named("web")).Serve(ctx, cfg.BindAddress)
}
