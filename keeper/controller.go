package keeper

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/strikerlabs/goalkeeper/arm"
	"github.com/strikerlabs/goalkeeper/gripper"
	"github.com/strikerlabs/goalkeeper/motion"
)

// Mode is the controller's keeping state.
type Mode int

// Controller modes. Ball updates only drive the arm while Keeping.
const (
	ModeIdle Mode = iota
	ModeKeeping
)

func (m Mode) String() string {
	if m == ModeKeeping {
		return "keeping"
	}
	return "idle"
}

// time_from_start for direct joint commands on the two publish paths.
const (
	trackCommandDuration = 100 * time.Millisecond
	homeCommandDuration  = 2 * time.Second
)

// Holster is the pose of the tool holster the paddle rests in.
type Holster struct {
	X        float64
	Y        float64
	ZAbove   float64
	ZAligned float64
}

// Options configures a Controller.
type Options struct {
	Holster Holster
	// SettleWait is the pause between steps of multi-step sequences, giving
	// the hardware time to physically settle.
	SettleWait time.Duration
	// Clock defaults to the real clock; tests inject a mock.
	Clock clock.Clock
	// ScoreFunc, when set, is called with the totals after every ball update
	// while keeping, whether or not the score changed.
	ScoreFunc func(ScoreUpdate)
	// QueueSize bounds the request queue. Requests arriving during a blocking
	// planned move are queued, not dropped.
	QueueSize int
}

// Status is a read-only snapshot of the controller.
type Status struct {
	Mode  string      `json:"mode"`
	Busy  bool        `json:"busy"`
	Score ScoreUpdate `json:"score"`
}

type request struct {
	ball  *r3.Vector
	run   func(context.Context) ErrorCode
	reply chan ErrorCode
}

// A Controller owns all mutable goalkeeper state: the mode, the lead window,
// and the score counters. Every mutation happens on the single Run goroutine;
// ball updates and commands share one queue and are handled one at a time, so
// reactive tracking is suspended for the duration of any planned move.
type Controller struct {
	logger  golog.Logger
	arm     arm.Arm
	gripper gripper.Gripper
	planner motion.Planner
	clock   clock.Clock
	opts    Options

	lead   *LeadPredictor
	solver *JointSolver
	score  *ScoreTracker

	requests chan request

	// keepStyleAlternate selects between the two keep planning strategies. It
	// is fixed at construction and nothing flips it; the alternate branch is
	// retained pending product clarification.
	keepStyleAlternate bool

	// mu guards the published snapshot only; canonical state lives on the Run
	// goroutine.
	mu        sync.RWMutex
	mode      Mode
	busy      bool
	lastScore ScoreUpdate
}

// NewController wires a controller to its drivers and planner.
func NewController(
	a arm.Arm,
	g gripper.Gripper,
	p motion.Planner,
	opts Options,
	logger golog.Logger,
) (*Controller, error) {
	if a == nil || g == nil || p == nil {
		return nil, errors.New("controller needs an arm, a gripper, and a planner")
	}
	solver, err := NewJointSolver()
	if err != nil {
		return nil, err
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.QueueSize == 0 {
		opts.QueueSize = 128
	}
	return &Controller{
		logger:   logger,
		arm:      a,
		gripper:  g,
		planner:  p,
		clock:    opts.Clock,
		opts:     opts,
		lead:     NewLeadPredictor(),
		solver:   solver,
		score:    NewScoreTracker(),
		requests: make(chan request, opts.QueueSize),
	}, nil
}

// Run processes queued ball updates and commands one at a time until the
// context is done. Each handler runs to completion before the next is
// dispatched.
func (c *Controller) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-c.requests:
			c.handle(ctx, req)
		}
	}
}

func (c *Controller) handle(ctx context.Context, req request) {
	if req.ball != nil {
		c.handleBall(ctx, *req.ball)
		return
	}
	code := req.run(ctx)
	req.reply <- code
}

// HandleBall queues a robot-frame ball position for the reactive path. It
// blocks only if the queue is full, e.g. during a long planned move.
func (c *Controller) HandleBall(ctx context.Context, pos r3.Vector) error {
	select {
	case c.requests <- request{ball: &pos}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// handleBall is the reactive fast path: predict, solve, publish joints
// directly to the arm, and update the score. The planner is bypassed; its
// plan/execute round-trip is too slow for tracking.
func (c *Controller) handleBall(ctx context.Context, pos r3.Vector) {
	if c.Mode() != ModeKeeping {
		return
	}

	predicted := c.lead.Predict(pos.Y)
	c.lead.Push(pos.Y)

	joints := c.solver.Solve(predicted, pos.X)
	cmd, err := arm.NewJointCommand(joints, trackCommandDuration)
	if err != nil {
		c.logger.Errorw("bad joint configuration", "error", err)
		return
	}
	if err := c.arm.MoveToJointPositions(ctx, cmd); err != nil {
		c.logger.Errorw("joint command failed", "error", err)
	}

	update := c.score.Update(pos.X, pos.Y)
	c.setScore(update)
	if c.opts.ScoreFunc != nil {
		c.opts.ScoreFunc(update)
	}
}

func (c *Controller) submit(ctx context.Context, run func(context.Context) ErrorCode) (ErrorCode, error) {
	reply := make(chan ErrorCode, 1)
	select {
	case c.requests <- request{run: run, reply: reply}:
	case <-ctx.Done():
		return PlanningFailed, ctx.Err()
	}
	select {
	case code := <-reply:
		return code, nil
	case <-ctx.Done():
		return PlanningFailed, ctx.Err()
	}
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mode
}

// Score returns the current totals.
func (c *Controller) Score() ScoreUpdate {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastScore
}

// CurrentStatus returns a snapshot of the controller.
func (c *Controller) CurrentStatus() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Status{Mode: c.mode.String(), Busy: c.busy, Score: c.lastScore}
}

func (c *Controller) setMode(m Mode) {
	c.mu.Lock()
	c.mode = m
	c.mu.Unlock()
}

func (c *Controller) setBusy(b bool) {
	c.mu.Lock()
	c.busy = b
	c.mu.Unlock()
}

func (c *Controller) setScore(s ScoreUpdate) {
	c.mu.Lock()
	c.lastScore = s
	c.mu.Unlock()
}
