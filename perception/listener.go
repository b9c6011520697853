// Package perception ingests camera-side messages over UDP and pairs each
// ball observation with the most recent fiducial detection. Pairing happens
// here, at a single synchronized point, so downstream code never reads an
// ambient "last seen" detection.
package perception

import (
	"context"
	"encoding/json"
	"net"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"github.com/strikerlabs/goalkeeper/transform"
)

// A BallHandler consumes robot-frame ball positions.
type BallHandler interface {
	HandleBall(ctx context.Context, pos r3.Vector) error
}

// Wire formats. Datagrams are JSON, one message each.
type message struct {
	Type    string          `json:"type"`
	Ball    *ballPayload    `json:"ball,omitempty"`
	Markers []markerPayload `json:"markers,omitempty"`
}

type ballPayload struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Valid int     `json:"valid"`
}

type markerPayload struct {
	Position    [3]float64 `json:"position"`    // x, y, z
	Orientation [4]float64 `json:"orientation"` // w, x, y, z
}

// A Listener receives perception datagrams, maintains the freshest fiducial
// detection, and forwards transformed ball positions to the handler.
type Listener struct {
	transformer *transform.Transformer
	handler     BallHandler
	maxAge      time.Duration
	clock       clock.Clock
	logger      golog.Logger

	// Only the Run goroutine touches these.
	lastDetection   *transform.FiducialDetection
	lastDetectionAt time.Time
}

// NewListener returns a listener forwarding to the given handler. maxAge
// bounds how stale a detection may be and still be paired with an
// observation.
func NewListener(
	tr *transform.Transformer,
	handler BallHandler,
	maxAge time.Duration,
	clk clock.Clock,
	logger golog.Logger,
) *Listener {
	if clk == nil {
		clk = clock.New()
	}
	return &Listener{
		transformer: tr,
		handler:     handler,
		maxAge:      maxAge,
		clock:       clk,
		logger:      logger,
	}
}

// Run listens for datagrams on addr until the context is done.
func (l *Listener) Run(ctx context.Context, addr string) error {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return errors.Wrapf(err, "cannot resolve perception address %q", addr)
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return errors.Wrap(err, "cannot listen for perception messages")
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	l.logger.Infow("perception listener started", "address", addr)
	buf := make([]byte, 65536)
	for {
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.logger.Errorw("perception read error", "error", err)
			continue
		}
		l.processDatagram(ctx, buf[:n])
	}
}

func (l *Listener) processDatagram(ctx context.Context, data []byte) {
	var msg message
	if err := json.Unmarshal(data, &msg); err != nil {
		l.logger.Debugw("dropping malformed datagram", "error", err)
		return
	}
	switch msg.Type {
	case "markers":
		l.handleMarkers(msg.Markers)
	case "ball":
		if msg.Ball == nil {
			l.logger.Debugw("ball message without payload")
			return
		}
		l.handleBall(ctx, *msg.Ball)
	default:
		l.logger.Debugw("unknown message type", "type", msg.Type)
	}
}

func (l *Listener) handleMarkers(markers []markerPayload) {
	dets := make([]transform.FiducialDetection, 0, len(markers))
	for _, m := range markers {
		dets = append(dets, transform.FiducialDetection{
			Position: r3.Vector{X: m.Position[0], Y: m.Position[1], Z: m.Position[2]},
			Orientation: quat.Number{
				Real: m.Orientation[0],
				Imag: m.Orientation[1],
				Jmag: m.Orientation[2],
				Kmag: m.Orientation[3],
			},
		})
	}
	det, err := transform.FirstDetection(dets)
	if err != nil {
		// Empty detection sequence: skip, keeping whatever we had.
		l.logger.Debugw("empty marker message")
		return
	}
	l.lastDetection = &det
	l.lastDetectionAt = l.clock.Now()
}

// handleBall pairs the observation with the freshest detection. Observations
// without a fresh detection are rejected rather than computed against stale
// marker geometry.
func (l *Listener) handleBall(ctx context.Context, ball ballPayload) {
	if l.lastDetection == nil {
		l.logger.Debugw("ball observation before any marker detection")
		return
	}
	if age := l.clock.Now().Sub(l.lastDetectionAt); age > l.maxAge {
		l.logger.Debugw("rejecting observation, detection too old", "age", age)
		return
	}

	obs := transform.BallObservation{X: ball.X, Y: ball.Y, Z: ball.Z, Valid: ball.Valid != 0}
	pos, err := l.transformer.Transform(*l.lastDetection, obs)
	if err != nil {
		if !errors.Is(err, transform.ErrInvalidObservation) {
			l.logger.Debugw("transform failed", "error", err)
		}
		return
	}
	if err := l.handler.HandleBall(ctx, pos); err != nil {
		l.logger.Debugw("handler rejected ball position", "error", err)
	}
}
