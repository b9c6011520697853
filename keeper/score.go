package keeper

// Net extents in the robot frame: the ball is in the net once it is past the
// goal line and between the posts.
const (
	netDepth     = -1.0
	netHalfWidth = 0.25
)

// ScoreUpdate carries the current totals; human goals scored and robot saves
// made.
type ScoreUpdate struct {
	Human int `json:"human"`
	Robot int `json:"robot"`
}

// A ScoreTracker edge-detects ball-in-net transitions and keeps goal and save
// counters. Saves are tracked but nothing increments them yet; no detection
// condition for a save has been defined.
type ScoreTracker struct {
	goals     int
	saves     int
	inNet     bool
	prevInNet bool
}

// NewScoreTracker returns a zeroed tracker.
func NewScoreTracker() *ScoreTracker {
	return &ScoreTracker{}
}

// Update classifies the ball position and returns the current totals. The goal
// counter increments only on a transition into the net, never on sustained
// presence.
func (st *ScoreTracker) Update(x, y float64) ScoreUpdate {
	st.prevInNet = st.inNet
	st.inNet = x < netDepth && y > -netHalfWidth && y < netHalfWidth
	if st.inNet && !st.prevInNet {
		st.goals++
	}
	return ScoreUpdate{Human: st.goals, Robot: st.saves}
}

// Totals returns the current totals without advancing the edge detector.
func (st *ScoreTracker) Totals() ScoreUpdate {
	return ScoreUpdate{Human: st.goals, Robot: st.saves}
}
