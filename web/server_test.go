package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	armfake "github.com/strikerlabs/goalkeeper/arm/fake"
	gripperfake "github.com/strikerlabs/goalkeeper/gripper/fake"
	"github.com/strikerlabs/goalkeeper/keeper"
	"github.com/strikerlabs/goalkeeper/motion"
	motionfake "github.com/strikerlabs/goalkeeper/motion/fake"
)

func newTestServer(t *testing.T) (*httptest.Server, *keeper.Controller, *armfake.Arm) {
	t.Helper()
	logger := golog.NewTestLogger(t)
	fa := armfake.NewArm(logger)
	fg := gripperfake.NewGripper(logger)
	fp := motionfake.NewPlanner(motion.Workspace{
		Ground: motion.Box{Min: r3.Vector{X: -5, Y: -5, Z: -5}, Max: r3.Vector{X: 5, Y: 5, Z: 0}},
		Goal:   motion.Box{Min: r3.Vector{X: -5, Y: -0.3, Z: 0}, Max: r3.Vector{X: -1, Y: 0.3, Z: 1}},
	}, logger)

	ctrl, err := keeper.NewController(fa, fg, fp, keeper.Options{
		Holster: keeper.Holster{X: 0.5, Y: -0.4, ZAbove: 0.35, ZAligned: 0.15},
	}, logger)
	test.That(t, err, test.ShouldBeNil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = ctrl.Run(ctx)
	}()

	server := httptest.NewServer(NewServer(ctrl, logger).Handler())
	t.Cleanup(func() {
		server.Close()
		cancel()
		<-done
	})
	return server, ctrl, fa
}

func postJSON(t *testing.T, url, body string) map[string]interface{} {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	test.That(t, err, test.ShouldBeNil)
	defer resp.Body.Close()
	test.That(t, resp.StatusCode, test.ShouldEqual, http.StatusOK)

	var out map[string]interface{}
	test.That(t, json.NewDecoder(resp.Body).Decode(&out), test.ShouldBeNil)
	return out
}

func TestCommandEndpoints(t *testing.T) {
	server, _, fa := newTestServer(t)

	out := postJSON(t, server.URL+"/api/reset", "")
	test.That(t, out["error_code"], test.ShouldEqual, "success")
	test.That(t, fa.Commands(), test.ShouldHaveLength, 1)

	out = postJSON(t, server.URL+"/api/keep", `{"lateral_position": 0.5}`)
	test.That(t, out["error_code"], test.ShouldEqual, "out_of_range")

	out = postJSON(t, server.URL+"/api/keep", `{"lateral_position": 0.1}`)
	test.That(t, out["error_code"], test.ShouldEqual, "success")

	out = postJSON(t, server.URL+"/api/step", `{"x": 0.4, "y": 0, "z": 0.3, "open": true}`)
	test.That(t, out["error_code"], test.ShouldEqual, "success")
}

func TestScoreAndStatusEndpoints(t *testing.T) {
	server, ctrl, _ := newTestServer(t)
	ctx := context.Background()

	_, err := ctrl.StartKeeping(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ctrl.HandleBall(ctx, r3.Vector{X: -1.2, Y: 0.1}), test.ShouldBeNil)
	_, err = ctrl.StartKeeping(ctx) // barrier
	test.That(t, err, test.ShouldBeNil)

	resp, err := http.Get(server.URL + "/api/score")
	test.That(t, err, test.ShouldBeNil)
	defer resp.Body.Close()
	var score keeper.ScoreUpdate
	test.That(t, json.NewDecoder(resp.Body).Decode(&score), test.ShouldBeNil)
	test.That(t, score, test.ShouldResemble, keeper.ScoreUpdate{Human: 1, Robot: 0})

	resp2, err := http.Get(server.URL + "/api/status")
	test.That(t, err, test.ShouldBeNil)
	defer resp2.Body.Close()
	var status keeper.Status
	test.That(t, json.NewDecoder(resp2.Body).Decode(&status), test.ShouldBeNil)
	test.That(t, status.Mode, test.ShouldEqual, "keeping")
	test.That(t, status.Busy, test.ShouldBeFalse)
}

func TestStepRejectsBadBody(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp, err := http.Post(server.URL+"/api/step", "application/json", strings.NewReader("{bad"))
	test.That(t, err, test.ShouldBeNil)
	defer resp.Body.Close()
	test.That(t, resp.StatusCode, test.ShouldEqual, http.StatusBadRequest)
}
