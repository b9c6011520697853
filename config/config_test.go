package config

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

const sampleConfig = `{
	"bind_address": ":8085",
	"perception_address": ":9200",
	"calibration": {
		"marker_to_robot": {"translation": [-1.5, 0, 0.3], "rpy": [0, 0, 0]},
		"camera_to_robot": {"translation": [-2.0, 0, 1.1], "rpy": [0, 0.4, 0]},
		"lateral_offset": 0.05,
		"max_detection_age_millis": 250
	},
	"holster": {"x": 0.5, "y": -0.4, "z_above": 0.35, "z_aligned": 0.15},
	"workspace": {
		"ground": {"min": [-5, -5, -5], "max": [5, 5, 0]},
		"goal": {"min": [-5, -0.3, 0], "max": [-1, 0.3, 1]}
	},
	"settle_wait_millis": 1500
}`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.BindAddress, test.ShouldEqual, ":8085")
	test.That(t, cfg.Calibration.LateralOffset, test.ShouldEqual, 0.05)
	test.That(t, cfg.Calibration.MaxDetectionAge().Milliseconds(), test.ShouldEqual, 250)
	test.That(t, cfg.SettleWait().Milliseconds(), test.ShouldEqual, 1500)

	pose := cfg.Calibration.MarkerToRobot.Pose()
	pt := pose.Point()
	test.That(t, pt.X, test.ShouldEqual, -1.5)
	test.That(t, pt.Z, test.ShouldEqual, 0.3)

	ws := cfg.Workspace.PlannerWorkspace()
	test.That(t, ws.Goal.Max.X, test.ShouldEqual, -1)
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`{"holster": {"z_above": 0.3, "z_aligned": 0.1}}`))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.BindAddress, test.ShouldEqual, ":8080")
	test.That(t, cfg.PerceptionAddress, test.ShouldEqual, ":9100")
	test.That(t, cfg.Calibration.MaxDetectionAgeMillis, test.ShouldEqual, 500)
}

func TestParseRejectsBadHolster(t *testing.T) {
	_, err := Parse([]byte(`{"holster": {"z_above": 0.1, "z_aligned": 0.3}}`))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestReadSubstitutesEnv(t *testing.T) {
	t.Setenv("KEEPER_BIND", ":7001")
	path := filepath.Join(t.TempDir(), "keeper.json")
	err := os.WriteFile(path, []byte(`{"bind_address": "${KEEPER_BIND}"}`), 0o600)
	test.That(t, err, test.ShouldBeNil)

	cfg, err := Read(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.BindAddress, test.ShouldEqual, ":7001")
}
