// Package config loads goalkeeper configuration: network addresses, measured
// calibration constants, and planner workspace geometry. Configuration is read
// once at startup and immutable thereafter.
package config

import (
	"encoding/json"
	"time"

	"github.com/a8m/envsubst"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/strikerlabs/goalkeeper/motion"
	"github.com/strikerlabs/goalkeeper/spatialmath"
)

// Config is the top-level configuration.
type Config struct {
	// BindAddress is where the HTTP command API listens.
	BindAddress string `json:"bind_address"`
	// PerceptionAddress is the UDP address perception messages arrive on.
	PerceptionAddress string `json:"perception_address"`

	Calibration Calibration `json:"calibration"`
	Holster     Holster     `json:"holster"`
	Workspace   Workspace   `json:"workspace"`

	// SettleWaitMillis is the pause between steps of multi-step command
	// sequences.
	SettleWaitMillis int `json:"settle_wait_millis"`
}

// Transform is a pose given as a translation plus roll/pitch/yaw.
type Transform struct {
	Translation [3]float64 `json:"translation"`
	RPY         [3]float64 `json:"rpy"`
}

// Pose converts the configured values into a rigid transform.
func (t Transform) Pose() *spatialmath.RigidTransform {
	return spatialmath.NewTransformFromEuler(
		&spatialmath.EulerAngles{Roll: t.RPY[0], Pitch: t.RPY[1], Yaw: t.RPY[2]},
		r3.Vector{X: t.Translation[0], Y: t.Translation[1], Z: t.Translation[2]},
	)
}

// Calibration holds the constants measured offline.
type Calibration struct {
	MarkerToRobot Transform `json:"marker_to_robot"`
	// CameraToRobot is recorded for reference; the live marker detection
	// supersedes it and it takes no part in the transform chain.
	CameraToRobot Transform `json:"camera_to_robot"`
	// LateralOffset is applied after mirroring the lateral axis into the
	// robot's frame convention.
	LateralOffset float64 `json:"lateral_offset"`
	// MaxDetectionAgeMillis bounds how old a fiducial detection may be and
	// still be paired with a ball observation.
	MaxDetectionAgeMillis int `json:"max_detection_age_millis"`
}

// MaxDetectionAge returns the pairing window as a duration.
func (c Calibration) MaxDetectionAge() time.Duration {
	return time.Duration(c.MaxDetectionAgeMillis) * time.Millisecond
}

// Holster is the measured pose of the tool holster.
type Holster struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	ZAbove   float64 `json:"z_above"`
	ZAligned float64 `json:"z_aligned"`
}

// Extent is an axis-aligned collision box.
type Extent struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

// Box converts the extent for the planner.
func (e Extent) Box() motion.Box {
	return motion.Box{
		Min: r3.Vector{X: e.Min[0], Y: e.Min[1], Z: e.Min[2]},
		Max: r3.Vector{X: e.Max[0], Y: e.Max[1], Z: e.Max[2]},
	}
}

// Workspace holds the collision geometry handed to the planner.
type Workspace struct {
	Ground Extent `json:"ground"`
	Goal   Extent `json:"goal"`
}

// PlannerWorkspace converts the configured extents.
func (w Workspace) PlannerWorkspace() motion.Workspace {
	return motion.Workspace{Ground: w.Ground.Box(), Goal: w.Goal.Box()}
}

// SettleWait returns the configured settle pause as a duration.
func (c *Config) SettleWait() time.Duration {
	return time.Duration(c.SettleWaitMillis) * time.Millisecond
}

// Ensure validates the configuration, filling defaults where sensible.
func (c *Config) Ensure() error {
	if c.BindAddress == "" {
		c.BindAddress = ":8080"
	}
	if c.PerceptionAddress == "" {
		c.PerceptionAddress = ":9100"
	}
	if c.Calibration.MaxDetectionAgeMillis <= 0 {
		c.Calibration.MaxDetectionAgeMillis = 500
	}
	var errs error
	if c.SettleWaitMillis < 0 {
		errs = multierr.Combine(errs, errors.New("settle_wait_millis cannot be negative"))
	}
	if c.Holster.ZAligned > c.Holster.ZAbove {
		errs = multierr.Combine(errs, errors.New("holster z_aligned must not be above z_above"))
	}
	return errs
}

// Read loads, substitutes environment variables into, and validates a
// configuration file.
func Read(path string) (*Config, error) {
	data, err := envsubst.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read config %q", path)
	}
	return Parse(data)
}

// Parse parses and validates configuration from raw bytes.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "cannot parse config")
	}
	if err := cfg.Ensure(); err != nil {
		return nil, err
	}
	return cfg, nil
}
