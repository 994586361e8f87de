// Package arm converts joint angles to servo pulse widths and carries
// them to the actuator hardware.
package arm

import (
	"math"

	"go.uber.org/multierr"

	"github.com/Syinaric/A.U.R.A.-Farm/pkg/kinematics"
)

// ServoCalibration holds the angle-to-pulse mapping for a single servo.
type ServoCalibration struct {
	CenterUs    int     `json:"center_us"`
	UsPerDegree float64 `json:"us_per_degree"`
	Direction   int     `json:"direction"`
	MinUs       int     `json:"min_us"`
	MaxUs       int     `json:"max_us"`
}

// Calibration holds calibration data for all servos, keyed by joint name.
type Calibration map[kinematics.JointName]ServoCalibration

// ToMicroseconds converts a joint angle to a pulse width. The result is
// silently clamped to [MinUs, MaxUs]: the clamp is a safety bound on what
// reaches the hardware, not an error. Callers that must know whether the
// request was clamped use Clamps.
func (c ServoCalibration) ToMicroseconds(deg float64) int {
	us := int(math.Round(float64(c.CenterUs) + float64(c.Direction)*deg*c.UsPerDegree))
	if us < c.MinUs {
		return c.MinUs
	}
	if us > c.MaxUs {
		return c.MaxUs
	}
	return us
}

// ToDegrees is the inverse mapping, for diagnostics. It does not round
// trip through a clamped value.
func (c ServoCalibration) ToDegrees(us int) float64 {
	return float64(c.Direction) * float64(us-c.CenterUs) / c.UsPerDegree
}

// Clamps reports whether the angle maps outside the pulse range.
func (c ServoCalibration) Clamps(deg float64) bool {
	raw := float64(c.CenterUs) + float64(c.Direction)*deg*c.UsPerDegree
	return raw < float64(c.MinUs) || raw > float64(c.MaxUs)
}

// Validate checks the per-servo invariants.
func (c ServoCalibration) validate(joint kinematics.JointName) error {
	var err error
	if !(c.MinUs < c.CenterUs && c.CenterUs < c.MaxUs) {
		err = multierr.Append(err, &kinematics.ConfigError{
			Field:  "servos." + string(joint),
			Reason: "pulse range must satisfy min < center < max",
		})
	}
	if c.UsPerDegree <= 0 {
		err = multierr.Append(err, &kinematics.ConfigError{
			Field:  "servos." + string(joint),
			Reason: "us_per_degree must be positive",
		})
	}
	if c.Direction != 1 && c.Direction != -1 {
		err = multierr.Append(err, &kinematics.ConfigError{
			Field:  "servos." + string(joint),
			Reason: "direction must be +1 or -1",
		})
	}
	return err
}

// Validate checks every servo's invariants and that all four arm joints
// are calibrated. Violations are aggregated.
func (c Calibration) Validate() error {
	var err error
	for _, joint := range kinematics.ArmJoints() {
		sc, ok := c[joint]
		if !ok {
			err = multierr.Append(err, &kinematics.ConfigError{
				Field:  "servos." + string(joint),
				Reason: "missing calibration",
			})
			continue
		}
		err = multierr.Append(err, sc.validate(joint))
	}
	if sc, ok := c[kinematics.Grip]; ok {
		err = multierr.Append(err, sc.validate(kinematics.Grip))
	}
	return err
}

// Command maps a solved joint configuration onto a wire-ready pulse
// frame. If a grip servo is calibrated it is held at center (the stock
// hand is not actuated).
func (c Calibration) Command(a kinematics.Angles) Command {
	cmd := Command{
		BaseUs:     c[kinematics.Base].ToMicroseconds(a.BaseDeg),
		ShoulderUs: c[kinematics.Shoulder].ToMicroseconds(a.ShoulderDeg),
		ElbowUs:    c[kinematics.Elbow].ToMicroseconds(a.ElbowDeg),
		WristUs:    c[kinematics.Wrist].ToMicroseconds(a.WristDeg),
	}
	if grip, ok := c[kinematics.Grip]; ok {
		cmd.GripUs = grip.CenterUs
	}
	return cmd
}

// DefaultCalibration matches the stock build: MG996R and 9g servos,
// 1500us center, ±600us over ±90°.
func DefaultCalibration() Calibration {
	std := ServoCalibration{
		CenterUs:    1500,
		UsPerDegree: 600.0 / 90.0,
		Direction:   1,
		MinUs:       900,
		MaxUs:       2100,
	}
	return Calibration{
		kinematics.Base:     std,
		kinematics.Shoulder: std,
		kinematics.Elbow:    std,
		kinematics.Wrist:    std,
	}
}
