package kinematics

import (
	"fmt"

	"go.uber.org/multierr"
)

// ElbowBranch selects which of the two planar IK solutions the solver
// returns. The stock arm only clears its own base with the down branch.
type ElbowBranch string

const (
	ElbowDown ElbowBranch = "down"
	ElbowUp   ElbowBranch = "up"
)

// Limits is the allowed angle range for one joint, in degrees.
type Limits struct {
	MinDeg float64 `json:"min_deg"`
	MaxDeg float64 `json:"max_deg"`
}

// Contains reports whether deg falls inside the range.
func (l Limits) Contains(deg float64) bool {
	return deg >= l.MinDeg && deg <= l.MaxDeg
}

// Mount is the arm base position and orientation in table coordinates.
type Mount struct {
	X           float64 `json:"x_m"`
	Y           float64 `json:"y_m"`
	Z           float64 `json:"z_m"`
	RotationDeg float64 `json:"rotation_deg"`
}

// Geometry is the immutable physical description of the arm: link
// lengths, joint limits and mounting offset. It is loaded once at startup
// and shared read-only; re-calibration builds a new instance.
type Geometry struct {
	BaseHeight     float64 `json:"base_height_m"`
	ShoulderHeight float64 `json:"shoulder_height_m"`
	UpperArm       float64 `json:"upper_arm_length_m"`
	LowerArm       float64 `json:"lower_arm_length_m"`
	HandLength     float64 `json:"hand_length_m"`

	Limits map[JointName]Limits `json:"joint_limits"`
	Mount  Mount                `json:"mount"`
	Branch ElbowBranch          `json:"elbow_branch,omitempty"`
}

// ConfigError reports a geometry or calibration invariant violated at
// load time. Planning never proceeds past one.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Reason)
}

func configErrf(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// homeDeg is the home angle for every joint (servo center).
const homeDeg = 0.0

// Validate checks all geometry invariants and returns every violation
// found, aggregated.
func (g *Geometry) Validate() error {
	var err error

	lengths := map[string]float64{
		"base_height_m":      g.BaseHeight,
		"shoulder_height_m":  g.ShoulderHeight,
		"upper_arm_length_m": g.UpperArm,
		"lower_arm_length_m": g.LowerArm,
		"hand_length_m":      g.HandLength,
	}
	for field, v := range lengths {
		if v <= 0 {
			err = multierr.Append(err, configErrf(field, "must be positive, got %v", v))
		}
	}
	if g.UpperArm+g.LowerArm <= 0 {
		err = multierr.Append(err, configErrf("arm_lengths", "upper + lower must be positive"))
	}

	for _, joint := range ArmJoints() {
		lim, ok := g.Limits[joint]
		if !ok {
			err = multierr.Append(err, configErrf("joint_limits", "missing limits for %s", joint))
			continue
		}
		if lim.MinDeg >= lim.MaxDeg {
			err = multierr.Append(err, configErrf("joint_limits",
				"%s: min %v must be below max %v", joint, lim.MinDeg, lim.MaxDeg))
		}
		if !lim.Contains(homeDeg) {
			err = multierr.Append(err, configErrf("joint_limits",
				"%s: range [%v, %v] does not bracket the home angle", joint, lim.MinDeg, lim.MaxDeg))
		}
	}

	switch g.Branch {
	case "", ElbowDown, ElbowUp:
	default:
		err = multierr.Append(err, configErrf("elbow_branch", "unknown branch %q", g.Branch))
	}

	return err
}

// branch returns the configured elbow branch, defaulting to down.
func (g *Geometry) branch() ElbowBranch {
	if g.Branch == ElbowUp {
		return ElbowUp
	}
	return ElbowDown
}

// MaxReach is the fully extended shoulder-to-wrist distance.
func (g *Geometry) MaxReach() float64 {
	return g.UpperArm + g.LowerArm
}

// MinReach is the inner dead-zone radius around the shoulder.
func (g *Geometry) MinReach() float64 {
	d := g.UpperArm - g.LowerArm
	if d < 0 {
		return -d
	}
	return d
}

// DefaultGeometry returns the geometry of the stock build: MG996R base,
// shoulder and elbow, 9g wrist, hand locked pointing down.
func DefaultGeometry() *Geometry {
	return &Geometry{
		BaseHeight:     0.0612,
		ShoulderHeight: 0.095,
		UpperArm:       0.12,
		LowerArm:       0.09,
		HandLength:     0.06,
		Limits: map[JointName]Limits{
			Base:     {MinDeg: -90, MaxDeg: 90},
			Shoulder: {MinDeg: -90, MaxDeg: 90},
			Elbow:    {MinDeg: 0, MaxDeg: 180},
			// Leveling a close-in target at safe height swings the
			// wrist past -90; the pulse clamp still bounds the servo.
			Wrist: {MinDeg: -120, MaxDeg: 120},
		},
		Branch: ElbowDown,
	}
}
