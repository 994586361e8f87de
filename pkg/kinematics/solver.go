package kinematics

import (
	"fmt"
	"math"
)

// Target is a point in table coordinates, meters, z up from the table
// surface. It is the grab point, not the wrist position.
type Target struct {
	X float64 `json:"x_m"`
	Y float64 `json:"y_m"`
	Z float64 `json:"z_m"`
}

// Angles is a solved joint configuration, degrees.
type Angles struct {
	BaseDeg     float64
	ShoulderDeg float64
	ElbowDeg    float64
	WristDeg    float64
}

// UnreachableError reports a target whose shoulder-to-wrist distance
// falls outside the arm's annulus.
type UnreachableError struct {
	Target   Target
	Distance float64
	Min, Max float64
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("target (%.3f, %.3f, %.3f) unreachable: distance %.4fm outside [%.4f, %.4f]",
		e.Target.X, e.Target.Y, e.Target.Z, e.Distance, e.Min, e.Max)
}

// LimitError reports a solved angle outside the configured joint limits.
// The solver never clamps; infeasible targets are rejected before any
// command reaches hardware.
type LimitError struct {
	Joint    JointName
	ValueDeg float64
	Limits   Limits
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s angle %.2f° outside limits [%.1f, %.1f]",
		e.Joint, e.ValueDeg, e.Limits.MinDeg, e.Limits.MaxDeg)
}

// acosEps absorbs float error pushing an acos argument just past ±1.
// Anything further out is a genuine unreachable target.
const acosEps = 1e-9

// limitEps is the slack on joint-limit checks, far below servo
// resolution. Boundary targets solve to angles exactly on a limit and
// must not be rejected for rounding.
const limitEps = 1e-6

func acosDeg(x float64) float64 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	return math.Acos(x) * 180 / math.Pi
}

// Solve computes the joint angles placing the grab point at t.
//
// The base yaw aims the planar arm at the target. Because the hand
// extends HandLength straight down from the wrist, the planar sub-problem
// targets the wrist at z + HandLength. Shoulder and elbow come from the
// law of cosines on the two-link chain; the wrist angle is the closed-form
// leveling constraint that keeps the hand perpendicular to the table:
//
//	wrist = 90 − shoulder − elbow
//
// The elbow angle is reported as deflection from fully extended, so a
// straight arm solves with elbow ≈ 0.
func (g *Geometry) Solve(t Target) (Angles, error) {
	dx := t.X - g.Mount.X
	dy := t.Y - g.Mount.Y

	baseDeg := math.Atan2(dy, dx)*180/math.Pi - g.Mount.RotationDeg

	r := math.Hypot(dx, dy)
	wristZ := t.Z + g.HandLength
	dz := wristZ - (g.Mount.Z + g.ShoulderHeight)
	d := math.Hypot(r, dz)

	l1, l2 := g.UpperArm, g.LowerArm
	minD, maxD := g.MinReach(), g.MaxReach()
	if d < acosEps || d < minD-acosEps || d > maxD+acosEps {
		return Angles{}, &UnreachableError{Target: t, Distance: d, Min: minD, Max: maxD}
	}

	// Interior elbow angle of the shoulder-elbow-wrist triangle.
	interior := acosDeg((l1*l1 + l2*l2 - d*d) / (2 * l1 * l2))
	elbowDeg := 180 - interior

	// Angle at the shoulder between the upper arm and the chord to the
	// wrist, added to (down branch) or subtracted from (up branch) the
	// chord's elevation.
	beta := acosDeg((l1*l1 + d*d - l2*l2) / (2 * l1 * d))
	elev := math.Atan2(dz, r) * 180 / math.Pi

	var shoulderDeg float64
	if g.branch() == ElbowUp {
		shoulderDeg = elev - beta
	} else {
		shoulderDeg = elev + beta
	}

	wristDeg := 90 - shoulderDeg - elbowDeg

	sol := Angles{
		BaseDeg:     baseDeg,
		ShoulderDeg: shoulderDeg,
		ElbowDeg:    elbowDeg,
		WristDeg:    wristDeg,
	}

	for _, joint := range ArmJoints() {
		lim, ok := g.Limits[joint]
		if !ok {
			continue
		}
		if deg := sol.Deg(joint); deg < lim.MinDeg-limitEps || deg > lim.MaxDeg+limitEps {
			return Angles{}, &LimitError{Joint: joint, ValueDeg: deg, Limits: lim}
		}
	}

	return sol, nil
}

// Deg returns the angle for the named joint, 0 for unknown names.
func (a Angles) Deg(joint JointName) float64 {
	switch joint {
	case Base:
		return a.BaseDeg
	case Shoulder:
		return a.ShoulderDeg
	case Elbow:
		return a.ElbowDeg
	case Wrist:
		return a.WristDeg
	}
	return 0
}
