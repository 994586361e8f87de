// Package kinematics models the arm geometry and solves the inverse
// kinematics for the 4-DOF tabletop arm.
package kinematics

// JointName identifies a joint in the arm.
type JointName string

// Joint names for the 4-DOF arm. Grip is a fixed (non-actuated) hand on
// the stock build but named here so calibrations can carry it.
const (
	Base     JointName = "base"
	Shoulder JointName = "shoulder"
	Elbow    JointName = "elbow"
	Wrist    JointName = "wrist"
	Grip     JointName = "grip"
)

// ArmJoints returns the four solved joints in order.
func ArmJoints() []JointName {
	return []JointName{Base, Shoulder, Elbow, Wrist}
}
