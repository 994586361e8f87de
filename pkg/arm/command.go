package arm

import "github.com/Syinaric/A.U.R.A.-Farm/pkg/kinematics"

// Command is one wire-ready servo frame: pulse widths in microseconds,
// named by joint. GripUs is zero when the build has no grip servo.
type Command struct {
	BaseUs     int `json:"base_us"`
	ShoulderUs int `json:"shoulder_us"`
	ElbowUs    int `json:"elbow_us"`
	WristUs    int `json:"wrist_us"`
	GripUs     int `json:"grip_us,omitempty"`
}

// Us returns the pulse width for the named joint.
func (c Command) Us(joint kinematics.JointName) int {
	switch joint {
	case kinematics.Base:
		return c.BaseUs
	case kinematics.Shoulder:
		return c.ShoulderUs
	case kinematics.Elbow:
		return c.ElbowUs
	case kinematics.Wrist:
		return c.WristUs
	case kinematics.Grip:
		return c.GripUs
	}
	return 0
}

// InRange reports whether every arm joint's pulse falls inside the
// calibrated clamp range. Literal (pre-recorded) commands go through this
// before they are scheduled.
func (c Command) InRange(cal Calibration) bool {
	for _, joint := range kinematics.ArmJoints() {
		sc, ok := cal[joint]
		if !ok {
			return false
		}
		us := c.Us(joint)
		if us < sc.MinUs || us > sc.MaxUs {
			return false
		}
	}
	return true
}
