// Package motion turns high-level pick-and-place requests into ordered
// servo command schedules and executes them without blocking the caller.
package motion

import (
	"time"

	"github.com/Syinaric/A.U.R.A.-Farm/pkg/arm"
	"github.com/Syinaric/A.U.R.A.-Farm/pkg/kinematics"
)

// WaypointSource is where a waypoint's command comes from: computed from
// a table-space target through IK, or a literal pre-recorded pulse frame.
// Literal frames still pass range validation; there is no bypass.
type WaypointSource interface {
	isSource()
}

// ComputedTarget solves the waypoint through the kinematics solver.
type ComputedTarget struct {
	Point kinematics.Target
}

func (ComputedTarget) isSource() {}

// LiteralCommand schedules a pre-recorded pulse frame as-is.
type LiteralCommand struct {
	Command arm.Command
}

func (LiteralCommand) isSource() {}

// Waypoint is one named stop in a motion.
type Waypoint struct {
	Label  string
	Source WaypointSource
	Dwell  time.Duration
}

// Step is a resolved waypoint: the command that goes on the wire, plus
// the solved angles when the waypoint was computed (nil for literals).
type Step struct {
	Waypoint Waypoint
	Angles   *kinematics.Angles
	Command  arm.Command
}

// Schedule is the ordered command list for one motion. It is built
// atomically, consumed once by the executor and then discarded.
type Schedule []Step

// Duration is the sum of all dwell times.
func (s Schedule) Duration() time.Duration {
	var total time.Duration
	for _, step := range s {
		total += step.Waypoint.Dwell
	}
	return total
}
