package motion

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/Syinaric/A.U.R.A.-Farm/pkg/arm"
	"github.com/Syinaric/A.U.R.A.-Farm/pkg/kinematics"
)

// Params are the sequencer's tunables. Heights are table-space meters:
// SafeHeight is the clearance for approach/transfer moves, GraspHeight
// the lowest commanded grab height (the hand grasps by mechanical taper
// on the way down, there is no gripper actuation).
type Params struct {
	SafeHeight  float64           `json:"safe_height_m"`
	GraspHeight float64           `json:"grasp_height_m"`
	Home        kinematics.Target `json:"home"`
	DwellSec    float64           `json:"dwell_s"`
}

// DefaultParams matches the stock table setup.
func DefaultParams() Params {
	return Params{
		SafeHeight:  0.08,
		GraspHeight: 0.005,
		Home:        kinematics.Target{X: 0.15, Y: 0, Z: 0.08},
		DwellSec:    2.0,
	}
}

func (p Params) validate() error {
	var err error
	if p.GraspHeight < 0 {
		err = multierr.Append(err, &kinematics.ConfigError{
			Field: "grasp_height_m", Reason: "must not be below the table",
		})
	}
	if p.SafeHeight <= p.GraspHeight {
		err = multierr.Append(err, &kinematics.ConfigError{
			Field: "safe_height_m", Reason: "must clear the grasp height",
		})
	}
	if p.DwellSec < 0 {
		err = multierr.Append(err, &kinematics.ConfigError{
			Field: "dwell_s", Reason: "must not be negative",
		})
	}
	return err
}

func (p Params) dwell() time.Duration {
	return time.Duration(p.DwellSec * float64(time.Second))
}

// Planner resolves motion requests into schedules. It is pure
// computation over immutable configuration: safe for concurrent use.
type Planner struct {
	geo    *kinematics.Geometry
	cal    arm.Calibration
	params Params
}

// NewPlanner validates the configuration once up front, including the
// precondition that the home point solves under the configured elbow
// branch. A branch/limit mismatch fails here, not mid-motion.
func NewPlanner(geo *kinematics.Geometry, cal arm.Calibration, params Params) (*Planner, error) {
	err := multierr.Combine(geo.Validate(), cal.Validate(), params.validate())
	if err != nil {
		return nil, err
	}
	if _, err := geo.Solve(params.Home); err != nil {
		branch := geo.Branch
		if branch == "" {
			branch = kinematics.ElbowDown
		}
		return nil, errors.Wrapf(err, "home point unsolvable under %s elbow branch", branch)
	}
	return &Planner{geo: geo, cal: cal, params: params}, nil
}

// Plan resolves waypoints into a schedule. It fails fast: the first
// unreachable target, limit violation or out-of-range literal aborts the
// build and no schedule is returned. A partial motion left mid-air risks
// dropping or colliding with the object.
func (p *Planner) Plan(waypoints []Waypoint) (Schedule, error) {
	schedule := make(Schedule, 0, len(waypoints))
	for _, wp := range waypoints {
		step, err := p.resolve(wp)
		if err != nil {
			return nil, fmt.Errorf("waypoint %q: %w", wp.Label, err)
		}
		schedule = append(schedule, step)
	}
	return schedule, nil
}

func (p *Planner) resolve(wp Waypoint) (Step, error) {
	switch src := wp.Source.(type) {
	case ComputedTarget:
		angles, err := p.geo.Solve(src.Point)
		if err != nil {
			return Step{}, err
		}
		return Step{Waypoint: wp, Angles: &angles, Command: p.cal.Command(angles)}, nil
	case LiteralCommand:
		if !src.Command.InRange(p.cal) {
			return Step{}, &kinematics.ConfigError{
				Field:  "literal command",
				Reason: "pulse width outside calibrated range",
			}
		}
		return Step{Waypoint: wp, Command: src.Command}, nil
	default:
		return Step{}, fmt.Errorf("unknown waypoint source %T", wp.Source)
	}
}

// PickPlace plans the full pick-and-place motion: approach above the
// pick point, descend to grasp, lift, transfer at safe height, descend
// to drop, return home. Only the (x, y) of pick and drop are used;
// heights come from Params.
func (p *Planner) PickPlace(pick, drop kinematics.Target) (Schedule, error) {
	dwell := p.params.dwell()
	return p.Plan([]Waypoint{
		p.at("approach", pick, p.params.SafeHeight, dwell),
		p.at("pick", pick, p.params.GraspHeight, dwell),
		p.at("lift", pick, p.params.SafeHeight, dwell),
		p.at("transfer", drop, p.params.SafeHeight, dwell),
		p.at("drop", drop, p.params.GraspHeight, dwell),
		{Label: "home", Source: ComputedTarget{Point: p.params.Home}, Dwell: dwell},
	})
}

// PickOffset plans a pick-and-place whose drop point is a relative
// offset from the pick point, the shape natural-language commands
// produce ("a little to the left").
func (p *Planner) PickOffset(pick kinematics.Target, dx, dy float64) (Schedule, error) {
	drop := kinematics.Target{X: pick.X + dx, Y: pick.Y + dy, Z: pick.Z}
	return p.PickPlace(pick, drop)
}

// Nudge slides an object along the table without lifting it: approach,
// descend beside it, push to the offset at grasp height, raise, home.
func (p *Planner) Nudge(target kinematics.Target, dx, dy float64) (Schedule, error) {
	dwell := p.params.dwell()
	dest := kinematics.Target{X: target.X + dx, Y: target.Y + dy}
	return p.Plan([]Waypoint{
		p.at("approach", target, p.params.SafeHeight, dwell),
		p.at("descend", target, p.params.GraspHeight, dwell),
		p.at("push", dest, p.params.GraspHeight, dwell),
		p.at("raise", dest, p.params.SafeHeight, dwell),
		{Label: "home", Source: ComputedTarget{Point: p.params.Home}, Dwell: dwell},
	})
}

// Home plans the single move back to the configured home point.
func (p *Planner) Home() (Schedule, error) {
	return p.Plan([]Waypoint{
		{Label: "home", Source: ComputedTarget{Point: p.params.Home}, Dwell: p.params.dwell()},
	})
}

func (p *Planner) at(label string, t kinematics.Target, z float64, dwell time.Duration) Waypoint {
	return Waypoint{
		Label:  label,
		Source: ComputedTarget{Point: kinematics.Target{X: t.X, Y: t.Y, Z: z}},
		Dwell:  dwell,
	}
}

// FallbackPickup is the hand-tuned pickup recorded on the real arm:
// grab the object straight ahead and set it down to the left, with
// intermediate steps so the unregulated servos don't whip. Computed
// per-target motion is the default; this sequence exists for the runs
// where calibration drift makes it the safer choice. It goes through
// Plan like any other motion, so the pulses still get range-checked.
func FallbackPickup() []Waypoint {
	steps := []struct {
		label string
		us    [4]int
		dwell time.Duration
	}{
		{"approach", [4]int{1500, 1700, 1700, 1500}, 3 * time.Second},
		{"lower_partway", [4]int{1500, 1300, 1900, 1500}, 2500 * time.Millisecond},
		{"lower", [4]int{1500, 900, 2100, 1500}, 3 * time.Second},
		{"lift_partway", [4]int{1500, 1300, 1900, 1500}, 2500 * time.Millisecond},
		{"lift", [4]int{1500, 1700, 1700, 1500}, 3 * time.Second},
		{"move_left_partway", [4]int{1350, 1700, 1700, 1500}, 2500 * time.Millisecond},
		{"move_left", [4]int{1200, 1700, 1700, 1500}, 3 * time.Second},
		{"lower_drop_partway", [4]int{1200, 1300, 1900, 1500}, 2500 * time.Millisecond},
		{"drop", [4]int{1200, 900, 2100, 1500}, 3 * time.Second},
		{"release_partway", [4]int{1200, 1300, 1900, 1500}, 2500 * time.Millisecond},
		{"release", [4]int{1200, 1700, 1700, 1500}, 3 * time.Second},
		{"return_base_partway", [4]int{1350, 1700, 1700, 1500}, 2500 * time.Millisecond},
		{"return_base", [4]int{1500, 1700, 1700, 1500}, 3 * time.Second},
		{"home_transition", [4]int{1500, 1600, 1600, 1500}, 2 * time.Second},
		{"home", [4]int{1500, 1500, 1500, 1500}, 3 * time.Second},
	}

	waypoints := make([]Waypoint, 0, len(steps))
	for _, s := range steps {
		waypoints = append(waypoints, Waypoint{
			Label: s.label,
			Source: LiteralCommand{Command: arm.Command{
				BaseUs:     s.us[0],
				ShoulderUs: s.us[1],
				ElbowUs:    s.us[2],
				WristUs:    s.us[3],
			}},
			Dwell: s.dwell,
		})
	}
	return waypoints
}
