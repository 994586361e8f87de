package motion

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Syinaric/A.U.R.A.-Farm/pkg/arm"
	"github.com/Syinaric/A.U.R.A.-Farm/pkg/kinematics"
)

func testPlanner(t *testing.T) *Planner {
	t.Helper()
	p, err := NewPlanner(kinematics.DefaultGeometry(), arm.DefaultCalibration(), DefaultParams())
	require.NoError(t, err)
	return p
}

func TestPlanner_PickPlace(t *testing.T) {
	p := testPlanner(t)

	schedule, err := p.PickPlace(
		kinematics.Target{X: 0.15, Y: 0},
		kinematics.Target{X: 0.10, Y: 0.10},
	)
	require.NoError(t, err)
	require.Len(t, schedule, 6)

	labels := make([]string, 0, len(schedule))
	for _, step := range schedule {
		labels = append(labels, step.Waypoint.Label)
	}
	assert.Equal(t, []string{"approach", "pick", "lift", "transfer", "drop", "home"}, labels)

	// Computed steps carry their solved angles.
	for _, step := range schedule {
		require.NotNil(t, step.Angles, "step %s", step.Waypoint.Label)
		assert.NotZero(t, step.Command.BaseUs, "step %s", step.Waypoint.Label)
	}

	// approach and lift revisit the same point, so the same command.
	assert.Equal(t, schedule[0].Command, schedule[2].Command)

	// pick descends: the grab height differs from the approach height.
	assert.NotEqual(t, schedule[0].Command, schedule[1].Command)

	// transfer rotates the base toward the drop point.
	assert.NotEqual(t, schedule[2].Command.BaseUs, schedule[3].Command.BaseUs)
}

func TestPlanner_Atomicity(t *testing.T) {
	p := testPlanner(t)

	// Reachable pick, unreachable drop: the schedule fails as a whole,
	// not truncated after the lift.
	schedule, err := p.PickPlace(
		kinematics.Target{X: 0.15, Y: 0},
		kinematics.Target{X: 0.25, Y: 0},
	)
	assert.Nil(t, schedule)

	var unreachable *kinematics.UnreachableError
	require.ErrorAs(t, err, &unreachable)
	assert.Contains(t, err.Error(), "transfer")
}

func TestPlanner_LiteralValidation(t *testing.T) {
	p := testPlanner(t)

	// A literal frame outside the calibrated pulse range must not reach
	// the schedule, even though literals skip IK.
	schedule, err := p.Plan([]Waypoint{{
		Label:  "bad",
		Source: LiteralCommand{Command: arm.Command{BaseUs: 2600, ShoulderUs: 1500, ElbowUs: 1500, WristUs: 1500}},
	}})
	assert.Nil(t, schedule)

	var cfg *kinematics.ConfigError
	require.ErrorAs(t, err, &cfg)
}

func TestPlanner_FallbackPickup(t *testing.T) {
	p := testPlanner(t)

	schedule, err := p.Plan(FallbackPickup())
	require.NoError(t, err)
	require.Len(t, schedule, 15)

	for _, step := range schedule {
		assert.Nil(t, step.Angles, "literal step %s must not carry angles", step.Waypoint.Label)
		assert.True(t, step.Command.InRange(p.cal), "step %s", step.Waypoint.Label)
	}
	assert.Equal(t, "approach", schedule[0].Waypoint.Label)
	assert.Equal(t, "home", schedule[len(schedule)-1].Waypoint.Label)
}

func TestPlanner_Nudge(t *testing.T) {
	p := testPlanner(t)

	schedule, err := p.Nudge(kinematics.Target{X: 0.15, Y: 0}, -0.03, 0)
	require.NoError(t, err)
	require.Len(t, schedule, 5)

	// descend and push stay at grasp height but move in the plane.
	assert.NotEqual(t, schedule[1].Command, schedule[2].Command)
}

func TestPlanner_PickOffset(t *testing.T) {
	p := testPlanner(t)

	byOffset, err := p.PickOffset(kinematics.Target{X: 0.15, Y: 0}, -0.05, 0.02)
	require.NoError(t, err)

	explicit, err := p.PickPlace(
		kinematics.Target{X: 0.15, Y: 0},
		kinematics.Target{X: 0.10, Y: 0.02},
	)
	require.NoError(t, err)
	assert.Equal(t, explicit, byOffset)
}

func TestPlanner_DefaultOffsetDropPlans(t *testing.T) {
	// The stock pick at (0.15, 0) nudged 5cm closer: the transfer
	// waypoint levels the wrist past -90, which the default geometry
	// must still plan.
	p := testPlanner(t)

	schedule, err := p.PickOffset(kinematics.Target{X: 0.15, Y: 0}, -0.05, 0)
	require.NoError(t, err)

	var transfer *Step
	for i := range schedule {
		if schedule[i].Waypoint.Label == "transfer" {
			transfer = &schedule[i]
		}
	}
	require.NotNil(t, transfer)
	require.NotNil(t, transfer.Angles)
	assert.Less(t, transfer.Angles.WristDeg, -90.0)
	assert.True(t, transfer.Command.InRange(p.cal), "clamped pulses stay in servo range")
}

func TestNewPlanner_RejectsBadConfig(t *testing.T) {
	geo := kinematics.DefaultGeometry()
	geo.UpperArm = 0

	_, err := NewPlanner(geo, arm.DefaultCalibration(), DefaultParams())
	var cfg *kinematics.ConfigError
	require.ErrorAs(t, err, &cfg)
}

func TestNewPlanner_HomePrecondition(t *testing.T) {
	params := DefaultParams()
	params.Home = kinematics.Target{X: 0.5, Y: 0, Z: 0.03}

	_, err := NewPlanner(kinematics.DefaultGeometry(), arm.DefaultCalibration(), params)
	require.Error(t, err)
	var unreachable *kinematics.UnreachableError
	assert.True(t, errors.As(err, &unreachable), "want UnreachableError, got %v", err)
}

func TestParams_Validate(t *testing.T) {
	bad := DefaultParams()
	bad.SafeHeight = 0.001 // below grasp height
	bad.DwellSec = -1

	_, err := NewPlanner(kinematics.DefaultGeometry(), arm.DefaultCalibration(), bad)
	require.Error(t, err)
}

func TestSchedule_Duration(t *testing.T) {
	p := testPlanner(t)
	schedule, err := p.Home()
	require.NoError(t, err)
	assert.Equal(t, p.params.dwell(), schedule.Duration())
}
