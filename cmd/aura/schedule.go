package main

import (
	"github.com/pkg/errors"

	"github.com/Syinaric/A.U.R.A.-Farm/pkg/kinematics"
	"github.com/Syinaric/A.U.R.A.-Farm/pkg/motion"
	"github.com/Syinaric/A.U.R.A.-Farm/pkg/nlu"
)

// scheduleFlags are the target options shared by plan, run and simulate.
type scheduleFlags struct {
	Config   string  `long:"config" default:"aura.json" description:"Configuration file"`
	X        float64 `long:"x" default:"0.15" description:"Pick point x in table meters"`
	Y        float64 `long:"y" default:"0.0" description:"Pick point y in table meters"`
	DX       float64 `long:"dx" default:"-0.05" description:"Drop offset x in meters"`
	DY       float64 `long:"dy" default:"0.0" description:"Drop offset y in meters"`
	Say      string  `long:"say" description:"Natural-language command, e.g. 'grab it and put it a little to the left'"`
	Fallback bool    `long:"fallback" description:"Use the hand-tuned pickup sequence instead of computed targets"`
}

// buildSchedule loads configuration and resolves the requested motion.
func (f *scheduleFlags) buildSchedule() (*motion.Config, motion.Schedule, error) {
	cfg, err := motion.LoadConfigFrom(f.Config)
	if err != nil {
		return nil, nil, err
	}
	planner, err := cfg.Planner()
	if err != nil {
		return nil, nil, err
	}

	if f.Fallback {
		schedule, err := planner.Plan(motion.FallbackPickup())
		return cfg, schedule, err
	}

	pick := kinematics.Target{X: f.X, Y: f.Y}

	if f.Say != "" {
		cmd := nlu.Parse(f.Say)
		switch cmd.Task {
		case nlu.TaskNudge:
			schedule, err := planner.Nudge(pick, cmd.Drop.DX, cmd.Drop.DY)
			return cfg, schedule, err
		case nlu.TaskOpen, nlu.TaskClose:
			return nil, nil, errors.Errorf("%q needs a gripper; this build has a fixed hand", cmd.Task)
		default:
			schedule, err := planner.PickOffset(pick, cmd.Drop.DX, cmd.Drop.DY)
			return cfg, schedule, err
		}
	}

	schedule, err := planner.PickOffset(pick, f.DX, f.DY)
	return cfg, schedule, err
}
