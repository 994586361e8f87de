package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Plan      PlanCommand      `command:"plan" description:"Compute and print a motion schedule without touching hardware"`
	Run       RunCommand       `command:"run" description:"Execute a pick-and-place on the arm"`
	Simulate  SimulateCommand  `command:"simulate" alias:"sim" description:"Play a schedule in the terminal with a live joint chart"`
	Calibrate CalibrateCommand `command:"calibrate" alias:"cal" description:"Edit geometry and table calibration interactively"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "A.U.R.A. Farm - tabletop pick-and-place for a 4-DOF servo arm"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
