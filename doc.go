// Package aura is the motion-planning core for the A.U.R.A. Farm
// tabletop arm: a 4-DOF servo arm that picks objects off a table given
// either a detected position or a natural-language command.
//
// The kernel turns a target point in table coordinates into a
// time-ordered schedule of joint angles and their pulse-width encodings,
// checked against the arm's reachable envelope and joint limits before
// anything reaches hardware.
//
// # Usage
//
// Print a schedule without hardware:
//
//	aura plan --x 0.15 --y 0 --say "put it a little to the left"
//
// Execute on the arm:
//
//	aura run --port /dev/ttyUSB0
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/aura: CLI with plan, run, simulate and calibrate commands
//   - pkg/kinematics: arm geometry, inverse kinematics, table calibration
//   - pkg/arm: servo calibration, pulse mapping, actuator channels
//   - pkg/motion: waypoint sequencing and non-blocking execution
//   - pkg/nlu: natural-language command parsing
package aura
