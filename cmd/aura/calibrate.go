package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Syinaric/A.U.R.A.-Farm/pkg/motion"
)

var successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

type CalibrateCommand struct {
	Config string `long:"config" default:"aura.json" description:"Configuration file"`
}

func (c *CalibrateCommand) Execute(args []string) error {
	cfg, err := motion.LoadConfigFrom(c.Config)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render("A.U.R.A. Farm Calibration"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━━━━━━━━━━"))
	fmt.Println()

	if err := editGeometry(cfg); err != nil {
		return err
	}
	if err := editTable(cfg); err != nil {
		return err
	}
	if err := editMotion(cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.SaveTo(c.Config); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(successStyle.Render("Calibration saved to " + c.Config))
	return nil
}

// meterField binds a float in meters to a huh text input.
func meterField(title string, v *float64) *huh.Input {
	s := strconv.FormatFloat(*v, 'g', -1, 64)
	return huh.NewInput().
		Title(title).
		Value(&s).
		Validate(func(in string) error {
			parsed, err := strconv.ParseFloat(in, 64)
			if err != nil {
				return fmt.Errorf("not a number: %s", in)
			}
			*v = parsed
			return nil
		})
}

func editGeometry(cfg *motion.Config) error {
	g := cfg.Geometry
	form := huh.NewForm(
		huh.NewGroup(
			meterField("Shoulder height (m)", &g.ShoulderHeight),
			meterField("Upper arm length (m)", &g.UpperArm),
			meterField("Lower arm length (m)", &g.LowerArm),
			meterField("Hand length (m)", &g.HandLength),
			meterField("Arm base x on table (m)", &g.Mount.X),
			meterField("Arm base y on table (m)", &g.Mount.Y),
		).Title("Arm geometry"),
	)
	return form.Run()
}

func editTable(cfg *motion.Config) error {
	t := &cfg.Table
	form := huh.NewForm(
		huh.NewGroup(
			meterField("Table origin pixel x", &t.OriginPxX),
			meterField("Table origin pixel y", &t.OriginPxY),
			meterField("Meters per pixel x", &t.ScaleX),
			meterField("Meters per pixel y", &t.ScaleY),
			huh.NewConfirm().Title("Flip camera Y axis?").Value(&t.FlipY),
		).Title("Camera / table mapping"),
	)
	return form.Run()
}

func editMotion(cfg *motion.Config) error {
	m := &cfg.Motion
	form := huh.NewForm(
		huh.NewGroup(
			meterField("Safe travel height (m)", &m.SafeHeight),
			meterField("Grasp height (m)", &m.GraspHeight),
			meterField("Dwell per waypoint (s)", &m.DwellSec),
		).Title("Motion parameters"),
	)
	return form.Run()
}
