package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type PlanCommand struct {
	scheduleFlags
}

func (c *PlanCommand) Execute(args []string) error {
	_, schedule, err := c.buildSchedule()
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render("Motion schedule"))
	fmt.Println()

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("#", "WAYPOINT", "ANGLES (deg)", "PULSE (us)", "DWELL")

	for i, step := range schedule {
		angles := "literal"
		if step.Angles != nil {
			angles = fmt.Sprintf("b %.1f  s %.1f  e %.1f  w %.1f",
				step.Angles.BaseDeg, step.Angles.ShoulderDeg, step.Angles.ElbowDeg, step.Angles.WristDeg)
		}
		t.Row(
			fmt.Sprintf("%d", i+1),
			step.Waypoint.Label,
			angles,
			fmt.Sprintf("%d %d %d %d",
				step.Command.BaseUs, step.Command.ShoulderUs, step.Command.ElbowUs, step.Command.WristUs),
			step.Waypoint.Dwell.String(),
		)
	}
	fmt.Println(t.Render())

	fmt.Println(dimStyle.Render(fmt.Sprintf("%d waypoints, %s total", len(schedule), schedule.Duration())))
	return nil
}
