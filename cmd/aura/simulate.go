package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"go.uber.org/zap"

	"github.com/Syinaric/A.U.R.A.-Farm/pkg/arm"
	"github.com/Syinaric/A.U.R.A.-Farm/pkg/kinematics"
	"github.com/Syinaric/A.U.R.A.-Farm/pkg/motion"
)

type SimulateCommand struct {
	scheduleFlags
	Speed float64 `long:"speed" default:"10" description:"Dwell speedup factor"`
}

const (
	simHeaderHeight = 2
	simLegendHeight = 2
	simFooterHeight = 7
	simMaxLogs      = 5
	simBorderSize   = 2
)

var jointColors = map[kinematics.JointName]string{
	kinematics.Base:     "196", // red
	kinematics.Shoulder: "208", // orange
	kinematics.Elbow:    "226", // yellow
	kinematics.Wrist:    "46",  // green
}

var (
	simTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	simChartStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	simStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type simModel struct {
	executor *motion.Executor
	servos   arm.Calibration
	total    int

	chart    *streamlinechart.Model
	width    int
	height   int
	logs     []string
	step     int
	done     bool
	quitting bool
}

type progressMsg motion.Progress
type execDoneMsg struct{}

func waitForProgress(e *motion.Executor) tea.Cmd {
	return func() tea.Msg {
		return progressMsg(<-e.Progress())
	}
}

func waitForDone(e *motion.Executor) tea.Cmd {
	return func() tea.Msg {
		e.Wait()
		return execDoneMsg{}
	}
}

func initialSimModel(e *motion.Executor, servos arm.Calibration, total int) simModel {
	chart := streamlinechart.New(80, 20,
		streamlinechart.WithYRange(-90, 180),
	)
	for _, joint := range kinematics.ArmJoints() {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(jointColors[joint]))
		chart.SetDataSetStyles(string(joint), runes.ThinLineStyle, style)
	}
	return simModel{
		executor: e,
		servos:   servos,
		total:    total,
		chart:    &chart,
	}
}

func (m *simModel) addLog(msg string) {
	m.logs = append(m.logs, fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), msg))
	if len(m.logs) > simMaxLogs {
		m.logs = m.logs[len(m.logs)-simMaxLogs:]
	}
}

func (m *simModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 20
	}
	width = m.width - simBorderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - simHeaderHeight - simLegendHeight - simFooterHeight - simBorderSize
	if height < 10 {
		height = 10
	}
	return width, height
}

func (m simModel) Init() tea.Cmd {
	return tea.Batch(
		waitForProgress(m.executor),
		waitForDone(m.executor),
	)
}

func (m simModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w, h := m.chartSize()
		m.chart.Resize(w, h)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case progressMsg:
		p := motion.Progress(msg)
		if p.Err != nil {
			m.addLog(fmt.Sprintf("send failed at %s: %v", p.Step.Waypoint.Label, p.Err))
			return m, waitForProgress(m.executor)
		}
		m.step = p.Index + 1
		// Chart the commanded pose in degrees, literal steps included,
		// by mapping the pulses back through the calibration.
		for _, joint := range kinematics.ArmJoints() {
			deg := m.servos[joint].ToDegrees(p.Step.Command.Us(joint))
			m.chart.PushDataSet(string(joint), deg)
		}
		m.chart.DrawAll()
		m.addLog(fmt.Sprintf("[%d/%d] %s", m.step, p.Total, p.Step.Waypoint.Label))
		return m, waitForProgress(m.executor)

	case execDoneMsg:
		m.done = true
		m.addLog("schedule complete")
		return m, nil
	}

	return m, nil
}

func (m simModel) View() string {
	if m.quitting {
		return "Simulation stopped.\n"
	}

	var sb strings.Builder

	sb.WriteString(simTitleStyle.Render("A.U.R.A. Farm Simulate"))
	sb.WriteString(fmt.Sprintf(" - waypoint %d/%d", m.step, m.total))
	if m.done {
		sb.WriteString(simStatusStyle.Render("  (done)"))
	}
	sb.WriteString("\n\n")

	sb.WriteString(simChartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	sb.WriteString(simLegend())
	sb.WriteString("\n")

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(m.width - 4)

	var logLines string
	if len(m.logs) == 0 {
		logLines = simStatusStyle.Render("Press 'q' to quit")
	} else {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

func simLegend() string {
	var items []string
	for _, joint := range kinematics.ArmJoints() {
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(jointColors[joint])).Bold(true)
		items = append(items, colorStyle.Render("━━")+" "+string(joint))
	}
	return strings.Join(items, "  ")
}

func (c *SimulateCommand) Execute(args []string) error {
	cfg, schedule, err := c.buildSchedule()
	if err != nil {
		return err
	}

	if c.Speed > 1 {
		for i := range schedule {
			schedule[i].Waypoint.Dwell = time.Duration(float64(schedule[i].Waypoint.Dwell) / c.Speed)
		}
	}

	// The TUI owns the terminal; keep executor logging out of it.
	executor := motion.NewExecutor(arm.DiscardChannel{}, zap.NewNop().Sugar())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := executor.Start(ctx, schedule); err != nil {
		return err
	}

	p := tea.NewProgram(initialSimModel(executor, cfg.Servos, len(schedule)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
	return nil
}
