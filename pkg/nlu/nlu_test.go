package nlu

import (
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		text string
		want Command
	}{
		{
			"grab the red one and put it a little to the left",
			Command{
				Task:   TaskPickPlace,
				Target: Target{Kind: TargetColor, Value: "red"},
				Drop:   Drop{Mode: "relative", DX: -0.03},
			},
		},
		{
			"pick the bottle and move 5 cm forward",
			Command{
				Task:   TaskPickPlace,
				Target: Target{Kind: TargetLabel, Value: "bottle"},
				Drop:   Drop{Mode: "relative", DY: 0.05},
			},
		},
		{
			"nudge that 3 cm right",
			Command{
				Task:   TaskNudge,
				Target: Target{Kind: TargetNearest},
				Drop:   Drop{Mode: "relative", DX: 0.03},
			},
		},
		{
			"take the canada dry 20 mm back",
			Command{
				Task:   TaskPickPlace,
				Target: Target{Kind: TargetLabel, Value: "bottle"},
				Drop:   Drop{Mode: "relative", DY: -0.02},
			},
		},
		{
			"shift the cube slightly east",
			Command{
				Task:   TaskNudge,
				Target: Target{Kind: TargetLabel, Value: "cube"},
				Drop:   Drop{Mode: "relative", DX: 0.03},
			},
		},
		{
			"grab it",
			Command{
				Task:   TaskPickPlace,
				Target: Target{Kind: TargetNearest},
				Drop:   Drop{Mode: "relative"},
			},
		},
		{
			"open",
			Command{Task: TaskOpen, Target: Target{Kind: TargetNearest}},
		},
		{
			"close",
			Command{Task: TaskClose, Target: Target{Kind: TargetNearest}},
		},
	}

	for _, tt := range tests {
		got := Parse(tt.text)
		if got.Task != tt.want.Task {
			t.Errorf("Parse(%q).Task = %s, want %s", tt.text, got.Task, tt.want.Task)
		}
		if got.Target != tt.want.Target {
			t.Errorf("Parse(%q).Target = %+v, want %+v", tt.text, got.Target, tt.want.Target)
		}
		if math.Abs(got.Drop.DX-tt.want.Drop.DX) > 1e-9 || math.Abs(got.Drop.DY-tt.want.Drop.DY) > 1e-9 {
			t.Errorf("Parse(%q).Drop = %+v, want %+v", tt.text, got.Drop, tt.want.Drop)
		}
	}
}

func TestParseDistance(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"a little to the left", 0.03},
		{"5 cm left", 0.05},
		{"12 mm left", 0.012},
		{"0.1 m left", 0.1},
		{"2 meters left", 2},
		{"left", 0.03}, // no quantity, default
	}

	for _, tt := range tests {
		if got := parseDistance(tt.text); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("parseDistance(%q) = %f, want %f", tt.text, got, tt.want)
		}
	}
}
