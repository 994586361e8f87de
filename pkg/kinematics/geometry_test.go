package kinematics

import (
	"errors"
	"math"
	"strings"
	"testing"

	"go.uber.org/multierr"
)

func TestGeometry_ValidateDefault(t *testing.T) {
	if err := DefaultGeometry().Validate(); err != nil {
		t.Fatalf("default geometry invalid: %v", err)
	}
}

func TestGeometry_ValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Geometry)
		field  string
	}{
		{"zero upper arm", func(g *Geometry) { g.UpperArm = 0 }, "upper_arm_length_m"},
		{"negative hand", func(g *Geometry) { g.HandLength = -0.01 }, "hand_length_m"},
		{"inverted limits", func(g *Geometry) {
			g.Limits[Elbow] = Limits{MinDeg: 180, MaxDeg: 0}
		}, "joint_limits"},
		{"missing limits", func(g *Geometry) { delete(g.Limits, Wrist) }, "joint_limits"},
		{"home outside limits", func(g *Geometry) {
			g.Limits[Shoulder] = Limits{MinDeg: 10, MaxDeg: 90}
		}, "joint_limits"},
		{"bad branch", func(g *Geometry) { g.Branch = "sideways" }, "elbow_branch"},
	}

	for _, tt := range tests {
		g := DefaultGeometry()
		tt.mutate(g)
		err := g.Validate()
		if err == nil {
			t.Errorf("%s: Validate passed, want error", tt.name)
			continue
		}
		var cfg *ConfigError
		if !errors.As(err, &cfg) {
			t.Errorf("%s: error %v is not a ConfigError", tt.name, err)
			continue
		}
		if !strings.Contains(err.Error(), tt.field) {
			t.Errorf("%s: error %q does not mention %s", tt.name, err, tt.field)
		}
	}
}

func TestGeometry_ValidateAggregates(t *testing.T) {
	g := DefaultGeometry()
	g.UpperArm = 0
	g.LowerArm = -1
	delete(g.Limits, Base)

	err := g.Validate()
	if err == nil {
		t.Fatal("Validate passed, want errors")
	}
	if n := len(multierr.Errors(err)); n < 3 {
		t.Errorf("Validate returned %d errors, want all violations reported", n)
	}
}

func TestGeometry_Reach(t *testing.T) {
	g := DefaultGeometry()
	if got := g.MaxReach(); math.Abs(got-0.21) > 1e-12 {
		t.Errorf("MaxReach = %f, want 0.21", got)
	}
	if got := g.MinReach(); math.Abs(got-0.03) > 1e-12 {
		t.Errorf("MinReach = %f, want 0.03", got)
	}
}
