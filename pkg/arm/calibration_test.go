package arm

import (
	"math"
	"testing"

	"github.com/Syinaric/A.U.R.A.-Farm/pkg/kinematics"
)

func TestServoCalibration_ToMicroseconds(t *testing.T) {
	cal := ServoCalibration{
		CenterUs:    1500,
		UsPerDegree: 600.0 / 90.0,
		Direction:   1,
		MinUs:       900,
		MaxUs:       2100,
	}

	tests := []struct {
		deg      float64
		expected int
	}{
		{0, 1500},     // home -> center
		{90, 2100},    // max of linear range
		{-90, 900},    // min of linear range
		{45, 1800},
		{-45, 1200},
		{120, 2100},   // clamped high, silently
		{-120, 900},   // clamped low, silently
	}

	for _, tt := range tests {
		got := cal.ToMicroseconds(tt.deg)
		if got != tt.expected {
			t.Errorf("ToMicroseconds(%f) = %d, want %d", tt.deg, got, tt.expected)
		}
	}
}

func TestServoCalibration_Direction(t *testing.T) {
	cal := ServoCalibration{
		CenterUs:    1500,
		UsPerDegree: 600.0 / 90.0,
		Direction:   -1,
		MinUs:       900,
		MaxUs:       2100,
	}

	if got := cal.ToMicroseconds(45); got != 1200 {
		t.Errorf("ToMicroseconds(45) with direction -1 = %d, want 1200", got)
	}
	if got := cal.ToDegrees(1200); math.Abs(got-45) > 1e-9 {
		t.Errorf("ToDegrees(1200) with direction -1 = %f, want 45", got)
	}
}

func TestServoCalibration_RoundTrip(t *testing.T) {
	cal := ServoCalibration{
		CenterUs:    1500,
		UsPerDegree: 600.0 / 90.0,
		Direction:   1,
		MinUs:       900,
		MaxUs:       2100,
	}

	// One microsecond of pulse is 0.15 degrees at this scale; integer
	// rounding must stay within that.
	tol := 1.0 / cal.UsPerDegree
	for deg := -90.0; deg <= 90.0; deg += 1.7 {
		us := cal.ToMicroseconds(deg)
		back := cal.ToDegrees(us)
		if math.Abs(back-deg) > tol {
			t.Errorf("round trip %f -> %d -> %f exceeds tolerance", deg, us, back)
		}
	}
}

func TestServoCalibration_Clamps(t *testing.T) {
	cal := DefaultCalibration()[kinematics.Base]

	if cal.Clamps(45) {
		t.Error("Clamps(45) = true for an in-range angle")
	}
	if !cal.Clamps(120) {
		t.Error("Clamps(120) = false for an out-of-range angle")
	}
}

func TestCalibration_Validate(t *testing.T) {
	if err := DefaultCalibration().Validate(); err != nil {
		t.Fatalf("default calibration invalid: %v", err)
	}

	bad := DefaultCalibration()
	bad[kinematics.Elbow] = ServoCalibration{
		CenterUs:    1500,
		UsPerDegree: 600.0 / 90.0,
		Direction:   0, // invalid
		MinUs:       2000,
		MaxUs:       1000, // inverted
	}
	if err := bad.Validate(); err == nil {
		t.Fatal("Validate passed for broken calibration")
	}

	missing := DefaultCalibration()
	delete(missing, kinematics.Wrist)
	if err := missing.Validate(); err == nil {
		t.Fatal("Validate passed with a joint missing")
	}
}

func TestCalibration_Command(t *testing.T) {
	cal := DefaultCalibration()
	cmd := cal.Command(kinematics.Angles{
		BaseDeg:     0,
		ShoulderDeg: 45,
		ElbowDeg:    90,
		WristDeg:    -45,
	})

	if cmd.BaseUs != 1500 {
		t.Errorf("BaseUs = %d, want 1500", cmd.BaseUs)
	}
	if cmd.ShoulderUs != 1800 {
		t.Errorf("ShoulderUs = %d, want 1800", cmd.ShoulderUs)
	}
	if cmd.ElbowUs != 2100 {
		t.Errorf("ElbowUs = %d, want 2100", cmd.ElbowUs)
	}
	if cmd.WristUs != 1200 {
		t.Errorf("WristUs = %d, want 1200", cmd.WristUs)
	}
	if cmd.GripUs != 0 {
		t.Errorf("GripUs = %d, want 0 for a gripless build", cmd.GripUs)
	}
}

func TestCommand_InRange(t *testing.T) {
	cal := DefaultCalibration()

	ok := Command{BaseUs: 1500, ShoulderUs: 1300, ElbowUs: 1700, WristUs: 1500}
	if !ok.InRange(cal) {
		t.Error("InRange = false for a frame inside every clamp range")
	}

	low := Command{BaseUs: 800, ShoulderUs: 1500, ElbowUs: 1500, WristUs: 1500}
	if low.InRange(cal) {
		t.Error("InRange = true for a frame below the base clamp")
	}
}

func TestUsToTicks(t *testing.T) {
	tests := []struct {
		us       int
		expected int
	}{
		{500, 0},
		{2500, 4095},
		{1500, 2047},
		{100, 0},    // clamped
		{3000, 4095}, // clamped
	}

	for _, tt := range tests {
		if got := usToTicks(tt.us); got != tt.expected {
			t.Errorf("usToTicks(%d) = %d, want %d", tt.us, got, tt.expected)
		}
	}
}
