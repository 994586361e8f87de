package kinematics

import "math"

// TableCalibration maps camera pixels onto table coordinates for a
// bird's eye (top-down) setup. The motion kernel never consumes pixels
// itself; this is the surface the perception side converts through.
type TableCalibration struct {
	OriginPxX float64 `json:"origin_px_x"`
	OriginPxY float64 `json:"origin_px_y"`
	ScaleX    float64 `json:"scale_x"` // meters per pixel
	ScaleY    float64 `json:"scale_y"`
	FlipX     bool    `json:"flip_x"`
	FlipY     bool    `json:"flip_y"` // camera Y is usually inverted
}

// PixelToTable converts a detection centroid to table meters.
func (c TableCalibration) PixelToTable(cx, cy int) (x, y float64) {
	x = (float64(cx) - c.OriginPxX) * c.ScaleX
	y = (float64(cy) - c.OriginPxY) * c.ScaleY
	if c.FlipX {
		x = -x
	}
	if c.FlipY {
		y = -y
	}
	return x, y
}

// TableToPixel is the inverse of PixelToTable, for overlay drawing.
func (c TableCalibration) TableToPixel(x, y float64) (cx, cy int) {
	if c.FlipX {
		x = -x
	}
	if c.FlipY {
		y = -y
	}
	return int(math.Round(c.OriginPxX + x/c.ScaleX)), int(math.Round(c.OriginPxY + y/c.ScaleY))
}

// DefaultTableCalibration matches a 640x480 camera centered on the table.
func DefaultTableCalibration() TableCalibration {
	return TableCalibration{
		OriginPxX: 320,
		OriginPxY: 240,
		ScaleX:    0.0015,
		ScaleY:    0.0015,
		FlipY:     true,
	}
}
