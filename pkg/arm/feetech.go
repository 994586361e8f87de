package arm

import (
	"context"

	"github.com/hipsterbrown/feetech-servo/feetech"
	"github.com/pkg/errors"

	"github.com/Syinaric/A.U.R.A.-Farm/pkg/kinematics"
)

// BusChannel drives a build wired with Feetech STS bus servos instead of
// the ESP32 PWM controller. Pulse widths stay the planning currency; the
// channel maps them onto tick positions at the edge.
type BusChannel struct {
	bus   *feetech.Bus
	group *feetech.ServoGroup
	ids   map[kinematics.JointName]int
}

// Servo IDs on the bus, in ArmJoints order.
var defaultBusIDs = map[kinematics.JointName]int{
	kinematics.Base:     1,
	kinematics.Shoulder: 2,
	kinematics.Elbow:    3,
	kinematics.Wrist:    4,
}

// DialBus opens the servo bus on the given port.
func DialBus(port string) (*BusChannel, error) {
	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:     port,
		BaudRate: 1_000_000,
		Protocol: feetech.ProtocolSTS,
	})
	if err != nil {
		return nil, errors.Wrap(err, "open bus")
	}

	ids := make([]int, 0, len(defaultBusIDs))
	for _, joint := range kinematics.ArmJoints() {
		ids = append(ids, defaultBusIDs[joint])
	}
	group := feetech.NewServoGroupByIDs(bus, ids...)

	return &BusChannel{
		bus:   bus,
		group: group,
		ids:   defaultBusIDs,
	}, nil
}

// Enable enables torque on all servos.
func (c *BusChannel) Enable(ctx context.Context) error {
	return c.group.EnableAll(ctx)
}

// Disable disables torque on all servos.
func (c *BusChannel) Disable(ctx context.Context) error {
	return c.group.DisableAll(ctx)
}

// Send sync-writes one command frame to the bus.
func (c *BusChannel) Send(ctx context.Context, cmd Command) error {
	positions := make(feetech.PositionMap, len(c.ids))
	for joint, id := range c.ids {
		positions[id] = usToTicks(cmd.Us(joint))
	}
	if err := c.group.SetPositions(ctx, positions); err != nil {
		return errors.Wrap(err, "write positions")
	}
	return nil
}

// Close closes the bus connection.
func (c *BusChannel) Close() error {
	return c.bus.Close()
}

// usToTicks maps the hobby-servo pulse range [500, 2500]us linearly onto
// the STS tick range [0, 4095].
func usToTicks(us int) int {
	const (
		usMin, usMax = 500, 2500
		tickMax      = 4095
	)
	if us < usMin {
		us = usMin
	} else if us > usMax {
		us = usMax
	}
	return (us - usMin) * tickMax / (usMax - usMin)
}
