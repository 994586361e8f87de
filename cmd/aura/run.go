package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/edaniels/golog"

	"github.com/Syinaric/A.U.R.A.-Farm/pkg/arm"
	"github.com/Syinaric/A.U.R.A.-Farm/pkg/motion"
)

type RunCommand struct {
	scheduleFlags
	Port string `long:"port" description:"Serial port (autodetect when empty)"`
	Bus  string `long:"bus" default:"esp32" choice:"esp32" choice:"feetech" description:"Actuator backend"`
}

func (c *RunCommand) Execute(args []string) error {
	logger := golog.NewDevelopmentLogger("aura")

	_, schedule, err := c.buildSchedule()
	if err != nil {
		return err
	}
	logger.Infow("schedule planned", "waypoints", len(schedule), "duration", schedule.Duration())

	// Ctrl+C stops cooperatively: the current waypoint finishes, the
	// rest of the schedule does not run.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	channel, cleanup, err := c.openChannel(ctx, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	executor := motion.NewExecutor(channel, logger)
	if err := executor.Start(ctx, schedule); err != nil {
		return err
	}
	executor.Wait()
	return nil
}

func (c *RunCommand) openChannel(ctx context.Context, logger golog.Logger) (motion.Channel, func(), error) {
	switch c.Bus {
	case "feetech":
		port := c.Port
		if port == "" {
			found, err := arm.FindPort()
			if err != nil {
				return nil, nil, err
			}
			port = found
		}
		bus, err := arm.DialBus(port)
		if err != nil {
			return nil, nil, err
		}
		if err := bus.Enable(ctx); err != nil {
			bus.Close()
			return nil, nil, err
		}
		logger.Infow("bus servos enabled", "port", port)
		cleanup := func() {
			if err := bus.Disable(context.Background()); err != nil {
				logger.Warnw("failed to disable torque", "error", err)
			}
			bus.Close()
		}
		return bus, cleanup, nil
	default:
		ch, err := arm.DialSerial(c.Port)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("controller connected")
		return ch, func() { ch.Close() }, nil
	}
}
