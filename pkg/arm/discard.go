package arm

import "context"

// DiscardChannel swallows commands. Simulation and tests run schedules
// against it.
type DiscardChannel struct{}

func (DiscardChannel) Send(ctx context.Context, cmd Command) error { return ctx.Err() }

func (DiscardChannel) Close() error { return nil }
