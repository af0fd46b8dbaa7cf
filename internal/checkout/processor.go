package checkout

import (
	"context"
	"time"
)

// PaymentProcessor settles an order before it is recorded.
type PaymentProcessor interface {
	Process(ctx context.Context, o Order) error
}

// SimulatedProcessor approves every payment after a fixed delay.
type SimulatedProcessor struct{ Delay time.Duration }

func (p SimulatedProcessor) Process(ctx context.Context, _ Order) error {
	t := time.NewTimer(p.Delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
