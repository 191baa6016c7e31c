// Package payment simulates the gateway side of the checkout. Every
// confirmation succeeds after a fixed delay; a real integration would
// replace Simulator behind the same domain.PaymentSimulator interface.
package payment

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"vungtau_stay/internal/domain"
)

type Simulator struct {
	delay time.Duration
	now   func() time.Time
}

func NewSimulator(delay time.Duration) *Simulator {
	return &Simulator{delay: delay, now: time.Now}
}

// Confirm waits the configured delay and reports success. There is no
// failure branch: no card is charged and no transfer is checked. The only
// early exit is context cancellation.
func (s *Simulator) Confirm(ctx context.Context, req domain.PaymentRequest) (domain.PaymentReceipt, error) {
	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return domain.PaymentReceipt{}, ctx.Err()
		case <-t.C:
		}
	}
	log.Info().
		Str("method", string(req.Method)).
		Int64("amount", req.Amount).
		Str("reference", req.Reference).
		Msg("simulated payment confirmed")
	return domain.PaymentReceipt{
		Method:    req.Method,
		Reference: req.Reference,
		PaidAt:    s.now(),
	}, nil
}
