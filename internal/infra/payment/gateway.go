package payment

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"parkvue/internal/pkg/clock"
	"parkvue/internal/pkg/config"
	"parkvue/internal/pkg/errs"
	"parkvue/internal/usecase/commands"

	"github.com/google/uuid"
)

var (
	ErrDeclined        = errs.New("payment declined")
	ErrUnknownCharge   = errs.New("unknown charge")
	ErrAlreadyRefunded = errs.New("charge already refunded")
)

// SimulatedGateway stands in for a card processor. It waits for the
// configured delay, approves every well-formed charge and keeps the
// charges in memory so they can be refunded.
type SimulatedGateway struct {
	delay time.Duration
	clock clock.Clock

	mu      sync.Mutex
	charges map[string]*charge
}

type charge struct {
	amount   float64
	refunded bool
}

func NewSimulatedGateway(cfg config.PaymentConfig, clk clock.Clock) *SimulatedGateway {
	return &SimulatedGateway{
		delay:   cfg.Delay,
		clock:   clk,
		charges: make(map[string]*charge),
	}
}

func (g *SimulatedGateway) Charge(ctx context.Context, req commands.ChargeRequest) (*commands.ChargeReceipt, error) {
	if req.Amount < 0 || req.CardDigits == "" {
		return nil, ErrDeclined
	}
	if err := g.wait(ctx); err != nil {
		return nil, err
	}

	id := "ch_" + uuid.NewString()
	g.mu.Lock()
	g.charges[id] = &charge{amount: req.Amount}
	g.mu.Unlock()

	slog.Info("payment charged",
		slog.String("charge_id", id),
		slog.String("reference", req.Reference),
		slog.Float64("amount", req.Amount),
	)
	return &commands.ChargeReceipt{
		ChargeID:  id,
		Amount:    req.Amount,
		ChargedAt: g.clock.Now(),
	}, nil
}

func (g *SimulatedGateway) Refund(ctx context.Context, chargeID string) error {
	if err := g.wait(ctx); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	c, ok := g.charges[chargeID]
	if !ok {
		return errs.Wrapf(ErrUnknownCharge, "charge %s", chargeID)
	}
	if c.refunded {
		return errs.Wrapf(ErrAlreadyRefunded, "charge %s", chargeID)
	}
	c.refunded = true

	slog.Info("payment refunded", slog.String("charge_id", chargeID), slog.Float64("amount", c.amount))
	return nil
}

func (g *SimulatedGateway) wait(ctx context.Context) error {
	if g.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(g.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
