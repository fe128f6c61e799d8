package commands

import (
	"context"
	"time"
)

// ChargeRequest carries what the gateway needs to take a payment. Only the
// card's digits and holder name leave the service.
type ChargeRequest struct {
	Amount     float64
	CardName   string
	CardDigits string
	Reference  string
}

type ChargeReceipt struct {
	ChargeID  string
	Amount    float64
	ChargedAt time.Time
}

type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeReceipt, error)
	Refund(ctx context.Context, chargeID string) error
}
