package bootstrap

import (
	"parkvue/internal/infra/payment"
	"parkvue/internal/pkg/clock"
	"parkvue/internal/pkg/config"
	"parkvue/internal/usecase/commands"

	"go.uber.org/fx"
)

var PaymentModule = fx.Module("payment",
	fx.Provide(
		fx.Annotate(
			func(cfg config.Config, clk clock.Clock) *payment.SimulatedGateway {
				return payment.NewSimulatedGateway(cfg.Payment, clk)
			},
			fx.As(new(commands.PaymentGateway)),
		),
	),
)
