package bootstrap

import (
	"parkvue/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	components.PersistenceModule,
	components.UseCaseModule,
	PaymentModule,
	BrokerModule,
	components.HandlerModule,
)
