package main

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"ProjectPortal/internal/bootstrap"
	"ProjectPortal/pkg/routes"
)

func main() {
	bootstrap.Loadenv()

	app := fx.New(
		routes.PortalModules,
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
	)

	app.Run()
}
