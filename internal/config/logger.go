package config

import (
	"os"

	"go.uber.org/zap"
)

// NewLogger builds the application logger. APP_ENV=production switches to
// the JSON production encoder; anything else gets the development console
// encoder.
func NewLogger() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
