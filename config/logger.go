package config

import (
	"os"

	"go.uber.org/zap"
)

var Log *zap.Logger

// InitLogger builds the process-wide logger. Production encoding unless
// APP_ENV says otherwise.
func InitLogger() {
	var err error
	if os.Getenv("APP_ENV") == "development" {
		Log, err = zap.NewDevelopment()
	} else {
		Log, err = zap.NewProduction()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
}
