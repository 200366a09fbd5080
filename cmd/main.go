package main

import (
	"fxconvert/internal/app"
	"os"

	"github.com/sirupsen/logrus"
)

// @title           FX Convert API
// @version         1.0
// @description     Exchange rates with memory and storage caching, conversions, history and favorites.
// @BasePath        /api/v1
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Error("application stopped")
		os.Exit(1)
	}
}
