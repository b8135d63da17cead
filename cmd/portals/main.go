package main

import (
	"portalview/internal/graphics"
	"portalview/internal/logger"
)

func main() {
	log := logger.New()
	app := NewApp(log)
	graphics.Run(app.Update, app.Draw)
	app.Shutdown()
}
