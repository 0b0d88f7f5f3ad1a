package system

import (
	"strings"
	"time"

	"github.com/getevo/evo/v2"
	"github.com/getevo/evo/v2/lib/log"
	"github.com/getevo/evo/v2/lib/settings"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

var StartupTime = time.Now()

type App struct {
}

func (a App) Register() error {
	var logLevel = settings.Get("APP.LOG_LEVEL", "info").String()
	switch strings.ToLower(logLevel) {
	case "debug", "dev", "development":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn", "warning":
		log.SetLevel(log.WarningLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	case "critical", "crit":
		log.SetLevel(log.CriticalLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}

	// Enable request logging if configured
	if settings.Get("APP.LOG_REQUESTS").Bool() {
		evo.GetFiber().Use(logger.New())
	}

	return nil
}

func (a App) Router() error {
	var controller Controller
	evo.Get("/healthcheck", controller.HealthHandler)
	evo.Get("/uptime", controller.UptimeHandler)

	return nil
}

func (a App) WhenReady() error {
	return nil
}

func (a App) Name() string {
	return "system"
}
