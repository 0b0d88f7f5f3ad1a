package ai

import (
	"github.com/getevo/evo/v2/lib/log"
)

type App struct{}

func (a App) Register() error {
	if err := InitClient(); err != nil {
		// AI features degrade to 500s on the endpoints that need them;
		// the rest of the service stays up.
		log.Warning("AI features disabled: %v", err)
	}
	return nil
}

func (a App) Router() error {
	return nil
}

func (a App) WhenReady() error {
	return nil
}

func (a App) Name() string {
	return "ai"
}
