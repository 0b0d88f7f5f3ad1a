package admin

import (
	"github.com/getevo/evo/v2"
)

type App struct{}

func (a App) Register() error {
	return nil
}

func (a App) Router() error {
	var controller = Controller{}

	evo.Get("/api/admin/conversations", controller.ListConversations)

	return nil
}

func (a App) WhenReady() error {
	return nil
}

func (a App) Name() string {
	return "admin"
}
