package chats

import (
	"github.com/getevo/evo/v2"
)

type App struct{}

func (a App) Register() error {
	return nil
}

func (a App) Router() error {
	var controller = Controller{}

	evo.Put("/api/chats/conversations", controller.CreateConversation)
	evo.Post("/api/chats", controller.AddChat)
	evo.Post("/api/chats/summarize", controller.SummarizeChat)
	evo.Get("/api/chats/:conversation_id", controller.GetConversation)
	evo.Delete("/api/chats/:conversation_id", controller.DeleteConversation)
	evo.Post("/api/chats/:conversation_id/insights", controller.GenerateInsights)

	return nil
}

func (a App) WhenReady() error {
	return nil
}

func (a App) Name() string {
	return "chats"
}
