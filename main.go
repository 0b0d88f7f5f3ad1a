package main

import (
	"github.com/chatlog-io/chatlog-backend/apps/admin"
	"github.com/chatlog-io/chatlog-backend/apps/ai"
	"github.com/chatlog-io/chatlog-backend/apps/chats"
	"github.com/chatlog-io/chatlog-backend/apps/events"
	"github.com/chatlog-io/chatlog-backend/apps/models"
	"github.com/chatlog-io/chatlog-backend/apps/system"
	"github.com/chatlog-io/chatlog-backend/apps/users"
	"github.com/getevo/evo/v2"
	"github.com/getevo/evo/v2/lib/application"
)

func main() {
	evo.Setup()

	var apps = application.GetInstance()
	apps.Register(system.App{}, models.App{}, events.App{}, ai.App{}, chats.App{}, users.App{}, admin.App{})

	evo.Run()
}
