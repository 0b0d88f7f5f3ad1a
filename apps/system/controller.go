package system

import (
	"time"

	"github.com/chatlog-io/chatlog-backend/apps/models"
	"github.com/chatlog-io/chatlog-backend/lib/response"
	"github.com/getevo/evo/v2"
)

type Controller struct {
}

// HealthHandler reports service health. The body contract is fixed:
// {"status":"ok"} on success, {"status":"error","detail":...} with a 500
// when the database is unreachable.
func (c Controller) HealthHandler(request *evo.Request) any {
	if models.Default == nil {
		return response.Raw(500, map[string]any{
			"status": "error",
			"detail": "database is not initialized",
		})
	}
	if err := models.Default.Ping(); err != nil {
		return response.Raw(500, map[string]any{
			"status": "error",
			"detail": err.Error(),
		})
	}
	return response.Raw(200, map[string]any{"status": "ok"})
}

func (c Controller) UptimeHandler(request *evo.Request) any {
	uptimeData := map[string]any{
		"uptime": int64(time.Since(StartupTime).Seconds()),
	}
	return response.OK(uptimeData)
}
