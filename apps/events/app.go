package events

import (
	"github.com/getevo/evo/v2/lib/log"
	"github.com/getevo/evo/v2/lib/settings"
)

// App wires the optional NATS event broadcasting module. When NATS.URL is
// not configured the module stays dormant and model hooks become no-ops.
type App struct{}

func (App) Register() error {
	return nil
}

func (App) Router() error {
	return nil
}

// WhenReady connects to NATS after the application is fully initialized
func (App) WhenReady() error {
	url := settings.Get("NATS.URL").String()
	if url == "" {
		log.Info("NATS.URL not configured - event broadcasting disabled")
		return nil
	}

	reconnectWait, _ := settings.Get("NATS.RECONNECT_WAIT", "2s").Duration()
	pingInterval, _ := settings.Get("NATS.PING_INTERVAL", "20s").Duration()
	drainTimeout, _ := settings.Get("NATS.DRAIN_TIMEOUT", "30s").Duration()

	config := Config{
		URL:            url,
		MaxReconnects:  int(settings.Get("NATS.MAX_RECONNECTS", 60).Int64()),
		ReconnectWait:  reconnectWait,
		PingInterval:   pingInterval,
		MaxPingsOut:    int(settings.Get("NATS.MAX_PINGS_OUT", 2).Int64()),
		AllowReconnect: settings.Get("NATS.ALLOW_RECONNECT", true).Bool(),
		DrainTimeout:   drainTimeout,
	}

	if err := Connect(config); err != nil {
		// Event broadcasting is best-effort; the API keeps serving without it.
		log.Error("Failed to connect to NATS: %v", err)
		return nil
	}

	return nil
}

func (App) Name() string {
	return "events"
}

// Shutdown gracefully closes the NATS connection
func (App) Shutdown() error {
	return Close()
}
