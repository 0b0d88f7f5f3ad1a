package events

import (
	"fmt"
	"sync"
	"time"

	"github.com/getevo/evo/v2/lib/log"
	"github.com/nats-io/nats.go"
)

// Config holds the NATS connection parameters
type Config struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	PingInterval   time.Duration
	MaxPingsOut    int
	AllowReconnect bool
	DrainTimeout   time.Duration
}

var (
	nc *nats.Conn
	mu sync.RWMutex
)

// Connect establishes the NATS connection used for broadcasting
// conversation lifecycle events.
func Connect(config Config) error {
	opts := []nats.Option{
		nats.Name("chatlog-backend"),
		nats.MaxReconnects(config.MaxReconnects),
		nats.ReconnectWait(config.ReconnectWait),
		nats.PingInterval(config.PingInterval),
		nats.MaxPingsOutstanding(config.MaxPingsOut),
		nats.DrainTimeout(config.DrainTimeout),
		nats.DisconnectErrHandler(func(conn *nats.Conn, err error) {
			if err != nil {
				log.Warning("NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(conn *nats.Conn) {
			log.Info("NATS reconnected to %s", conn.ConnectedUrl())
		}),
		nats.ErrorHandler(func(conn *nats.Conn, sub *nats.Subscription, err error) {
			if sub != nil {
				log.Error("NATS error on subscription %s: %v", sub.Subject, err)
			} else {
				log.Error("NATS async error: %v", err)
			}
		}),
	}

	if !config.AllowReconnect {
		opts = append(opts, nats.NoReconnect())
	}

	conn, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS at %s: %w", config.URL, err)
	}

	mu.Lock()
	nc = conn
	mu.Unlock()

	log.Info("Connected to NATS at %s", conn.ConnectedUrl())
	return nil
}

// GetConnection returns the NATS connection
func GetConnection() *nats.Conn {
	mu.RLock()
	defer mu.RUnlock()
	return nc
}

// IsConnected checks if NATS is connected
func IsConnected() bool {
	mu.RLock()
	defer mu.RUnlock()
	return nc != nil && nc.IsConnected()
}

// Publish publishes a message to a subject
func Publish(subject string, data []byte) error {
	conn := GetConnection()
	if conn == nil || !conn.IsConnected() {
		return fmt.Errorf("NATS not connected")
	}

	return conn.Publish(subject, data)
}

// Subscribe creates a subscription to a subject
func Subscribe(subject string, handler nats.MsgHandler) (*nats.Subscription, error) {
	conn := GetConnection()
	if conn == nil || !conn.IsConnected() {
		return nil, fmt.Errorf("NATS not connected")
	}

	return conn.Subscribe(subject, handler)
}

// Close gracefully closes the NATS connection with drain
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if nc == nil {
		return nil
	}

	if err := nc.Drain(); err != nil {
		log.Warning("Error draining NATS connection: %v", err)
		nc.Close()
		return err
	}

	log.Info("NATS connection closed gracefully")
	return nil
}
