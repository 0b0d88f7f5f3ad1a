package models

import (
	"fmt"

	"github.com/getevo/evo/v2/lib/log"
	"github.com/getevo/evo/v2/lib/settings"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Default is the store the HTTP apps use. It is wired during Register from
// the configured database and replaced with an in-memory store in tests.
var Default *Store

// SetDefault swaps the process-wide store. Intended for wiring and tests.
func SetDefault(store *Store) {
	Default = store
}

type App struct{}

func (a App) Register() error {
	dsn, err := buildDSN()
	if err != nil {
		log.Fatal("Database configuration error: %v", err)
		return err
	}

	conn, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
		return err
	}

	if err := conn.AutoMigrate(&Conversation{}, &Message{}, &Summary{}, &Insight{}); err != nil {
		log.Fatal("Database migration failed: %v", err)
		return err
	}

	SetDefault(NewStore(conn))
	log.Info("Database initialized")
	return nil
}

func (a App) Router() error {
	return nil
}

func (a App) WhenReady() error {
	return nil
}

func (a App) Name() string {
	return "models"
}

// buildDSN assembles the MySQL DSN from settings. User and database name are
// required; absence is a startup-time fatal condition.
func buildDSN() (string, error) {
	user := settings.Get("DATABASE.USER").String()
	name := settings.Get("DATABASE.NAME").String()
	if user == "" || name == "" {
		return "", fmt.Errorf("DATABASE.USER and DATABASE.NAME must be configured")
	}

	password := settings.Get("DATABASE.PASSWORD").String()
	host := settings.Get("DATABASE.HOST", "127.0.0.1").String()
	port := settings.Get("DATABASE.PORT", "3306").String()
	params := settings.Get("DATABASE.PARAMS", "charset=utf8mb4&parseTime=True&loc=UTC").String()

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, password, host, port, name, params), nil
}
