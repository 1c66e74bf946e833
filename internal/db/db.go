package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"quizportal-backend/internal/config"
)

var database *gorm.DB

// InitDBFromConfig opens the database described by the loaded configuration.
// DRIVER selects postgres or sqlite; sqlite is meant for local development
// and uses the configured database name as the file path.
func InitDBFromConfig(cfg *config.APIConfig) {
	var (
		conn *gorm.DB
		err  error
	)

	switch cfg.DB.Driver {
	case "sqlite":
		conn, err = gorm.Open(sqlite.Open(cfg.DB.Names.QuizPortal+".db"), &gorm.Config{})
	case "postgres", "":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
			cfg.DB.Host, cfg.DB.Username, cfg.DB.Password.Resolve(),
			cfg.DB.Names.QuizPortal, cfg.DB.Port, cfg.DB.SSLMode, cfg.Context.TimeZone)
		conn, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		log.Fatalf("unsupported database driver: %s", cfg.DB.Driver)
	}
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		log.Fatalf("failed to access underlying sql.DB: %v", err)
	}
	if cfg.DB.Pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DB.Pool.MaxOpenConns)
	}
	if cfg.DB.Pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DB.Pool.MaxIdleConns)
	}
	if cfg.DB.Pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.DB.Pool.ConnMaxLifetime) * time.Second)
	}

	database = conn
}

// GetDB returns the shared database handle.
func GetDB() *gorm.DB {
	return database
}
