package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tair/realestate-favorites/pkg/logger"
)

// Config holds database configuration
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN renders the key=value connection string understood by lib/pq
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// NewPostgresConnection creates a new PostgreSQL connection pool
func NewPostgresConnection(cfg Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(orDefault(cfg.MaxOpenConns, 25))
	db.SetMaxIdleConns(orDefault(cfg.MaxIdleConns, 5))
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	} else {
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Logger.Info().
		Str("host", cfg.Host).
		Str("database", cfg.DBName).
		Msg("Successfully connected to PostgreSQL database")
	return db, nil
}

// NewGormConnection opens a GORM handle on top of the lib/pq pool
func NewGormConnection(cfg Config) (*gorm.DB, error) {
	sqlDB, err := NewPostgresConnection(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         NewGormLogger(200 * time.Millisecond),
	})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	return db, nil
}

// NewGormLogger routes GORM's warnings and slow queries to zerolog
func NewGormLogger(slowThreshold time.Duration) gormlogger.Interface {
	return gormlogger.New(gormWriter{}, gormlogger.Config{
		SlowThreshold:             slowThreshold,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

type gormWriter struct{}

func (gormWriter) Printf(format string, args ...interface{}) {
	logger.Logger.Warn().Str("component", "gorm").Msgf(format, args...)
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
