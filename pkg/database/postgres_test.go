package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDSN(t *testing.T) {
	cfg := Config{
		Host:     "db",
		Port:     "5433",
		User:     "app",
		Password: "secret",
		DBName:   "favoritesdb",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=db port=5433 user=app password=secret dbname=favoritesdb sslmode=disable",
		cfg.DSN(),
	)
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, 25, orDefault(0, 25))
	assert.Equal(t, 25, orDefault(-3, 25))
	assert.Equal(t, 7, orDefault(7, 25))
}
