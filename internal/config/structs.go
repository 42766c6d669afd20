package config

import (
	"github.com/go-scaffold/go-scaffold/internal/logger"
)

// Settings is the fully resolved configuration. It is built once by
// Resolve at startup and passed read-only to every component that
// needs it; there is no ambient global.
type Settings struct {
	// AppName identifies the process in logs and metrics.
	AppName string `mapstructure:"app_name" toml:"appName" validate:"required"`

	Database Database   `mapstructure:"database" toml:"database"`
	Log      logger.Log `mapstructure:"log" toml:"log"`
}

// Database holds the database settings handed to the gateway.
type Database struct {
	Host     string `mapstructure:"host" toml:"host" validate:"required"`
	Port     int    `mapstructure:"port" toml:"port" validate:"min=1,max=65535"`
	Name     string `mapstructure:"name" toml:"name" validate:"required"`
	Username string `mapstructure:"username" toml:"username" validate:"required"`
	// Password may be empty for trust or peer authenticated setups.
	Password string `mapstructure:"password" toml:"password"`
	// MaxConnections bounds the connection pool.
	MaxConnections int `mapstructure:"max_connections" toml:"maxConnections" validate:"min=1"`
}
