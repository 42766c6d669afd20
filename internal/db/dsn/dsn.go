// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"

	"github.com/go-scaffold/go-scaffold/internal/config"
)

// Create builds a PostgreSQL URL from the database settings. The
// password segment is omitted entirely when no password is set.
func Create(dbCfg *config.Database) string {
	auth := dbCfg.Username
	if dbCfg.Password != "" {
		auth = fmt.Sprintf("%s:%s", dbCfg.Username, dbCfg.Password)
	}

	out := fmt.Sprintf("postgres://%s@%s:%d/%s",
		auth,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.Name,
	)

	return out
}
