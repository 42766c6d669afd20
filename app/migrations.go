package app

import (
	"github.com/go-scaffold/go-scaffold/internal/db/gateway"
)

// Migrations is the ordered schema history of the application database.
// The gateway applies each entry exactly once; appending a new version
// here is all a schema change needs.
func Migrations() []gateway.Definition {
	return []gateway.Definition{
		{
			Version: 1,
			Name:    "create users table",
			SQL: `CREATE TABLE users (
	id BIGSERIAL PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL,
	active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		},
		{
			Version: 2,
			Name:    "unique index on users email",
			SQL:     `CREATE UNIQUE INDEX idx_users_email ON users (email)`,
		},
	}
}
