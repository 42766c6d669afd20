// Package main provides the entry point for the go-scaffold template
// application. It resolves settings from defaults, an optional config
// file, a .env override and APP__ prefixed environment variables, then
// serves database maintenance and user management commands over a
// pooled, migration-aware PostgreSQL access layer.
package main
