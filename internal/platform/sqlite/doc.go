// Package sqlite provides gorm-backed implementations of the store
// interfaces on an embedded SQLite database. It is meant for local
// development and single-node deployments; the schema is created with
// gorm's AutoMigrate instead of the goose migrations used for PostgreSQL.
package sqlite
