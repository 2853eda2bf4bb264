// Package postgres provides PostgreSQL implementations of the store
// interfaces, the embedded goose migrations that create their schema, and
// helpers for opening a connection pool through the pgx driver.
//
// Task queries are built with squirrel; database errors are translated into
// the sentinel errors of the store package by MapError.
package postgres
