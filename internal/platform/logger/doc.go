// Package logger provides structured logging for the application using the
// standard library's log/slog package.
//
// Setup installs a JSON logger as the slog default. Request-scoped loggers
// (for example one carrying the request's trace ID) travel through the
// context with WithLogger and are recovered with FromContext or
// FromContextOrDefault, so lower layers log with the same attributes as the
// request that called them.
package logger
