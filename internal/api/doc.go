// Package api exposes the task board over HTTP. Handlers decode and validate
// JSON requests, take the caller's identity from the request context, call
// the services and translate their errors into status codes and JSON error
// bodies.
package api
