// Package redis provides a sliding-window request limiter backed by Redis
// sorted sets. The API uses it to throttle login and registration attempts.
package redis
