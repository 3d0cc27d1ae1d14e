// Package notifications pushes billboard activity to ntfy.
//
// NewService returns a no-op implementation when no topic is configured, so
// callers publish unconditionally. Per-event toggles in config.toml decide
// which events reach the topic.
package notifications
