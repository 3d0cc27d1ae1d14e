// Package billboard implements the community board where residents post
// reusable kerbside items and reply to each other.
//
// Service is the storage contract. Store keeps posts in SQLite so the API
// server can host the board itself; RemoteClient talks to an external board
// API with the same REST shape. Board sits in front of either one and adds
// validation, the per-submitter cooldown and new-post notifications.
//
// The SQLite database is local state for a single server. Schema changes bump
// schemaVersion in schema.go; users delete billboard.db to adopt them.
package billboard
