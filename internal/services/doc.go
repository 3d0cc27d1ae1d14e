// Package services defines shared utilities consumed by the API handlers and
// external integrations.
//
// It provides context helpers that stamp request and operation identifiers for
// logging, plus structured error markers and the Wrap helper whose markers the
// HTTP layer translates into status codes.
package services
