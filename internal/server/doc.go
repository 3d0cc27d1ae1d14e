// Package server hosts the EcoGenius HTTP API: the upload relay,
// classification, the recycling search guide, council lookups, the community
// billboard and waste analytics.
//
// Routes are registered on a standard ServeMux and wrapped with request id,
// access logging, CORS and optional bearer token middleware. Run holds a
// lock file so only one server per data directory binds at a time.
package server
