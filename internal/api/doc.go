// Package api defines wire-format types and JSON helpers shared by the HTTP
// handlers.
//
// Every error body has the shape {"error": "<message>"} so browser clients can
// surface the message directly. Payload DTOs use snake_case JSON tags to match
// the classification schema and the billboard REST API.
package api
