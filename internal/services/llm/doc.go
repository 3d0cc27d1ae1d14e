// Package llm provides an OpenAI-compatible chat client for item classification.
//
// # Requests
//
// Complete sends exactly one chat completion request containing a single user
// message. In image mode the message carries a text part and an image_url part
// with detail "high". JSONMode asks the provider for a JSON object response;
// the reply is still run through ExtractJSONObject because providers do not
// always honour it.
//
// # Errors
//
// Provider failures surface as *APIError with a Kind of rate_limit, auth,
// quota, or generic, derived from the HTTP status and the error code in the
// response body. Replies without a parseable JSON object yield
// ErrMalformedResponse. UserMessage maps either to the text shown to users.
//
// # Retry Behaviour
//
// There is none. A failed request is reported to the caller, who decides
// whether the user should try again.
//
// # Entry Points
//
// NewClient: construct client from Config.
// Client.Complete: send one prompt (optionally with an image URL).
// Client.HealthCheck: verify API key and model availability.
// DecodeLLMJSON / ExtractJSONObject: tolerant JSON extraction.
package llm
