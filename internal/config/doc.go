// Package config loads, normalizes, and validates EcoGenius configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// OPENAI_API_KEY and the CLOUDINARY_* credentials. The Config type centralizes
// every knob the server and CLI need, so the relay, classifier, billboard, and
// analytics components are wired from one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
