// Package main hosts the EcoGenius CLI entrypoint and command graph.
//
// The Cobra command tree serves the HTTP API and exposes the same features
// from a terminal: classify a photo, search the recycling guide, find a
// council, browse or post to the community billboard and print waste
// analytics. Configuration loading, logger setup and service wiring live in
// the command context so subcommands only deal with presentation.
package main
