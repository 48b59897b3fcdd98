// Package app wires application dependencies for the CLI.
//
// LoadConfig merges defaults, an optional TOML file, BIKERENT_* environment
// variables and command-line flags into a Config. NewWire builds the state
// container, token store, client factory, location provider and the
// session, rental and guard services from it.
package app
