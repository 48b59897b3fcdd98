// Package commands defines the bikerent CLI and wires dependencies for subcommands.
//
// Commands
//
//   - login <token>     Store a token and load its profile
//   - logout            Forget the session and the stored token
//   - whoami            Print the profile of the stored session
//   - start <bike>      Rent a bike
//   - finish <rent-id>  Return a rented bike
//   - rentals           List your rentals
//
// # Implementation
//
// The root command loads configuration (defaults, ~/.bikerent/config.toml,
// BIKERENT_* env, flags) and builds the dependency graph before any
// subcommand runs. Subcommands annotated as protected pass the navigation
// guard first, which restores the stored session or points at login.
package commands
