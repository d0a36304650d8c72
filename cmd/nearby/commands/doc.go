// Package commands defines the nearby CLI and wires dependencies for subcommands.
//
// Commands
//
//   - token    Print a fresh local discovery token and its fingerprint
//   - publish  Publish a local token to the directory and print its id
//   - fetch    Fetch the token published under an id
//   - range    Publish, resolve a peer id, then print distances until stopped
//
// # Implementation
//
// The root command loads the TOML config, applies flag overrides and builds
// the dependency graph (logger, directory client, capability, coordinator)
// before any subcommand runs. Logs go to stderr; results go to stdout.
package commands
