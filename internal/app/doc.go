// Package app wires application dependencies for the CLIs.
//
// It loads Config from TOML, then builds the logger, directory client,
// ranging capability and session coordinator, exposing them via the Wire
// struct for commands to use.
package app
