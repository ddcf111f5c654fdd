// Package app wires application dependencies for the CLI.
//
// It loads the TOML configuration, builds the logger, the milestone tracker
// (GitHub or file-backed) and the train and schedule services, exposing them
// via the Wire struct for commands to use.
package app
