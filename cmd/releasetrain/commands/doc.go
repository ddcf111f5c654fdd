// Package commands defines the releasetrain CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - dates              Print the five milestone dates of a release train
//   - next-train         Print which train and year come next
//   - is-train-date      Check a date against a milestone label
//   - next-release-date  Print the next patch release date
//   - schedule-train     Create the train's milestones on the tracker
//   - schedule-next      Schedule whatever release follows the current version
//   - next-milestone     Print the next milestone to release
//   - due-today          Check whether a milestone is due
//   - no-open-issues     Check whether a milestone has no open issues
//   - watch              Run schedule-next on a cron schedule
//   - trigger-release    Dispatch the release workflow on a branch
//   - next-snapshot-version  Print the version that follows a release
//
// # Implementation
//
// The root command loads releasetrain.toml (or defaults), applies flag
// overrides and builds the dependency graph (tracker, services, logger)
// before any subcommand runs. Results go to stdout as text, JSON or YAML;
// logs go to stderr.
package commands
