// Package store provides file-based persistence for release train
// milestones.
//
// MilestoneFileStore implements domain.MilestoneTracker on top of a JSON
// file, for dry runs and for projects that do not schedule on a hosted
// tracker. Writes go through a temp file and an atomic rename, and all
// methods are concurrency-safe via internal locking.
package store
