// Package domain defines core data models and interfaces shared across the app.
// It re-exports the types and interfaces subpackages so callers need a single
// import.
package domain
