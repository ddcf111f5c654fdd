// Package tracker provides an HTTP implementation of the
// domain.MilestoneTracker interface against the GitHub REST API.
//
// Supported operations:
//   - Listing the open milestones of a repository.
//   - Creating a milestone with a title and due date.
//   - Dispatching a GitHub Actions workflow on a branch.
//
// All requests are JSON over HTTP, carry a bearer token when one is
// configured, and accept a context for cancellation and deadlines. Non-2xx
// statuses are returned as *StatusError with the HTTP method, path and
// status text to aid diagnostics.
package tracker
