// Package main runs milestoned, an in-memory stand-in for the GitHub
// milestones API used by releasetrain during development and tests.
//
// HTTP API
//
//	GET /repos/{owner}/{repo}/milestones?state=open|closed|all&per_page=N&page=P
//	    List milestones ordered by number. state defaults to open.
//
//	POST /repos/{owner}/{repo}/milestones
//	    Create a milestone from {"title", "state", "due_on"}. A duplicate
//	    title is rejected with 422.
//
//	PATCH /repos/{owner}/{repo}/milestones/{number}
//	    Update title, state, due_on or open_issues. open_issues is not
//	    writable on GitHub; it is accepted here so tests can simulate work.
//	    Renaming onto a title already in use is rejected with 422.
//
//	POST /repos/{owner}/{repo}/actions/workflows/{workflow}/dispatches
//	    Record a workflow_dispatch run for {"ref"}. Answers 204.
//
//	GET /repos/{owner}/{repo}/actions/runs
//	    List recorded runs as {"total_count", "workflow_runs"}.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - Responses are JSON. Errors carry {"message": "..."}. Undated
//     milestones have "due_on": null.
//   - An access log records method, path, status and duration per request.
//   - The default listen address is :8080.
//
// Point releasetrain at it with:
//
//	[tracker]
//	kind = "github"
//	url = "http://localhost:8080"
package main
