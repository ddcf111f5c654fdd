// Package schedule publishes release trains as milestones on a tracker.
//
// It resolves the next train with the train service, turns each milestone
// date into a tracker milestone due at noon UTC, and answers the questions a
// release pipeline asks before shipping: which milestone is next, is it due,
// and does it still have open issues.
package schedule
