// Package train resolves release train specs and computes their milestone
// dates.
//
// # Resolution
//
// A spec is either given explicitly (train number and year) or found by
// searching forward month by month from a start date until January (train
// one) or July (train two) is reached. A start date already in January or
// July resolves to that same month.
//
// # Dates
//
// Each milestone lands on the nth weekday of its month: the first occurrence
// of the spec's weekday, plus 0, 7, 14 or 21 days for the 1st to 4th week.
//
// Everything here is pure date arithmetic. The only state is the clock used
// when no start date is given.
package train
