// Package types holds the plain value types of release train scheduling:
// the Train, WeekOfMonth and DayOfWeek enums, the validated Spec, civil
// Dates and tracker milestones.
package types
