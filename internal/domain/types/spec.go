package types

import (
	"fmt"
	"strings"
)

// Spec is the validated, read-only description of one release train.
// Build it with NewSpec; the zero value is not usable.
type Spec struct {
	train       Train
	version     string
	weekOfMonth WeekOfMonth
	dayOfWeek   DayOfWeek
	year        int
}

// NewSpec validates its arguments and returns an immutable Spec.
// Zero values and an empty version count as missing. The returned error is a
// *ValidationError wrapping ErrMissingField or ErrInvalidField.
func NewSpec(train Train, version string, week WeekOfMonth, day DayOfWeek, year int) (Spec, error) {
	switch {
	case train == 0:
		return Spec{}, missingField("train")
	case !train.Valid():
		return Spec{}, invalidField("train", fmt.Sprintf("want 1 or 2, got %d", int(train)))
	}
	if strings.TrimSpace(version) == "" {
		return Spec{}, missingField("version")
	}
	switch {
	case week == 0:
		return Spec{}, missingField("weekOfMonth")
	case !week.Valid():
		return Spec{}, invalidField("weekOfMonth", fmt.Sprintf("want 1-4, got %d", int(week)))
	}
	switch {
	case day == 0:
		return Spec{}, missingField("dayOfWeek")
	case !day.Valid():
		return Spec{}, invalidField("dayOfWeek", fmt.Sprintf("want 1-5 (Monday-Friday), got %d", int(day)))
	}
	switch {
	case year == 0:
		return Spec{}, missingField("year")
	case year < 1000 || year > 9999:
		return Spec{}, invalidField("year", fmt.Sprintf("want a 4-digit year, got %d", year))
	}

	return Spec{
		train:       train,
		version:     version,
		weekOfMonth: week,
		dayOfWeek:   day,
		year:        year,
	}, nil
}

// Train returns the train the spec runs in.
func (s Spec) Train() Train { return s.train }

// Version returns the version the milestone labels are built from.
func (s Spec) Version() string { return s.version }

// WeekOfMonth returns which occurrence of the weekday is used.
func (s Spec) WeekOfMonth() WeekOfMonth { return s.weekOfMonth }

// DayOfWeek returns the release weekday.
func (s Spec) DayOfWeek() DayOfWeek { return s.dayOfWeek }

// Year returns the calendar year of the train.
func (s Spec) Year() int { return s.year }

// String describes the spec, e.g. "train ONE 2022: 1.0.0, 3rd Monday of the month".
func (s Spec) String() string {
	return fmt.Sprintf("train %s %d: %s, %s %s of the month",
		s.train, s.year, s.version, s.weekOfMonth, s.dayOfWeek)
}

// Label returns the milestone title for version at code: "1.0.0-M1" for
// milestones and the bare version for GA.
func Label(version string, code MilestoneCode) string {
	if code == GA {
		return version
	}
	return version + "-" + code.String()
}

// TrainDate is one labelled milestone date.
type TrainDate struct {
	Label string `json:"label" yaml:"label"`
	Date  Date   `json:"date" yaml:"date"`
}

// TrainDates holds the dates of a train in milestone order
// (M1, M2, M3, RC1, GA).
type TrainDates []TrainDate

// Get returns the date stored under label.
func (td TrainDates) Get(label string) (Date, bool) {
	for _, d := range td {
		if d.Label == label {
			return d.Date, true
		}
	}
	return Date{}, false
}

// Labels returns the labels in order.
func (td TrainDates) Labels() []string {
	out := make([]string, 0, len(td))
	for _, d := range td {
		out = append(out, d.Label)
	}
	return out
}
