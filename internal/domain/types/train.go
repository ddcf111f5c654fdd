package types

import (
	"fmt"
	"time"
)

// Train selects which half of the year a release train runs in.
type Train int

const (
	// TrainOne runs January through May.
	TrainOne Train = iota + 1
	// TrainTwo runs July through November.
	TrainTwo
)

// MilestoneCode names a stage of a release train. The GA stage has an empty
// code so its label is the bare version.
type MilestoneCode string

// Milestone codes in train order.
const (
	M1  MilestoneCode = "M1"
	M2  MilestoneCode = "M2"
	M3  MilestoneCode = "M3"
	RC1 MilestoneCode = "RC1"
	GA  MilestoneCode = ""
)

// String returns the string form of the milestone code.
func (c MilestoneCode) String() string { return string(c) }

// Stop pins a milestone code to the month it ships in.
type Stop struct {
	Code  MilestoneCode
	Month time.Month
}

var trainStops = map[Train][5]Stop{
	TrainOne: {
		{M1, time.January},
		{M2, time.February},
		{M3, time.March},
		{RC1, time.April},
		{GA, time.May},
	},
	TrainTwo: {
		{M1, time.July},
		{M2, time.August},
		{M3, time.September},
		{RC1, time.October},
		{GA, time.November},
	},
}

// ParseTrain converts a train number (1 or 2) to a Train.
func ParseTrain(n int) (Train, error) {
	t := Train(n)
	if !t.Valid() {
		return 0, invalidField("train", fmt.Sprintf("want 1 or 2, got %d", n))
	}
	return t, nil
}

// Valid reports whether t is one of the defined trains.
func (t Train) Valid() bool {
	_, ok := trainStops[t]
	return ok
}

// Stops returns the ordered milestone/month pairs of the train.
func (t Train) Stops() [5]Stop { return trainStops[t] }

// String returns "ONE" or "TWO".
func (t Train) String() string {
	switch t {
	case TrainOne:
		return "ONE"
	case TrainTwo:
		return "TWO"
	}
	return fmt.Sprintf("Train(%d)", int(t))
}

// WeekOfMonth selects which occurrence of a weekday within a month is used.
type WeekOfMonth int

const (
	FirstWeek WeekOfMonth = iota + 1
	SecondWeek
	ThirdWeek
	FourthWeek
)

var weekDayOffsets = map[WeekOfMonth]int{
	FirstWeek:  0,
	SecondWeek: 7,
	ThirdWeek:  14,
	FourthWeek: 21,
}

// ParseWeekOfMonth converts 1..4 to a WeekOfMonth.
func ParseWeekOfMonth(n int) (WeekOfMonth, error) {
	w := WeekOfMonth(n)
	if !w.Valid() {
		return 0, invalidField("weekOfMonth", fmt.Sprintf("want 1-4, got %d", n))
	}
	return w, nil
}

// Valid reports whether w is one of the four supported weeks.
func (w WeekOfMonth) Valid() bool {
	_, ok := weekDayOffsets[w]
	return ok
}

// DayOffset is the number of days added to the first occurrence of the
// target weekday in a month.
func (w WeekOfMonth) DayOffset() int { return weekDayOffsets[w] }

// String returns "1st" to "4th".
func (w WeekOfMonth) String() string {
	switch w {
	case FirstWeek:
		return "1st"
	case SecondWeek:
		return "2nd"
	case ThirdWeek:
		return "3rd"
	case FourthWeek:
		return "4th"
	}
	return fmt.Sprintf("WeekOfMonth(%d)", int(w))
}

// DayOfWeek is a release weekday. Releases never ship on a weekend, so only
// Monday through Friday exist. Values line up with time.Weekday.
type DayOfWeek int

const (
	Monday DayOfWeek = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
)

// ParseDayOfWeek converts 1 (Monday) .. 5 (Friday) to a DayOfWeek.
func ParseDayOfWeek(n int) (DayOfWeek, error) {
	d := DayOfWeek(n)
	if !d.Valid() {
		return 0, invalidField("dayOfWeek", fmt.Sprintf("want 1-5 (Monday-Friday), got %d", n))
	}
	return d, nil
}

// Valid reports whether d is a weekday.
func (d DayOfWeek) Valid() bool { return d >= Monday && d <= Friday }

// Weekday returns the matching time.Weekday.
func (d DayOfWeek) Weekday() time.Weekday { return time.Weekday(d) }

// String returns the English weekday name.
func (d DayOfWeek) String() string {
	if !d.Valid() {
		return fmt.Sprintf("DayOfWeek(%d)", int(d))
	}
	return d.Weekday().String()
}
