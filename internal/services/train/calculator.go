package train

import (
	"fmt"
	"time"

	"releasetrain/internal/domain"
	"releasetrain/internal/domain/types"
)

// TrainDates returns the five milestone dates of spec in train order.
// A zero spec yields nil.
func (s *Service) TrainDates(spec domain.Spec) domain.TrainDates {
	if !spec.Train().Valid() {
		return nil
	}
	stops := spec.Train().Stops()
	dates := make(domain.TrainDates, 0, len(stops))
	for _, stop := range stops {
		dates = append(dates, domain.TrainDate{
			Label: types.Label(spec.Version(), stop.Code),
			Date:  trainDate(spec.Year(), stop.Month, spec.DayOfWeek(), spec.WeekOfMonth()),
		})
	}
	return dates
}

// IsTrainDate reports whether candidate is the computed date for label.
// Unknown labels never match.
func (s *Service) IsTrainDate(spec domain.Spec, label string, candidate domain.Date) bool {
	date, ok := s.TrainDates(spec).Get(label)
	return ok && date == candidate
}

// NextReleaseDate returns the first date strictly after start that falls on
// spec's week and weekday in an even-numbered month. Patch releases ship on
// this cadence between trains. A zero start means today.
func (s *Service) NextReleaseDate(spec domain.Spec, start domain.Date) (domain.Date, error) {
	start = s.today(start)
	current := start.FirstOfMonth()
	for i := 0; i < s.limit; i++ {
		if current.Month%2 == 0 {
			date := trainDate(current.Year, current.Month, spec.DayOfWeek(), spec.WeekOfMonth())
			if date.After(start) {
				return date, nil
			}
		}
		current = current.AddMonths(1)
	}
	return domain.Date{}, fmt.Errorf("%w: no release date within %d months of %s",
		ErrSearchExhausted, s.limit, start)
}

// trainDate returns the week-th occurrence of day in the given month.
func trainDate(year int, month time.Month, day domain.DayOfWeek, week domain.WeekOfMonth) domain.Date {
	first := domain.Date{Year: year, Month: month, Day: 1}
	offset := int(day.Weekday()) - int(first.Weekday())
	if offset < 0 {
		offset += 7
	}
	return first.AddDays(offset + week.DayOffset())
}
