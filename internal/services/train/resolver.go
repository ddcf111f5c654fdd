package train

import (
	"fmt"

	"releasetrain/internal/domain"
	"releasetrain/internal/domain/types"
)

// searchOrder lists the trains checked at each step of a forward search.
var searchOrder = []domain.Train{types.TrainOne, types.TrainTwo}

// Explicit builds a spec from a known train and year.
func (s *Service) Explicit(
	train domain.Train,
	version string,
	week domain.WeekOfMonth,
	day domain.DayOfWeek,
	year int,
) (domain.Spec, error) {
	return types.NewSpec(train, version, week, day, year)
}

// FromSearch builds a spec for the next train starting on or after start.
// A zero start searches from the current month.
func (s *Service) FromSearch(
	version string,
	week domain.WeekOfMonth,
	day domain.DayOfWeek,
	start domain.Date,
) (domain.Spec, error) {
	train, year, err := s.NextTrain(start)
	if err != nil {
		return domain.Spec{}, err
	}
	return types.NewSpec(train, version, week, day, year)
}

// NextTrain walks forward from the first day of start's month until it
// reaches the opening month of a train, and returns that train and year.
// The start month itself is checked before advancing.
func (s *Service) NextTrain(start domain.Date) (domain.Train, int, error) {
	start = s.today(start)
	current := start.FirstOfMonth()
	for i := 0; i < s.limit; i++ {
		for _, train := range searchOrder {
			if current.Month == train.Stops()[0].Month {
				return train, current.Year, nil
			}
		}
		current = current.AddMonths(1)
	}
	return 0, 0, fmt.Errorf("%w: no train starts within %d months of %s",
		ErrSearchExhausted, s.limit, start)
}
