package train

import (
	"errors"
	"time"

	"releasetrain/internal/domain"
	"releasetrain/internal/domain/types"
)

// ErrSearchExhausted means a forward month search ran past its cap. January
// and July recur every six months, so this signals a logic error rather than
// bad input.
var ErrSearchExhausted = errors.New("release train search exhausted")

// maxSearchMonths bounds every forward month search.
const maxSearchMonths = 24

// Service implements domain.TrainService.
type Service struct {
	now   func() time.Time
	// limit caps forward month searches.
	limit int
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used when a search has no start date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func New(opts ...Option) *Service {
	s := &Service{now: time.Now, limit: maxSearchMonths}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// today returns start, or the current date when start is zero.
func (s *Service) today(start domain.Date) domain.Date {
	if start.IsZero() {
		return types.DateOf(s.now())
	}
	return start
}

var _ domain.TrainService = (*Service)(nil)
