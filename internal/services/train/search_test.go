package train

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"releasetrain/internal/domain/types"
)

func TestSearchLimit(t *testing.T) {
	s := New()
	s.limit = 3

	// February to April never reaches January or July.
	_, _, err := s.NextTrain(types.NewDate(2022, time.February, 10))
	require.ErrorIs(t, err, ErrSearchExhausted)
	assert.Contains(t, err.Error(), "3 months")

	train, year, err := s.NextTrain(types.NewDate(2022, time.May, 10))
	require.NoError(t, err)
	assert.Equal(t, types.TrainTwo, train)
	assert.Equal(t, 2022, year)

	spec, err := types.NewSpec(types.TrainOne, "1.0.0", types.FirstWeek, types.Monday, 2022)
	require.NoError(t, err)
	s.limit = 1
	// 2022-03 is odd; the search stops before April.
	_, err = s.NextReleaseDate(spec, types.NewDate(2022, time.March, 1))
	require.ErrorIs(t, err, ErrSearchExhausted)
}

func TestDefaultSearchLimit(t *testing.T) {
	assert.Equal(t, maxSearchMonths, New().limit)
}
