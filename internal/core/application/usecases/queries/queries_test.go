package queries_test

import (
	"testing"
	"time"

	"rotafila/internal/core/application/usecases/queries"
	"rotafila/internal/core/domain/model/courier"
	"rotafila/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueries_ZeroValueIsNotConstructed(t *testing.T) {
	require.Error(t, (queries.GetUnitQueueQuery{}).Validate())
	require.Error(t, (queries.GetMyPlaceQuery{}).Validate())
	require.Error(t, (queries.GetShiftReportQuery{}).Validate())
}

func TestNewGetUnitQueueQuery(t *testing.T) {
	t.Run("valid unit", func(t *testing.T) {
		q, err := queries.NewGetUnitQueueQuery(kernel.UnitItaqua)

		require.NoError(t, err)
		assert.Equal(t, kernel.UnitItaqua, q.Unit())
	})

	t.Run("invalid unit", func(t *testing.T) {
		_, err := queries.NewGetUnitQueueQuery(kernel.Unit("OSASCO"))

		require.Error(t, err)
	})
}

func TestNewGetMyPlaceQuery(t *testing.T) {
	phone, err := kernel.NewPhone("11999990000")
	require.NoError(t, err)

	q, err := queries.NewGetMyPlaceQuery(phone)
	require.NoError(t, err)
	assert.Equal(t, phone, q.Phone())

	_, err = queries.NewGetMyPlaceQuery(kernel.Phone{})
	require.Error(t, err)
}

func TestNewGetShiftReportQuery_Period(t *testing.T) {
	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	t.Run("overnight shift spans into the next day", func(t *testing.T) {
		window, err := courier.ParseShiftWindow("16:00-02:00")
		require.NoError(t, err)

		q, err := queries.NewGetShiftReportQuery(kernel.UnitItaqua, day, window)
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, time.March, 10, 16, 0, 0, 0, time.UTC), q.From())
		assert.Equal(t, time.Date(2026, time.March, 11, 2, 0, 0, 0, time.UTC), q.To())
	})

	t.Run("day shift stays on the same day", func(t *testing.T) {
		window, err := courier.ParseShiftWindow("09:00-18:00")
		require.NoError(t, err)

		q, err := queries.NewGetShiftReportQuery(kernel.UnitPoa, day, window)
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC), q.From())
		assert.Equal(t, time.Date(2026, time.March, 10, 18, 0, 0, 0, time.UTC), q.To())
	})
}
