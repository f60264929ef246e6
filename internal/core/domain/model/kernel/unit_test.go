package kernel_test

import (
	"testing"

	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitFromString(t *testing.T) {
	t.Run("known units", func(t *testing.T) {
		for _, name := range []string{"ITAQUA", "POA", "SUZANO"} {
			unit, err := kernel.UnitFromString(name)

			require.NoError(t, err)
			assert.Equal(t, name, unit.String())
		}
	})

	t.Run("unknown unit", func(t *testing.T) {
		_, err := kernel.UnitFromString("OSASCO")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := kernel.UnitFromString("")

		require.Error(t, err)
	})
}

func TestAllUnits(t *testing.T) {
	units := kernel.AllUnits()

	assert.Len(t, units, 3)
	for _, u := range units {
		require.NoError(t, u.Validate())
	}
}
