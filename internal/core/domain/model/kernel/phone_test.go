package kernel_test

import (
	"testing"

	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPhone(t *testing.T) {
	t.Run("normalizes to digits", func(t *testing.T) {
		phone, err := kernel.NewPhone("(11) 99999-8888")

		require.NoError(t, err)
		assert.Equal(t, "11999998888", phone.String())
	})

	t.Run("too short", func(t *testing.T) {
		_, err := kernel.NewPhone("9999")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestPhone_WhatsAppNumber(t *testing.T) {
	t.Run("prefixes country code", func(t *testing.T) {
		phone, err := kernel.NewPhone("11999998888")

		require.NoError(t, err)
		assert.Equal(t, "5511999998888", phone.WhatsAppNumber())
	})

	t.Run("keeps existing country code", func(t *testing.T) {
		phone, err := kernel.NewPhone("5511999998888")

		require.NoError(t, err)
		assert.Equal(t, "5511999998888", phone.WhatsAppNumber())
	})
}

func TestPhone_Validate(t *testing.T) {
	var zero kernel.Phone

	require.ErrorIs(t, zero.Validate(), kernel.ErrPhoneIsNotConstructed)
}
