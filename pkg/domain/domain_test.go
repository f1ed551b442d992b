package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "accessexplorer/pkg/domain-errors"
)

func TestParseAddress(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseAddress("  ")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("rejects short hex", func(t *testing.T) {
		_, err := ParseAddress("0x1234")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("lower-cases checksummed input", func(t *testing.T) {
		a, err := ParseAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
		require.NoError(t, err)
		assert.Equal(t, Address("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"), a)
	})

	t.Run("accepts missing prefix", func(t *testing.T) {
		a, err := ParseAddress("5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
		require.NoError(t, err)
		assert.Equal(t, "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", a.String())
	})
}

func TestParseEntityType(t *testing.T) {
	for _, raw := range []string{"access-manager", "access-managed", "target", "role-member", "timelock-controller"} {
		et, err := ParseEntityType(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, et.String())
		assert.NotEmpty(t, et.Label())
	}

	_, err := ParseEntityType("")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	_, err = ParseEntityType("governor")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}
