package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetStatusInfo(t *testing.T) {
	t.Run("Known statuses have labels and colors", func(t *testing.T) {
		info := GetStatusInfo(StatusAtThaiBranch)
		assert.Equal(t, "At Thai Branch", info.Label)
		assert.Equal(t, "blue", info.Color)

		info = GetStatusInfo(StatusCompleted)
		assert.Equal(t, "Completed", info.Label)
		assert.Equal(t, "green", info.Color)
	})

	t.Run("Unknown status falls back to raw code", func(t *testing.T) {
		info := GetStatusInfo("LOST_IN_RIVER")
		assert.Equal(t, "LOST_IN_RIVER", info.Label)
		assert.Equal(t, "default", info.Color)
	})
}

func TestIsValidStatus(t *testing.T) {
	for _, code := range ValidStatuses() {
		assert.True(t, IsValidStatus(code), code)
	}
	assert.False(t, IsValidStatus(""))
	assert.False(t, IsValidStatus("at_thai_branch"))
	assert.False(t, IsValidStatus("PENDING"))
}

func TestIsValidCurrency(t *testing.T) {
	assert.True(t, IsValidCurrency(CurrencyLAK))
	assert.True(t, IsValidCurrency(CurrencyTHB))
	assert.False(t, IsValidCurrency("USD"))
	assert.False(t, IsValidCurrency(""))
}
