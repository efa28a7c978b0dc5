package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudEvent_Envelope(t *testing.T) {
	ce, err := NewCloudEvent("service-rooms", "booking.approved", map[string]string{"booking_id": "b1"})
	require.NoError(t, err)

	assert.Equal(t, "1.0", ce.SpecVersion)
	assert.NotEmpty(t, ce.ID)
	assert.Equal(t, "application/json", ce.DataContentType)
	assert.False(t, ce.Time.IsZero())

	raw, err := json.Marshal(ce)
	require.NoError(t, err)

	parsed, err := ParseCloudEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, ce.ID, parsed.ID)
	assert.Equal(t, "booking.approved", parsed.Type)

	var data map[string]string
	require.NoError(t, parsed.ParseData(&data))
	assert.Equal(t, "b1", data["booking_id"])
}

func TestParseCloudEvent_Invalid(t *testing.T) {
	_, err := ParseCloudEvent([]byte("{"))
	assert.Error(t, err)

	_, err = ParseCloudEvent([]byte(`{"specversion":"1.0","id":"x"}`))
	assert.Error(t, err)
}
