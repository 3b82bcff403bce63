package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookingEvent(t *testing.T) {
	b := &domain.Booking{
		ID:         12,
		Reference:  "0b9d6a2e-8d5f-4a59-9d59-5c1e1f0a3c11",
		UserID:     3,
		RoomID:     9,
		CheckIn:    time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC),
		Guests:     2,
		TotalPrice: decimal.RequireFromString("450"),
		Status:     domain.BookingStatusConfirmed,
	}
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))

	event := NewBookingEvent("booking_created", b, at)

	assert.Equal(t, "booking_created", event.Type)
	assert.Equal(t, "2024-07-01", event.CheckIn)
	assert.Equal(t, "2024-07-04", event.CheckOut)
	assert.Equal(t, "450.00", event.TotalPrice)
	assert.Equal(t, "CONFIRMED", event.Status)
	assert.Equal(t, time.UTC, event.OccurredAt.Location())

	data, err := json.Marshal(event)
	require.NoError(t, err)
	decoded, err := DecodeBookingEvent(data)
	require.NoError(t, err)
	assert.Equal(t, event.Reference, decoded.Reference)
	assert.True(t, event.OccurredAt.Equal(decoded.OccurredAt))
}

func TestDecodeBookingEvent_Invalid(t *testing.T) {
	_, err := DecodeBookingEvent([]byte("not json"))
	assert.Error(t, err)

	_, err = DecodeBookingEvent([]byte(`{"booking_id": 1}`))
	assert.EqualError(t, err, "event type is missing")
}
