package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// CANCELLED and COMPLETED are terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s != BookingStatusConfirmed {
		return false
	}
	return next == BookingStatusCancelled || next == BookingStatusCompleted
}

func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusCompleted
}

type Booking struct {
	ID             int64
	Reference      string
	UserID         int64
	RoomID         int64
	CheckIn        time.Time
	CheckOut       time.Time
	Guests         int
	TotalPrice     decimal.Decimal
	SpecialRequest string
	Status         BookingStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (b *Booking) Nights() int {
	return Nights(b.CheckIn, b.CheckOut)
}

// Overlaps reports whether b occupies any night of [checkIn, checkOut).
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return RangesOverlap(b.CheckIn, b.CheckOut, checkIn, checkOut)
}

// IsActive is true for a confirmed stay that has not checked out yet.
func (b *Booking) IsActive(today time.Time) bool {
	return b.Status == BookingStatusConfirmed && DateOf(b.CheckOut).After(DateOf(today))
}

// UserRef identifies the acting user. Authentication happens upstream.
type UserRef struct {
	ID   int64
	Name string
}
