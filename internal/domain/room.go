package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type RoomType string

const (
	RoomTypeStandard  RoomType = "STANDARD"
	RoomTypeDeluxe    RoomType = "DELUXE"
	RoomTypeSuite     RoomType = "SUITE"
	RoomTypeExecutive RoomType = "EXECUTIVE"
	RoomTypeFamily    RoomType = "FAMILY"
	RoomTypePremium   RoomType = "PREMIUM"
)

var roomTypes = map[RoomType]struct{}{
	RoomTypeStandard:  {},
	RoomTypeDeluxe:    {},
	RoomTypeSuite:     {},
	RoomTypeExecutive: {},
	RoomTypeFamily:    {},
	RoomTypePremium:   {},
}

func ParseRoomType(s string) (RoomType, bool) {
	t := RoomType(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := roomTypes[t]
	return t, ok
}

type Room struct {
	ID          int64
	HotelID     int64
	RoomNumber  string
	Type        RoomType
	Price       decimal.Decimal
	Capacity    int
	Description string
	Amenities   string
	ImageURL    string
	// Available is a listing hint only. Date overlap decides bookability.
	Available bool
}

func (r *Room) Validate() error {
	if r.Price.IsNegative() {
		return ValidationError("room price must not be negative")
	}
	if r.Capacity < 1 {
		return ValidationError("room capacity must be at least 1")
	}
	if _, ok := roomTypes[r.Type]; !ok {
		return ValidationError("unknown room type")
	}
	return nil
}
