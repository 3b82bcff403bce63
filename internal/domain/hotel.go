package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Hotel struct {
	ID            int64
	Name          string
	Location      string
	Rating        float64
	Description   string
	ImageURL      string
	Amenities     string
	StartingPrice decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
