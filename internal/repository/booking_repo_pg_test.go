package repository

import (
	"errors"
	"testing"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewBookingRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewBookingRepository(pool)
	assert.NotNil(t, repo)
}

func TestMapWriteError(t *testing.T) {
	err := mapWriteError(&pgconn.PgError{Code: "23P01", ConstraintName: "bookings_no_overlap"}, "create booking")
	assert.ErrorIs(t, err, domain.ErrRoomUnavailable)
	assert.Equal(t, domain.KindUnavailable, domain.KindOf(err))

	other := &pgconn.PgError{Code: "23503"}
	err = mapWriteError(other, "create booking")
	assert.True(t, errors.Is(err, other))
	assert.Contains(t, err.Error(), "create booking")
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
}
