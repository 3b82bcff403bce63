package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	RoomID         int64  `json:"room_id" binding:"required"`
	CheckIn        string `json:"check_in"`
	CheckOut       string `json:"check_out"`
	Guests         int    `json:"guests"`
	SpecialRequest string `json:"special_request"`
}

type bookingResponse struct {
	ID             int64  `json:"id"`
	Reference      string `json:"reference"`
	UserID         int64  `json:"user_id"`
	RoomID         int64  `json:"room_id"`
	CheckIn        string `json:"check_in"`
	CheckOut       string `json:"check_out"`
	Nights         int    `json:"nights"`
	Guests         int    `json:"guests"`
	TotalPrice     string `json:"total_price"`
	SpecialRequest string `json:"special_request,omitempty"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

// Register expects a group already guarded by RequireAuth.
func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.DELETE("/:id", h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	checkIn, ok := bodyDate(c, "check_in", req.CheckIn)
	if !ok {
		return
	}
	checkOut, ok := bodyDate(c, "check_out", req.CheckOut)
	if !ok {
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		User:           user,
		RoomID:         req.RoomID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Guests:         req.Guests,
		SpecialRequest: req.SpecialRequest,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(b))
}

func (h *BookingHandler) list(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	bookings, err := h.service.ListUserBookings(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		resp = append(resp, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) get(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	b, err := h.service.GetUserBooking(c.Request.Context(), id, user.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	b, err := h.service.CancelBooking(c.Request.Context(), id, user.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func requireUser(c *gin.Context) (domain.UserRef, bool) {
	user, ok := currentUser(c)
	if !ok {
		writeError(c, domain.NewError(domain.KindUnauthenticated, "authentication required"))
		return domain.UserRef{}, false
	}
	return user, true
}

// bodyDate leaves a missing date as the zero time so the booking engine
// reports it as "dates required".
func bodyDate(c *gin.Context, name, raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	date, err := domain.ParseDate(raw)
	if err != nil {
		badRequest(c, "invalid "+name+", expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:             b.ID,
		Reference:      b.Reference,
		UserID:         b.UserID,
		RoomID:         b.RoomID,
		CheckIn:        b.CheckIn.Format(domain.DateLayout),
		CheckOut:       b.CheckOut.Format(domain.DateLayout),
		Nights:         b.Nights(),
		Guests:         b.Guests,
		TotalPrice:     b.TotalPrice.StringFixed(2),
		SpecialRequest: b.SpecialRequest,
		Status:         string(b.Status),
		CreatedAt:      b.CreatedAt.UTC().Format(time.RFC3339),
	}
}
