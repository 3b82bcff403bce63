package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/repository"
	"github.com/Domenick1991/hotelbooking/internal/service/catalog"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type HotelHandler struct {
	service catalog.CatalogUseCase
}

type hotelResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Location      string  `json:"location"`
	Rating        float64 `json:"rating"`
	Description   string  `json:"description"`
	ImageURL      string  `json:"image_url"`
	Amenities     string  `json:"amenities"`
	StartingPrice string  `json:"starting_price"`
}

type roomResponse struct {
	ID          int64  `json:"id"`
	HotelID     int64  `json:"hotel_id"`
	RoomNumber  string `json:"room_number"`
	Type        string `json:"type"`
	Price       string `json:"price"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description"`
	Amenities   string `json:"amenities"`
	ImageURL    string `json:"image_url"`
	Available   bool   `json:"available"`
}

func NewHotelHandler(service catalog.CatalogUseCase) *HotelHandler {
	return &HotelHandler{service: service}
}

func (h *HotelHandler) Register(hotels, rooms *gin.RouterGroup) {
	hotels.GET("", h.list)
	hotels.GET("/top", h.topRated)
	hotels.GET("/:id", h.get)
	hotels.GET("/:id/rooms", h.listRooms)
	rooms.GET("/:id", h.getRoom)
}

func (h *HotelHandler) list(c *gin.Context) {
	filter := repository.HotelFilter{
		Query:    c.Query("q"),
		Location: c.Query("location"),
	}
	if raw := c.Query("min_rating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			badRequest(c, "invalid min_rating")
			return
		}
		filter.MinRating = &rating
	}

	hotels, err := h.service.ListHotels(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHotelResponses(hotels))
}

func (h *HotelHandler) topRated(c *gin.Context) {
	hotels, err := h.service.TopRatedHotels(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHotelResponses(hotels))
}

func (h *HotelHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	hotel, err := h.service.GetHotel(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHotelResponse(hotel))
}

func (h *HotelHandler) listRooms(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	filter := repository.RoomFilter{Type: domain.RoomType(c.Query("type"))}
	if filter.CheckIn, ok = queryDate(c, "check_in"); !ok {
		return
	}
	if filter.CheckOut, ok = queryDate(c, "check_out"); !ok {
		return
	}
	if raw := c.Query("max_price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			badRequest(c, "invalid max_price")
			return
		}
		filter.MaxPrice = &price
	}

	rooms, err := h.service.ListRooms(c.Request.Context(), id, filter)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]roomResponse, 0, len(rooms))
	for i := range rooms {
		resp = append(resp, toRoomResponse(&rooms[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HotelHandler) getRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	room, err := h.service.GetRoom(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRoomResponse(room))
}

func queryDate(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	date, err := domain.ParseDate(raw)
	if err != nil {
		badRequest(c, "invalid "+name+", expected YYYY-MM-DD")
		return nil, false
	}
	return &date, true
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}

func toHotelResponses(hotels []domain.Hotel) []hotelResponse {
	resp := make([]hotelResponse, 0, len(hotels))
	for i := range hotels {
		resp = append(resp, toHotelResponse(&hotels[i]))
	}
	return resp
}

func toHotelResponse(h *domain.Hotel) hotelResponse {
	return hotelResponse{
		ID:            h.ID,
		Name:          h.Name,
		Location:      h.Location,
		Rating:        h.Rating,
		Description:   h.Description,
		ImageURL:      h.ImageURL,
		Amenities:     h.Amenities,
		StartingPrice: h.StartingPrice.StringFixed(2),
	}
}

func toRoomResponse(r *domain.Room) roomResponse {
	return roomResponse{
		ID:          r.ID,
		HotelID:     r.HotelID,
		RoomNumber:  r.RoomNumber,
		Type:        string(r.Type),
		Price:       r.Price.StringFixed(2),
		Capacity:    r.Capacity,
		Description: r.Description,
		Amenities:   r.Amenities,
		ImageURL:    r.ImageURL,
		Available:   r.Available,
	}
}
