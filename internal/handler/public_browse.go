package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Quandz11/hotel-booking-sub001/internal/repository"
	"github.com/Quandz11/hotel-booking-sub001/internal/service"
)

// PublicHandler serves the unauthenticated browse endpoints.  These
// sit behind the response-cache middleware, so they must stay
// read-only.
type PublicHandler struct {
	Hotels  *repository.HotelRepo
	Rooms   *repository.RoomTypeRepo
	Reviews *repository.ReviewRepo
	Checker *service.AvailabilityChecker
}

func NewPublicHandler(h *repository.HotelRepo, rt *repository.RoomTypeRepo, rev *repository.ReviewRepo, b *repository.BookingRepo) *PublicHandler {
	return &PublicHandler{
		Hotels:  h,
		Rooms:   rt,
		Reviews: rev,
		Checker: &service.AvailabilityChecker{Bookings: b},
	}
}

// ListHotels returns active hotels, optionally filtered by ?city=.
func (h *PublicHandler) ListHotels(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hotels, err := h.Hotels.ListActive(ctx, strings.TrimSpace(c.QueryParam("city")))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list hotels failed"})
	}
	views := make([]hotelView, 0, len(hotels))
	for _, hotel := range hotels {
		views = append(views, toHotelView(hotel))
	}
	return c.JSON(http.StatusOK, echo.Map{"hotels": views})
}

// GetHotel returns one active hotel with its sellable room types.
func (h *PublicHandler) GetHotel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hotel, err := h.Hotels.GetActiveByID(ctx, id)
	if err != nil {
		if err == repository.ErrHotelNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load hotel failed"})
	}
	rooms, err := h.Rooms.ListByHotel(ctx, id, true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list room types failed"})
	}
	roomViews := make([]roomTypeView, 0, len(rooms))
	for _, rt := range rooms {
		roomViews = append(roomViews, toRoomTypeView(rt))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"hotel":      toHotelView(hotel),
		"room_types": roomViews,
	})
}

// ListHotelReviews returns the reviews of an active hotel.
func (h *PublicHandler) ListHotelReviews(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Hotels.GetActiveByID(ctx, id); err != nil {
		if err == repository.ErrHotelNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load hotel failed"})
	}
	reviews, err := h.Reviews.ListByHotel(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reviews failed"})
	}
	out := make([]echo.Map, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, echo.Map{
			"id":         r.ID,
			"rating":     r.Rating,
			"comment":    r.Comment,
			"created_at": r.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"reviews": out})
}

// CheckAvailability reports whether a room type can be booked for a
// date range and how many units remain.  The answer is advisory: the
// same check runs again, unlocked, at booking creation.
func (h *PublicHandler) CheckAvailability(c echo.Context) error {
	roomID, err := pathID(c, "roomTypeId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room type id"})
	}
	now := time.Now().UTC()
	checkIn, checkOut, err := parseStayDates(c.QueryParam("check_in"), c.QueryParam("check_out"), now)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	guests := 1
	if g := c.QueryParam("guests"); g != "" {
		guests, err = strconv.Atoi(g)
		if err != nil || guests < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "guests must be a positive integer"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	room, err := h.Rooms.GetActiveByID(ctx, roomID)
	if err != nil {
		if err == repository.ErrRoomTypeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room type failed"})
	}

	avail, err := h.Checker.Check(ctx, &room, checkIn, checkOut, guests, now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "availability check failed"})
	}
	quote, err := service.QuoteBooking(&room, checkIn, checkOut, 0)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"availability": avail,
		"quote":        quote,
	})
}
