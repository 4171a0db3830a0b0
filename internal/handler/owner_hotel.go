package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Quandz11/hotel-booking-sub001/internal/model"
	"github.com/Quandz11/hotel-booking-sub001/internal/queue"
	"github.com/Quandz11/hotel-booking-sub001/internal/repository"
)

// OwnerHandler serves the hotel-owner endpoints: hotel and room-type
// management plus operational booking handling for the owner's hotels.
type OwnerHandler struct {
	Hotels   *repository.HotelRepo
	Rooms    *repository.RoomTypeRepo
	Bookings *repository.BookingRepo
}

func NewOwnerHandler(h *repository.HotelRepo, rt *repository.RoomTypeRepo, b *repository.BookingRepo) *OwnerHandler {
	return &OwnerHandler{Hotels: h, Rooms: rt, Bookings: b}
}

type hotelReq struct {
	Name               string `json:"name"`
	Address            string `json:"address"`
	City               string `json:"city"`
	CancellationPolicy string `json:"cancellation_policy"`
	IsActive           *bool  `json:"is_active"`
}

type hotelView struct {
	ID                 uint64  `json:"id"`
	Name               string  `json:"name"`
	Address            string  `json:"address"`
	City               string  `json:"city"`
	CancellationPolicy string  `json:"cancellation_policy"`
	Rating             float64 `json:"rating"`
	ReviewCount        uint32  `json:"review_count"`
	IsActive           bool    `json:"is_active"`
}

func toHotelView(h model.Hotel) hotelView {
	return hotelView{
		ID:                 h.ID,
		Name:               h.Name,
		Address:            h.Address,
		City:               h.City,
		CancellationPolicy: h.CancellationPolicy,
		Rating:             h.Rating,
		ReviewCount:        h.ReviewCount,
		IsActive:           h.IsActive,
	}
}

// CreateHotel registers a new hotel under the caller.
func (h *OwnerHandler) CreateHotel(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req hotelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	policy := strings.ToUpper(strings.TrimSpace(req.CancellationPolicy))
	if !model.ValidPolicy(policy) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cancellation_policy must be FLEXIBLE, MODERATE or STRICT"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hotel := model.Hotel{
		OwnerID:            ownerID,
		Name:               req.Name,
		Address:            strings.TrimSpace(req.Address),
		City:               strings.TrimSpace(req.City),
		CancellationPolicy: policy,
		IsActive:           true,
	}
	if err := h.Hotels.Create(ctx, &hotel); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create hotel failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"hotel": toHotelView(hotel)})
}

// ListMyHotels returns all hotels the caller owns, active or not.
func (h *OwnerHandler) ListMyHotels(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hotels, err := h.Hotels.ListByOwner(ctx, ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list hotels failed"})
	}
	views := make([]hotelView, 0, len(hotels))
	for _, hotel := range hotels {
		views = append(views, toHotelView(hotel))
	}
	return c.JSON(http.StatusOK, echo.Map{"hotels": views})
}

// UpdateHotel edits an owned hotel.  Only provided fields change; the
// policy on existing bookings is unaffected because it was snapshotted
// at creation.
func (h *OwnerHandler) UpdateHotel(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hotelID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	var req hotelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hotel, err := h.Hotels.GetByID(ctx, hotelID)
	if err != nil {
		if err == repository.ErrHotelNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load hotel failed"})
	}
	if hotel.OwnerID != ownerID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your hotel"})
	}

	if v := strings.TrimSpace(req.Name); v != "" {
		hotel.Name = v
	}
	if v := strings.TrimSpace(req.Address); v != "" {
		hotel.Address = v
	}
	if v := strings.TrimSpace(req.City); v != "" {
		hotel.City = v
	}
	if v := strings.ToUpper(strings.TrimSpace(req.CancellationPolicy)); v != "" {
		if !model.ValidPolicy(v) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "cancellation_policy must be FLEXIBLE, MODERATE or STRICT"})
		}
		hotel.CancellationPolicy = v
	}
	if req.IsActive != nil {
		hotel.IsActive = *req.IsActive
	}

	if err := h.Hotels.Update(ctx, &hotel); err != nil {
		if err == repository.ErrForbidden {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your hotel"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update hotel failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"hotel": toHotelView(hotel)})
}

// ownedHotel loads a hotel and checks the caller owns it.
func (h *OwnerHandler) ownedHotel(ctx context.Context, hotelID, ownerID uint64) (model.Hotel, int, string) {
	hotel, err := h.Hotels.GetByID(ctx, hotelID)
	if err != nil {
		if err == repository.ErrHotelNotFound {
			return model.Hotel{}, http.StatusNotFound, "hotel not found"
		}
		return model.Hotel{}, http.StatusInternalServerError, "load hotel failed"
	}
	if hotel.OwnerID != ownerID {
		return model.Hotel{}, http.StatusForbidden, "not your hotel"
	}
	return hotel, 0, ""
}

// publishCancelled emits the cancellation event for owner-driven
// cancellations, best effort.
func publishCancelled(ctx context.Context, b model.Booking, reason string) {
	evt := queue.BookingCancelledEvent{
		BookingID:     b.ID,
		BookingNumber: b.BookingNumber,
		GuestName:     b.GuestName,
		GuestEmail:    b.GuestEmail,
		Reason:        reason,
		RefundAmount:  b.RefundAmount,
		Currency:      b.Currency,
		CancelledAt:   time.Now().UTC().Format(time.RFC3339),
	}
	_ = queue.PublishBookingCancelled(ctx, evt)
}
