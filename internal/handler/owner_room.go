package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Quandz11/hotel-booking-sub001/internal/model"
	"github.com/Quandz11/hotel-booking-sub001/internal/repository"
)

type roomTypeReq struct {
	Name            string   `json:"name"`
	BasePrice       *int64   `json:"base_price"`
	WeekendPrice    *int64   `json:"weekend_price"`
	Currency        string   `json:"currency"`
	MaxGuests       *int     `json:"max_guests"`
	TotalRooms      *int     `json:"total_rooms"`
	DiscountPercent *float64 `json:"discount_percent"`
	IsActive        *bool    `json:"is_active"`
}

type roomTypeView struct {
	ID              uint64  `json:"id"`
	HotelID         uint64  `json:"hotel_id"`
	Name            string  `json:"name"`
	BasePrice       int64   `json:"base_price"`
	WeekendPrice    int64   `json:"weekend_price"`
	Currency        string  `json:"currency"`
	MaxGuests       int     `json:"max_guests"`
	TotalRooms      int     `json:"total_rooms"`
	DiscountPercent float64 `json:"discount_percent"`
	IsActive        bool    `json:"is_active"`
}

func toRoomTypeView(rt model.RoomType) roomTypeView {
	return roomTypeView{
		ID:              rt.ID,
		HotelID:         rt.HotelID,
		Name:            rt.Name,
		BasePrice:       rt.BasePrice,
		WeekendPrice:    rt.WeekendPrice,
		Currency:        rt.Currency,
		MaxGuests:       rt.MaxGuests,
		TotalRooms:      rt.TotalRooms,
		DiscountPercent: rt.DiscountPercent,
		IsActive:        rt.IsActive,
	}
}

func validRoomPrices(base, weekend int64, maxGuests, totalRooms int, discount float64) string {
	switch {
	case base <= 0:
		return "base_price must be positive"
	case weekend <= 0:
		return "weekend_price must be positive"
	case maxGuests < 1:
		return "max_guests must be at least 1"
	case totalRooms < 1:
		return "total_rooms must be at least 1"
	case discount < 0 || discount >= 100:
		return "discount_percent must be in [0, 100)"
	}
	return ""
}

// CreateRoomType adds a room category to an owned hotel.
func (h *OwnerHandler) CreateRoomType(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hotelID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	var req roomTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.BasePrice == nil || req.WeekendPrice == nil || req.MaxGuests == nil || req.TotalRooms == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, base_price, weekend_price, max_guests and total_rooms required"})
	}
	discount := 0.0
	if req.DiscountPercent != nil {
		discount = *req.DiscountPercent
	}
	if msg := validRoomPrices(*req.BasePrice, *req.WeekendPrice, *req.MaxGuests, *req.TotalRooms, discount); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "VND"
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, code, msg := h.ownedHotel(ctx, hotelID, ownerID); code != 0 {
		return c.JSON(code, echo.Map{"error": msg})
	}

	rt := model.RoomType{
		HotelID:         hotelID,
		Name:            req.Name,
		BasePrice:       *req.BasePrice,
		WeekendPrice:    *req.WeekendPrice,
		Currency:        currency,
		MaxGuests:       *req.MaxGuests,
		TotalRooms:      *req.TotalRooms,
		DiscountPercent: discount,
		IsActive:        true,
	}
	if err := h.Rooms.Create(ctx, &rt); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room type failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"room_type": toRoomTypeView(rt)})
}

// ListRoomTypes returns every room category of an owned hotel,
// including deactivated ones.
func (h *OwnerHandler) ListRoomTypes(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hotelID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, code, msg := h.ownedHotel(ctx, hotelID, ownerID); code != 0 {
		return c.JSON(code, echo.Map{"error": msg})
	}
	rooms, err := h.Rooms.ListByHotel(ctx, hotelID, false)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list room types failed"})
	}
	views := make([]roomTypeView, 0, len(rooms))
	for _, rt := range rooms {
		views = append(views, toRoomTypeView(rt))
	}
	return c.JSON(http.StatusOK, echo.Map{"room_types": views})
}

// UpdateRoomType edits a room category.  Price changes never touch
// existing bookings; their snapshot is frozen.
func (h *OwnerHandler) UpdateRoomType(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hotelID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	roomID, err := pathID(c, "roomTypeId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room type id"})
	}
	var req roomTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, code, msg := h.ownedHotel(ctx, hotelID, ownerID); code != 0 {
		return c.JSON(code, echo.Map{"error": msg})
	}
	rt, err := h.Rooms.GetByID(ctx, roomID)
	if err != nil {
		if err == repository.ErrRoomTypeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room type failed"})
	}
	if rt.HotelID != hotelID {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
	}

	if v := strings.TrimSpace(req.Name); v != "" {
		rt.Name = v
	}
	if req.BasePrice != nil {
		rt.BasePrice = *req.BasePrice
	}
	if req.WeekendPrice != nil {
		rt.WeekendPrice = *req.WeekendPrice
	}
	if req.MaxGuests != nil {
		rt.MaxGuests = *req.MaxGuests
	}
	if req.TotalRooms != nil {
		rt.TotalRooms = *req.TotalRooms
	}
	if req.DiscountPercent != nil {
		rt.DiscountPercent = *req.DiscountPercent
	}
	if req.IsActive != nil {
		rt.IsActive = *req.IsActive
	}
	if msg := validRoomPrices(rt.BasePrice, rt.WeekendPrice, rt.MaxGuests, rt.TotalRooms, rt.DiscountPercent); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	if err := h.Rooms.Update(ctx, &rt); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update room type failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"room_type": toRoomTypeView(rt)})
}

// DeactivateRoomType soft-deletes a room category.  Existing bookings
// keep their snapshot and stay valid; the category just stops selling.
func (h *OwnerHandler) DeactivateRoomType(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hotelID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	roomID, err := pathID(c, "roomTypeId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room type id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, code, msg := h.ownedHotel(ctx, hotelID, ownerID); code != 0 {
		return c.JSON(code, echo.Map{"error": msg})
	}
	if err := h.Rooms.Deactivate(ctx, roomID, hotelID); err != nil {
		if err == repository.ErrRoomTypeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "deactivate room type failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
