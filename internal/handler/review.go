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

// ReviewHandler lets customers review completed stays.  One review per
// booking; each saved review recomputes the hotel's rating aggregate.
type ReviewHandler struct {
	Bookings *repository.BookingRepo
	Reviews  *repository.ReviewRepo
	Hotels   *repository.HotelRepo
}

func NewReviewHandler(b *repository.BookingRepo, rev *repository.ReviewRepo, h *repository.HotelRepo) *ReviewHandler {
	return &ReviewHandler{Bookings: b, Reviews: rev, Hotels: h}
}

type createReviewReq struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Create posts a review for one of the caller's checked-out bookings.
func (h *ReviewHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req createReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	if b.UserID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your booking"})
	}
	if b.Status != model.BookingCheckedOut {
		return c.JSON(http.StatusConflict, echo.Map{"error": "only completed stays can be reviewed"})
	}

	rev := model.Review{
		BookingID: b.ID,
		UserID:    userID,
		HotelID:   b.HotelID,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
	}

	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create review failed"})
	}
	defer tx.Rollback()

	if err := h.Reviews.CreateTx(ctx, tx, &rev); err != nil {
		if err == repository.ErrReviewExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking already reviewed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create review failed"})
	}
	if err := h.Hotels.RefreshRatingTx(ctx, tx, b.HotelID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create review failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create review failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{"review": echo.Map{
		"id":         rev.ID,
		"booking_id": rev.BookingID,
		"hotel_id":   rev.HotelID,
		"rating":     rev.Rating,
		"comment":    rev.Comment,
	}})
}
