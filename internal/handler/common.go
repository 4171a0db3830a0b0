package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// dateLayout is the wire format for check-in/check-out dates.
const dateLayout = "2006-01-02"

// getUserID extracts the authenticated user ID that the JWT middleware
// stored on the context.  Claims decode numbers as float64, older tokens
// may carry the subject as a string.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case float64:
		return uint64(t), nil
	case string:
		return strconv.ParseUint(t, 10, 64)
	case uint64:
		return t, nil
	default:
		return 0, errors.New("no user in context")
	}
}

// pathID parses a numeric :param from the URL.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// parseStayDates parses and validates a check-in/check-out pair.  Dates
// are calendar days in UTC; the range is half-open so check-out must be
// strictly after check-in, and check-in must not be in the past.
func parseStayDates(checkIn, checkOut string, now time.Time) (time.Time, time.Time, error) {
	in, err := time.ParseInLocation(dateLayout, checkIn, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("check_in must be YYYY-MM-DD")
	}
	out, err := time.ParseInLocation(dateLayout, checkOut, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("check_out must be YYYY-MM-DD")
	}
	if !out.After(in) {
		return time.Time{}, time.Time{}, errors.New("check_out must be after check_in")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if in.Before(today) {
		return time.Time{}, time.Time{}, errors.New("check_in must not be in the past")
	}
	return in, out, nil
}
