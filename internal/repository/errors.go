// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by
// someone else, while ErrConflict signals that an operation
// cannot proceed because another request already changed the
// record (e.g. a racing status transition).
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a conditional update affected no rows
// because the record's state changed between read and write, such as a
// cancellation racing a payment confirmation. Handlers should re-read
// the record and re-evaluate rather than blindly retry.
var ErrConflict = errors.New("conflict")

// ErrHotelNotFound is returned when a hotel does not exist or is not
// visible to the caller.
var ErrHotelNotFound = errors.New("hotel not found")

// ErrRoomTypeNotFound is returned when a room type does not exist or
// has been deactivated.
var ErrRoomTypeNotFound = errors.New("room type not found")

// ErrBookingNotFound is returned when a booking cannot be located by
// id or booking number.
var ErrBookingNotFound = errors.New("booking not found")
