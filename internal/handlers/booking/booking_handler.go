// internal/handlers/booking/booking_handler.go
package booking

import (
	"context"
	"net/http"

	bookingdom "almatiq-service/internal/domain/booking"
	xerrors "almatiq-service/internal/pkg/errors"
	"almatiq-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Creator places bookings on the platform.
type Creator interface {
	Create(ctx context.Context, req *bookingdom.CreateBookingRequest) (bookingdom.Booking, error)
}

type BookingHandler struct {
	creator Creator
}

func NewBookingHandler(creator Creator) *BookingHandler {
	return &BookingHandler{creator: creator}
}

// CreateBooking handles POST /bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req bookingdom.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	created, err := h.creator.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case xerrors.Is(err, xerrors.ErrInvalidInput):
			response.ValidationError(c, "invalid booking request", err)
		case xerrors.Is(err, xerrors.ErrNotReady):
			response.Error(c, http.StatusServiceUnavailable, "booking unavailable", err)
		default:
			response.UpstreamError(c, "failed to create booking", err)
		}
		return
	}

	response.Success(c, http.StatusCreated, "booking created", created)
}
