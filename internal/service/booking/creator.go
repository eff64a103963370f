// Package booking implements the single write path: creating a booking
// on the platform for a known customer and service variation.
package booking

import (
	"context"
	"fmt"
	"time"

	bookingdom "almatiq-service/internal/domain/booking"
	catalogdom "almatiq-service/internal/domain/catalog"
	xerrors "almatiq-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// PlatformWriter is the slice of the platform client used for creation.
type PlatformWriter interface {
	CreateBooking(ctx context.Context, locationID, customerID, serviceVariationID, startAt string) (bookingdom.Booking, error)
}

// CatalogProvider supplies the location id discovered by the refresher.
type CatalogProvider interface {
	Snapshot() catalogdom.Snapshot
}

// Notifier receives a signal once a booking lands, so dashboard clients
// can re-sync.
type Notifier interface {
	NotifyRefresh(event string)
}

type Creator struct {
	platform PlatformWriter
	catalog  CatalogProvider
	notifier Notifier
	logger   *zap.Logger
}

func NewCreator(platform PlatformWriter, catalog CatalogProvider, notifier Notifier, logger *zap.Logger) *Creator {
	return &Creator{
		platform: platform,
		catalog:  catalog,
		notifier: notifier,
		logger:   logger,
	}
}

// startAtFormats are the accepted start time inputs: RFC3339 from API
// callers, the shorter forms from datetime-local form fields.
var startAtFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Create places a booking at the active location. The start time is
// normalized to UTC RFC3339 before it goes out.
func (c *Creator) Create(ctx context.Context, req *bookingdom.CreateBookingRequest) (bookingdom.Booking, error) {
	startAt, err := parseStartAt(req.StartAt)
	if err != nil {
		return bookingdom.Booking{}, err
	}

	locationID := c.catalog.Snapshot().LocationID
	if locationID == "" {
		return bookingdom.Booking{}, fmt.Errorf("no active location discovered: %w", xerrors.ErrNotReady)
	}

	created, err := c.platform.CreateBooking(ctx, locationID, req.CustomerID, req.ServiceID, startAt)
	if err != nil {
		c.logger.Error("booking creation failed",
			zap.String("customer_id", req.CustomerID),
			zap.String("service_id", req.ServiceID),
			zap.Error(err),
		)
		return bookingdom.Booking{}, err
	}

	c.logger.Info("booking created",
		zap.String("booking_id", created.ID),
		zap.String("customer_id", req.CustomerID),
		zap.String("start_at", startAt),
	)
	if c.notifier != nil {
		c.notifier.NotifyRefresh("booking.created")
	}
	return created, nil
}

func parseStartAt(raw string) (string, error) {
	for _, layout := range startAtFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format(time.RFC3339), nil
		}
	}
	return "", fmt.Errorf("unparsable start time %q: %w", raw, xerrors.ErrInvalidInput)
}
