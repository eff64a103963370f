// internal/handlers/dashboard/dashboard_handler.go
package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"almatiq-service/internal/domain/booking"
	"almatiq-service/internal/domain/customer"
	"almatiq-service/internal/domain/lead"
	"almatiq-service/internal/domain/metrics"
	"almatiq-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// Service is the read-side surface the handler exposes over HTTP.
type Service interface {
	Overview(ctx context.Context, rng *metrics.Range) metrics.Overview
	Bookings(ctx context.Context) []booking.Row
	Customers(ctx context.Context) []customer.Customer
	Leads(ctx context.Context) []lead.Enriched
}

type DashboardHandler struct {
	service Service
}

func NewDashboardHandler(service Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetMetrics returns the aggregated dashboard metrics, optionally
// filtered by ?start=YYYY-MM-DD&end=YYYY-MM-DD (end-inclusive).
func (h *DashboardHandler) GetMetrics(c *gin.Context) {
	rng, err := parseRange(c.Query("start"), c.Query("end"))
	if err != nil {
		response.ValidationError(c, "invalid date range", err)
		return
	}

	overview := h.service.Overview(c.Request.Context(), rng)
	response.Success(c, http.StatusOK, "metrics retrieved", overview)
}

// ListBookings returns the enriched booking rows.
func (h *DashboardHandler) ListBookings(c *gin.Context) {
	rows := h.service.Bookings(c.Request.Context())
	response.Success(c, http.StatusOK, "bookings retrieved", rows)
}

// ListCustomers returns the customer directory.
func (h *DashboardHandler) ListCustomers(c *gin.Context) {
	customers := h.service.Customers(c.Request.Context())
	response.Success(c, http.StatusOK, "customers retrieved", customers)
}

// ListLeads returns the reconciled lead list.
func (h *DashboardHandler) ListLeads(c *gin.Context) {
	leads := h.service.Leads(c.Request.Context())
	response.Success(c, http.StatusOK, "leads retrieved", leads)
}

// parseRange requires start and end together; a lone bound is rejected
// rather than silently ignored.
func parseRange(startStr, endStr string) (*metrics.Range, error) {
	if startStr == "" && endStr == "" {
		return nil, nil
	}
	if startStr == "" || endStr == "" {
		return nil, fmt.Errorf("start and end must be supplied together")
	}

	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q", startStr)
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q", endStr)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date precedes start date")
	}
	return &metrics.Range{Start: start, End: end}, nil
}
