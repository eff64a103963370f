// Package dashboard assembles the read-side views: it fans out the
// provider fetches, substitutes empty collections for failed sources,
// and feeds the results through the reconciliation and aggregation
// engines.
package dashboard

import (
	"context"
	"sync"
	"time"

	"almatiq-service/internal/domain/booking"
	catalogdom "almatiq-service/internal/domain/catalog"
	"almatiq-service/internal/domain/customer"
	"almatiq-service/internal/domain/lead"
	"almatiq-service/internal/domain/metrics"
	"almatiq-service/internal/service/insights"
	"almatiq-service/internal/service/reconcile"

	"go.uber.org/zap"
)

// PlatformClient is the slice of the booking-platform client this
// service reads from.
type PlatformClient interface {
	ListBookings(ctx context.Context) ([]booking.Booking, error)
	ListCustomers(ctx context.Context) ([]customer.Customer, error)
}

// LeadSource reads lead rows from the spreadsheet tracker.
type LeadSource interface {
	SheetTitles(ctx context.Context, spreadsheetID string) ([]string, error)
	ReadLeads(ctx context.Context, spreadsheetID, sheetTitle string) ([]lead.Lead, error)
}

// CatalogProvider hands out the current catalog snapshot.
type CatalogProvider interface {
	Snapshot() catalogdom.Snapshot
}

type Service struct {
	platform      PlatformClient
	leadSource    LeadSource
	catalog       CatalogProvider
	spreadsheetID string
	logger        *zap.Logger
}

func NewService(platform PlatformClient, leadSource LeadSource, catalog CatalogProvider, spreadsheetID string, logger *zap.Logger) *Service {
	return &Service{
		platform:      platform,
		leadSource:    leadSource,
		catalog:       catalog,
		spreadsheetID: spreadsheetID,
		logger:        logger,
	}
}

// Overview aggregates bookings into dashboard metrics, optionally
// filtered to a date range.
func (s *Service) Overview(ctx context.Context, rng *metrics.Range) metrics.Overview {
	var (
		wg        sync.WaitGroup
		bookings  []booking.Booking
		customers []customer.Customer
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		bookings = s.fetchBookings(ctx)
	}()
	go func() {
		defer wg.Done()
		customers = s.fetchCustomers(ctx)
	}()
	wg.Wait()

	return metrics.Overview{
		Metrics:         insights.Aggregate(time.Now(), bookings, s.catalog.Snapshot().Index, rng),
		ActiveCustomers: len(customers),
	}
}

// Bookings joins the booking set with customer names and resolved
// service display names for the bookings table.
func (s *Service) Bookings(ctx context.Context) []booking.Row {
	var (
		wg        sync.WaitGroup
		bookings  []booking.Booking
		customers []customer.Customer
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		bookings = s.fetchBookings(ctx)
	}()
	go func() {
		defer wg.Done()
		customers = s.fetchCustomers(ctx)
	}()
	wg.Wait()

	byID := make(map[string]customer.Customer, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
	}
	index := s.catalog.Snapshot().Index

	rows := make([]booking.Row, 0, len(bookings))
	for _, b := range bookings {
		service := "Booking"
		if v, ok := index[b.PrimaryVariationID()]; ok && v.Name != "" {
			service = v.Name
		}
		rows = append(rows, booking.Row{
			ID:           b.ID,
			CustomerName: byID[b.CustomerID].DisplayName(),
			StartAt:      b.StartAt,
			Service:      service,
			Status:       b.Status,
		})
	}
	return rows
}

// Customers returns the customer directory.
func (s *Service) Customers(ctx context.Context) []customer.Customer {
	return s.fetchCustomers(ctx)
}

// Leads reconciles the spreadsheet leads against customers and
// bookings. The three fetches run concurrently and fail independently.
func (s *Service) Leads(ctx context.Context) []lead.Enriched {
	var (
		wg        sync.WaitGroup
		bookings  []booking.Booking
		customers []customer.Customer
		leads     []lead.Lead
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		bookings = s.fetchBookings(ctx)
	}()
	go func() {
		defer wg.Done()
		customers = s.fetchCustomers(ctx)
	}()
	go func() {
		defer wg.Done()
		leads = s.fetchLeads(ctx)
	}()
	wg.Wait()

	return reconcile.Reconcile(leads, customers, bookings)
}

func (s *Service) fetchBookings(ctx context.Context) []booking.Booking {
	bookings, err := s.platform.ListBookings(ctx)
	if err != nil {
		s.logger.Warn("booking fetch failed, continuing with empty set", zap.Error(err))
		return nil
	}
	return bookings
}

func (s *Service) fetchCustomers(ctx context.Context) []customer.Customer {
	customers, err := s.platform.ListCustomers(ctx)
	if err != nil {
		s.logger.Warn("customer fetch failed, continuing with empty set", zap.Error(err))
		return nil
	}
	return customers
}

// fetchLeads enumerates every spreadsheet tab and reads its rows. Tabs
// are read concurrently; a failed tab contributes nothing while the
// rest still load.
func (s *Service) fetchLeads(ctx context.Context) []lead.Lead {
	titles, err := s.leadSource.SheetTitles(ctx, s.spreadsheetID)
	if err != nil {
		s.logger.Warn("lead sheet enumeration failed, continuing with empty set", zap.Error(err))
		return nil
	}

	perTab := make([][]lead.Lead, len(titles))
	var wg sync.WaitGroup
	for i, title := range titles {
		wg.Add(1)
		go func(i int, title string) {
			defer wg.Done()
			rows, err := s.leadSource.ReadLeads(ctx, s.spreadsheetID, title)
			if err != nil {
				s.logger.Warn("lead sheet read failed",
					zap.String("sheet", title),
					zap.Error(err),
				)
				return
			}
			perTab[i] = rows
		}(i, title)
	}
	wg.Wait()

	var all []lead.Lead
	for _, rows := range perTab {
		all = append(all, rows...)
	}
	return all
}
