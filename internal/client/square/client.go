// Package square is a thin REST client for the booking platform. It
// translates provider responses into domain records and surfaces the
// platform's error detail messages.
package square

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"almatiq-service/internal/domain/booking"
	"almatiq-service/internal/domain/catalog"
	"almatiq-service/internal/domain/customer"

	"github.com/oklog/ulid/v2"
)

const (
	productionBaseURL = "https://connect.squareup.com/v2"
	sandboxBaseURL    = "https://connect.squareupsandbox.com/v2"

	defaultVersion = "2024-01-18"
	listLimit      = 100
)

type Config struct {
	AccessToken string
	Environment string // "production" or "sandbox"
	Version     string
}

// Client calls the booking platform REST API.
type Client struct {
	httpClient  *http.Client
	accessToken string
	version     string

	// Overridable for testing.
	baseURL string
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("SQUARE_ACCESS_TOKEN is required")
	}

	baseURL := sandboxBaseURL
	if cfg.Environment == "production" {
		baseURL = productionBaseURL
	}
	version := cfg.Version
	if version == "" {
		version = defaultVersion
	}

	return &Client{
		httpClient:  &http.Client{},
		accessToken: cfg.AccessToken,
		version:     version,
		baseURL:     baseURL,
	}, nil
}

// Location is a business location; the active one is required when
// creating bookings.
type Location struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ListBookings fetches the current booking set.
func (c *Client) ListBookings(ctx context.Context) ([]booking.Booking, error) {
	var result struct {
		Bookings []booking.Booking `json:"bookings"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("bookings?limit=%d", listLimit), nil, &result); err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	return result.Bookings, nil
}

// ListCustomers fetches the customer directory.
func (c *Client) ListCustomers(ctx context.Context) ([]customer.Customer, error) {
	var result struct {
		Customers []customer.Customer `json:"customers"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("customers?limit=%d", listLimit), nil, &result); err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	return result.Customers, nil
}

// ListCatalogItems fetches catalog objects of type ITEM.
func (c *Client) ListCatalogItems(ctx context.Context) ([]catalog.Item, error) {
	var result struct {
		Objects []catalog.Item `json:"objects"`
	}
	if err := c.do(ctx, http.MethodGet, "catalog/list?types=ITEM", nil, &result); err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}
	return result.Objects, nil
}

// ListLocations fetches the business locations.
func (c *Client) ListLocations(ctx context.Context) ([]Location, error) {
	var result struct {
		Locations []Location `json:"locations"`
	}
	if err := c.do(ctx, http.MethodGet, "locations", nil, &result); err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	return result.Locations, nil
}

// CreateBooking creates a booking for the given customer, service
// variation and start time (RFC3339). A fresh ULID is sent as the
// idempotency key so platform-side retries cannot double-book.
func (c *Client) CreateBooking(ctx context.Context, locationID, customerID, serviceVariationID, startAt string) (booking.Booking, error) {
	payload := map[string]any{
		"idempotency_key": ulid.Make().String(),
		"booking": map[string]any{
			"start_at":    startAt,
			"location_id": locationID,
			"customer_id": customerID,
			"appointment_segments": []map[string]any{
				{"service_variation_id": serviceVariationID},
			},
		},
	}

	var result struct {
		Booking booking.Booking `json:"booking"`
	}
	if err := c.do(ctx, http.MethodPost, "bookings", payload, &result); err != nil {
		return booking.Booking{}, fmt.Errorf("creating booking: %w", err)
	}
	return result.Booking, nil
}

// apiError is the platform's error payload shape.
type apiError struct {
	Errors []struct {
		Category string `json:"category"`
		Code     string `json:"code"`
		Detail   string `json:"detail"`
	} `json:"errors"`
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Square-Version", c.version)
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && len(apiErr.Errors) > 0 {
			return fmt.Errorf("%s", apiErr.Errors[0].Detail)
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
