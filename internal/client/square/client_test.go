package square

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid token", Config{AccessToken: "test-token"}, false},
		{"empty token", Config{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c == nil {
				t.Fatal("expected client, got nil")
			}
		})
	}
}

func TestNewClientEnvironment(t *testing.T) {
	tests := []struct {
		env      string
		wantBase string
	}{
		{"production", productionBaseURL},
		{"sandbox", sandboxBaseURL},
		{"", sandboxBaseURL},
	}
	for _, tt := range tests {
		c, err := NewClient(Config{AccessToken: "t", Environment: tt.env})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.baseURL != tt.wantBase {
			t.Errorf("env %q: baseURL = %q, want %q", tt.env, c.baseURL, tt.wantBase)
		}
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{AccessToken: "test-token", Version: "2024-01-18"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.baseURL = srv.URL
	return c
}

func TestListBookings(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bookings" {
			t.Errorf("path = %q, want /bookings", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "100" {
			t.Errorf("limit = %q, want 100", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("authorization = %q", got)
		}
		if got := r.Header.Get("Square-Version"); got != "2024-01-18" {
			t.Errorf("version header = %q", got)
		}
		fmt.Fprint(w, `{"bookings": [{"id": "b1", "status": "ACCEPTED", "customer_id": "c1"}]}`)
	})

	got, err := c.ListBookings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "b1" || got[0].CustomerID != "c1" {
		t.Errorf("unexpected bookings: %+v", got)
	}
}

func TestListCatalogItems(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/catalog/list" {
			t.Errorf("path = %q, want /catalog/list", r.URL.Path)
		}
		if got := r.URL.Query().Get("types"); got != "ITEM" {
			t.Errorf("types = %q, want ITEM", got)
		}
		fmt.Fprint(w, `{"objects": [{
			"id": "item-1",
			"type": "ITEM",
			"item_data": {
				"name": "Focused Recovery",
				"variations": [{
					"id": "v1",
					"item_variation_data": {"name": "Regular", "price_money": {"amount": 6000}}
				}]
			}
		}]}`)
	})

	got, err := c.ListCatalogItems(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	v := got[0].ItemData.Variations[0]
	if v.ID != "v1" || v.ItemVariationData.PriceMoney.Amount != 6000 {
		t.Errorf("unexpected variation: %+v", v)
	}
}

func TestCreateBooking(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/bookings" {
			t.Errorf("%s %s, want POST /bookings", r.Method, r.URL.Path)
		}
		var payload struct {
			IdempotencyKey string `json:"idempotency_key"`
			Booking        struct {
				StartAt    string `json:"start_at"`
				LocationID string `json:"location_id"`
				CustomerID string `json:"customer_id"`
				Segments   []struct {
					ServiceVariationID string `json:"service_variation_id"`
				} `json:"appointment_segments"`
			} `json:"booking"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decoding payload: %v", err)
		}
		if payload.IdempotencyKey == "" {
			t.Error("idempotency key missing")
		}
		if payload.Booking.LocationID != "loc-1" || payload.Booking.CustomerID != "c1" {
			t.Errorf("unexpected booking payload: %+v", payload.Booking)
		}
		if len(payload.Booking.Segments) != 1 || payload.Booking.Segments[0].ServiceVariationID != "v1" {
			t.Errorf("unexpected segments: %+v", payload.Booking.Segments)
		}
		fmt.Fprint(w, `{"booking": {"id": "b-new", "status": "PENDING"}}`)
	})

	got, err := c.CreateBooking(context.Background(), "loc-1", "c1", "v1", "2024-08-01T10:00:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "b-new" {
		t.Errorf("booking id = %q, want b-new", got.ID)
	}
}

func TestErrorDetailSurfaced(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"errors": [{"category": "AUTHENTICATION_ERROR", "code": "UNAUTHORIZED", "detail": "This request could not be authorized."}]}`)
	})

	_, err := c.ListBookings(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if want := "This request could not be authorized."; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not contain %q", err.Error(), want)
	}
}

func TestErrorWithoutDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `oops`)
	})

	_, err := c.ListCustomers(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if want := "unexpected status 500"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not contain %q", err.Error(), want)
	}
}
