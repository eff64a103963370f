package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	bookingdom "almatiq-service/internal/domain/booking"
	xerrors "almatiq-service/internal/pkg/errors"
	"almatiq-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type fakeCreator struct {
	created bookingdom.Booking
	err     error
	got     *bookingdom.CreateBookingRequest
}

func (f *fakeCreator) Create(ctx context.Context, req *bookingdom.CreateBookingRequest) (bookingdom.Booking, error) {
	f.got = req
	return f.created, f.err
}

func postBooking(creator Creator, payload string) (*httptest.ResponseRecorder, response.Response) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/bookings", NewBookingHandler(creator).CreateBooking)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var body response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

const validPayload = `{"customer_id": "c1", "service_id": "v1", "start_at": "2024-08-01T10:00:00Z"}`

func TestCreateBooking(t *testing.T) {
	creator := &fakeCreator{created: bookingdom.Booking{ID: "b-new"}}
	w, body := postBooking(creator, validPayload)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if !body.Success {
		t.Errorf("expected success envelope, got %+v", body)
	}
	if creator.got == nil || creator.got.CustomerID != "c1" {
		t.Errorf("unexpected request passed through: %+v", creator.got)
	}
}

func TestCreateBookingBindingErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", "not json"},
		{"missing customer", `{"service_id": "v1", "start_at": "2024-08-01T10:00:00Z"}`},
		{"missing service", `{"customer_id": "c1", "start_at": "2024-08-01T10:00:00Z"}`},
		{"missing start", `{"customer_id": "c1", "service_id": "v1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creator := &fakeCreator{}
			w, _ := postBooking(creator, tt.payload)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if creator.got != nil {
				t.Error("creator should not be called on binding failure")
			}
		})
	}
}

func TestCreateBookingErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid input", fmt.Errorf("bad start: %w", xerrors.ErrInvalidInput), http.StatusBadRequest},
		{"catalog not ready", fmt.Errorf("no location: %w", xerrors.ErrNotReady), http.StatusServiceUnavailable},
		{"platform failure", fmt.Errorf("provider exploded"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := postBooking(&fakeCreator{err: tt.err}, validPayload)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if body.Success {
				t.Error("expected error envelope")
			}
		})
	}
}
