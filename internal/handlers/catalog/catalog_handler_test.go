package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	catalogdom "almatiq-service/internal/domain/catalog"
	"almatiq-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type fakeRefresher struct {
	services   []catalogdom.Variation
	refreshErr error
	refreshed  bool
}

func (f *fakeRefresher) Services() []catalogdom.Variation { return f.services }

func (f *fakeRefresher) Refresh(ctx context.Context) error {
	f.refreshed = true
	return f.refreshErr
}

func newTestRouter(r Refresher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewCatalogHandler(r)
	engine.GET("/services", h.ListServices)
	engine.POST("/catalog/refresh", h.RefreshCatalog)
	return engine
}

func TestListServices(t *testing.T) {
	refresher := &fakeRefresher{services: []catalogdom.Variation{{ID: "v1", Name: "Focused Recovery", Price: 60}}}
	w := httptest.NewRecorder()
	newTestRouter(refresher).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/services", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	services, ok := body.Data.([]any)
	if !ok || len(services) != 1 {
		t.Errorf("unexpected data: %+v", body.Data)
	}
}

func TestRefreshCatalog(t *testing.T) {
	refresher := &fakeRefresher{}
	w := httptest.NewRecorder()
	newTestRouter(refresher).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/catalog/refresh", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !refresher.refreshed {
		t.Error("refresh was not triggered")
	}
}

func TestRefreshCatalogFailure(t *testing.T) {
	refresher := &fakeRefresher{refreshErr: errors.New("upstream down")}
	w := httptest.NewRecorder()
	newTestRouter(refresher).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/catalog/refresh", nil))

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
}
