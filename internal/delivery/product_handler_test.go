package delivery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront_service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubProductUseCase struct {
	detail     *domain.ProductDetail
	detailErr  error
	rated      *domain.Product
	rateErr    error
	available  bool
	lastRating float64
	watchFn    func(ctx context.Context) <-chan bool
}

func (s *stubProductUseCase) Detail(_ context.Context, _ int) (*domain.ProductDetail, error) {
	return s.detail, s.detailErr
}

func (s *stubProductUseCase) Rate(_ context.Context, _ int, rating float64) (*domain.Product, error) {
	s.lastRating = rating
	return s.rated, s.rateErr
}

func (s *stubProductUseCase) CheckAvailability(_ context.Context, _ int) bool {
	return s.available
}

func (s *stubProductUseCase) WatchAvailability(ctx context.Context, _ int) <-chan bool {
	if s.watchFn != nil {
		return s.watchFn(ctx)
	}
	ch := make(chan bool)
	close(ch)
	return ch
}

func productRouter(stub *stubProductUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewProductHandler(stub, testLogger()).RegisterRoutes(router)
	return router
}

func TestGetDetailSuccess(t *testing.T) {
	stub := &stubProductUseCase{detail: &domain.ProductDetail{
		Product: domain.Product{ID: 7, Title: "Widget", Category: "tools"},
		Related: []domain.Product{{ID: 8, Title: "Other widget"}},
	}}
	router := productRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/7", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Success", decodeResponse(t, rec).Status)
}

func TestGetDetailMapsNotFound(t *testing.T) {
	stub := &stubProductUseCase{detailErr: domain.ErrNotFound}
	router := productRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/999", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetDetailRejectsBadID(t *testing.T) {
	tests := []string{"abc", "-1", "0"}
	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			router := productRouter(&stubProductUseCase{})

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/products/"+raw, nil)
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRatePassesValue(t *testing.T) {
	stub := &stubProductUseCase{rated: &domain.Product{ID: 7, Rating: 4.5}}
	router := productRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/products/7/rate", strings.NewReader(`{"rating":5}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5.0, stub.lastRating)
}

func TestRateRejectsInvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing rating", `{}`},
		{"above range", `{"rating":5.5}`},
		{"below range", `{"rating":-1}`},
		{"malformed json", `{oops`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := productRouter(&stubProductUseCase{})

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/products/7/rate", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetAvailability(t *testing.T) {
	stub := &stubProductUseCase{available: true}
	router := productRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/7/availability", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"available":true`)
}

type closeNotifyRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func newCloseNotifyRecorder() *closeNotifyRecorder {
	return &closeNotifyRecorder{httptest.NewRecorder(), make(chan bool, 1)}
}

func (r *closeNotifyRecorder) CloseNotify() <-chan bool { return r.closed }

func TestStreamAvailabilityEmitsEvents(t *testing.T) {
	stub := &stubProductUseCase{watchFn: func(_ context.Context) <-chan bool {
		ch := make(chan bool, 2)
		ch <- true
		ch <- false
		close(ch)
		return ch
	}}
	router := productRouter(stub)

	rec := newCloseNotifyRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/7/availability/stream", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "event:availability")
	assert.Contains(t, body, `"available":true`)
	assert.Contains(t, body, `"available":false`)
}
