package delivery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront_service/internal/domain"
	"storefront_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

type stubCatalogUseCase struct {
	window        usecase.CatalogWindow
	filters       domain.FilterCriteria
	suggestions   []domain.Product
	suggestErr    error
	lastScrollTop int
	lastQuery     string
	lastPatch     *domain.FilterPatch
	retried       bool
	resetCalled   bool
}

func (s *stubCatalogUseCase) Window(_ context.Context, scrollTop int) usecase.CatalogWindow {
	s.lastScrollTop = scrollTop
	return s.window
}

func (s *stubCatalogUseCase) Retry(_ context.Context, scrollTop int) usecase.CatalogWindow {
	s.retried = true
	s.lastScrollTop = scrollTop
	return s.window
}

func (s *stubCatalogUseCase) Filters() domain.FilterCriteria { return s.filters }

func (s *stubCatalogUseCase) UpdateFilters(patch domain.FilterPatch) domain.FilterCriteria {
	s.lastPatch = &patch
	return s.filters
}

func (s *stubCatalogUseCase) ResetFilters() domain.FilterCriteria {
	s.resetCalled = true
	return domain.DefaultFilterCriteria()
}

func (s *stubCatalogUseCase) Suggest(_ context.Context, query string) ([]domain.Product, error) {
	s.lastQuery = query
	return s.suggestions, s.suggestErr
}

func catalogRouter(stub *stubCatalogUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewCatalogHandler(stub, testLogger()).RegisterRoutes(router)
	return router
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestGetWindowPassesScrollTop(t *testing.T) {
	stub := &stubCatalogUseCase{window: usecase.CatalogWindow{State: usecase.StateSettled}}
	router := catalogRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalog?scroll_top=1200", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1200, stub.lastScrollTop)
	assert.Equal(t, "Success", decodeResponse(t, rec).Status)
}

func TestGetWindowRejectsBadScrollTop(t *testing.T) {
	tests := []string{"abc", "-5", "1.5"}
	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			router := catalogRouter(&stubCatalogUseCase{})

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/catalog?scroll_top="+raw, nil)
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Fail", decodeResponse(t, rec).Status)
		})
	}
}

func TestRetryInvokesUseCase(t *testing.T) {
	stub := &stubCatalogUseCase{}
	router := catalogRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/catalog/retry", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, stub.retried)
}

func TestUpdateFiltersBindsPatch(t *testing.T) {
	stub := &stubCatalogUseCase{}
	router := catalogRouter(stub)

	body := `{"category":"smartphones","min_price":10}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/catalog/filters", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stub.lastPatch)
	require.NotNil(t, stub.lastPatch.Category)
	assert.Equal(t, "smartphones", *stub.lastPatch.Category)
	require.NotNil(t, stub.lastPatch.MinPrice)
	assert.Equal(t, 10.0, *stub.lastPatch.MinPrice)
	assert.Nil(t, stub.lastPatch.Rating, "absent fields stay nil in the patch")
}

func TestUpdateFiltersRejectsMalformedBody(t *testing.T) {
	router := catalogRouter(&stubCatalogUseCase{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/catalog/filters", strings.NewReader("{oops"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetFilters(t *testing.T) {
	stub := &stubCatalogUseCase{}
	router := catalogRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/catalog/filters/reset", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, stub.resetCalled)
}

func TestSuggestPassesQuery(t *testing.T) {
	stub := &stubCatalogUseCase{suggestions: []domain.Product{{ID: 1, Title: "Phone"}}}
	router := catalogRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalog/suggest?q=phone", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "phone", stub.lastQuery)
}

func TestSuggestMapsGatewayFailure(t *testing.T) {
	stub := &stubCatalogUseCase{suggestErr: &domain.GatewayError{StatusCode: 500, Endpoint: "/products/search"}}
	router := catalogRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalog/suggest?q=phone", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
