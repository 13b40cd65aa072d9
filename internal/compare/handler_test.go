package compare

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/farepilot/farepilot/internal/capture"
	"github.com/farepilot/farepilot/internal/drivers"
	"github.com/farepilot/farepilot/internal/fare"
)

func setupRouter(observed *MockObservedSource, driverSource *MockDriverSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(newTestService(observed, driverSource)).RegisterRoutes(router.Group("/v1"))
	return router
}

func happyMocks() (*MockObservedSource, *MockDriverSource) {
	observed := new(MockObservedSource)
	driverSource := new(MockDriverSource)
	observed.On("LatestObservedPrices", mock.Anything).Return([]capture.ObservedPrice{}, nil)
	driverSource.On("FindNearby", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]drivers.Candidate{{ID: "d1", Rating: 4.7, DistanceKm: 1.0}}, nil)
	return observed, driverSource
}

func postJSON(router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCompareEndpoint(t *testing.T) {
	router := setupRouter(happyMocks())

	w := postJSON(router, "/v1/compare", gin.H{
		"origin_lat":      31.5102,
		"origin_lng":      74.3441,
		"destination_lat": 31.5216,
		"destination_lng": 74.4036,
		"sort_by":         "lowest_price",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool           `json:"success"`
		Data    RankedOfferSet `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, PolicyLowestPrice, resp.Data.Policy)
	assert.Equal(t, QualityLive, resp.Data.DataQuality)
	assert.NotEmpty(t, resp.Data.Offers)
	assert.True(t, resp.Data.Offers[0].IsBest)
}

func TestCompareEndpoint_MissingFields(t *testing.T) {
	router := setupRouter(happyMocks())

	w := postJSON(router, "/v1/compare", gin.H{"origin_lat": 31.5})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompareEndpoint_InvalidCoordinates(t *testing.T) {
	router := setupRouter(happyMocks())

	w := postJSON(router, "/v1/compare", gin.H{
		"origin_lat":      123.0,
		"origin_lng":      74.3441,
		"destination_lat": 31.5216,
		"destination_lng": 74.4036,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompareEndpoint_UnknownPolicy(t *testing.T) {
	router := setupRouter(happyMocks())

	w := postJSON(router, "/v1/compare", gin.H{
		"origin_lat":      31.5102,
		"origin_lng":      74.3441,
		"destination_lat": 31.5216,
		"destination_lng": 74.4036,
		"sort_by":         "cheapest",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeepLinkEndpoint(t *testing.T) {
	router := setupRouter(happyMocks())

	w := postJSON(router, "/v1/deeplink", gin.H{
		"provider":        "uber",
		"origin_lat":      31.5102,
		"origin_lng":      74.3441,
		"destination_lat": 31.5216,
		"destination_lng": 74.4036,
		"pickup_address":  "Liberty Market",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data DeepLinkResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "uber", resp.Data.Provider)
	assert.Contains(t, resp.Data.Action.URL, "uber://")
}

func TestDeepLinkEndpoint_UnknownProvider(t *testing.T) {
	router := setupRouter(happyMocks())

	w := postJSON(router, "/v1/deeplink", gin.H{
		"provider":        "horsecart",
		"origin_lat":      31.5102,
		"origin_lng":      74.3441,
		"destination_lat": 31.5216,
		"destination_lng": 74.4036,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProvidersEndpoint(t *testing.T) {
	router := setupRouter(happyMocks())

	req := httptest.NewRequest(http.MethodGet, "/v1/providers", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []ProviderInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, len(fare.AllProviders()))
}

func TestClearObservedPricesEndpoint(t *testing.T) {
	observed := new(MockObservedSource)
	observed.On("ClearObservedPrices", mock.Anything).Return(nil)

	router := setupRouter(observed, new(MockDriverSource))

	req := httptest.NewRequest(http.MethodDelete, "/v1/observed-prices", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	observed.AssertExpectations(t)
}
