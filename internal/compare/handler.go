package compare

import (
	"net/http"
	"time"

	"github.com/farepilot/farepilot/pkg/common"
	"github.com/farepilot/farepilot/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler exposes the comparison service over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates a new compare handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the compare API under the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/compare", h.Compare)
	rg.POST("/deeplink", h.DeepLink)
	rg.GET("/providers", h.Providers)
	rg.DELETE("/observed-prices", h.ClearObservedPrices)
}

// Compare handles POST /v1/compare.
func (h *Handler) Compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	policy, err := ParseSortPolicy(req.SortBy)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	trip := tripFromRequest(req)
	result, err := h.service.Compare(c.Request.Context(), trip, policy)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	logger.InfoContext(c.Request.Context(), "comparison served",
		zap.String("policy", string(policy)),
		zap.Int("offers", len(result.Offers)),
		zap.String("data_quality", string(result.DataQuality)),
	)
	common.SuccessResponse(c, result)
}

// DeepLink handles POST /v1/deeplink.
func (h *Handler) DeepLink(c *gin.Context) {
	var req DeepLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	trip := TripRequest{
		Origin:         Location{Lat: *req.OriginLat, Lng: *req.OriginLng},
		Destination:    Location{Lat: *req.DestinationLat, Lng: *req.DestinationLng},
		PickupAddress:  req.PickupAddress,
		DropoffAddress: req.DropoffAddress,
	}

	result, err := h.service.Dispatch(c.Request.Context(), req.Provider, trip)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	common.SuccessResponse(c, result)
}

// Providers handles GET /v1/providers.
func (h *Handler) Providers(c *gin.Context) {
	common.SuccessResponse(c, h.service.Providers(c.Request.Context()))
}

// ClearObservedPrices handles DELETE /v1/observed-prices.
func (h *Handler) ClearObservedPrices(c *gin.Context) {
	if err := h.service.ClearObservedPrices(c.Request.Context()); err != nil {
		common.ErrorResponseFromError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"cleared_at": time.Now().UTC()})
}

func tripFromRequest(req CompareRequest) TripRequest {
	return TripRequest{
		Origin:         Location{Lat: *req.OriginLat, Lng: *req.OriginLng},
		Destination:    Location{Lat: *req.DestinationLat, Lng: *req.DestinationLng},
		PickupAddress:  req.PickupAddress,
		DropoffAddress: req.DropoffAddress,
	}
}
