// Package handlers exposes the suggestion engine over HTTP. Handlers only
// bind, delegate, and marshal; all decisions live in the services layer.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/geo"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/services"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/pkg/logger"
)

// Handler holds the services behind the HTTP surface.
type Handler struct {
	cameras     *services.CameraService
	suggestions *services.SuggestionService
}

// NewHandler creates the HTTP handler set.
func NewHandler(cameras *services.CameraService, suggestions *services.SuggestionService) *Handler {
	return &Handler{cameras: cameras, suggestions: suggestions}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListCameras returns every camera in the current snapshot.
func (h *Handler) ListCameras(c *gin.Context) {
	cameras, err := h.cameras.ListCameras(c.Request.Context())
	if err != nil {
		logger.Get().Error("list cameras failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "camera data unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cameras": cameras, "count": len(cameras)})
}

// GetCamera returns one camera by ID.
func (h *Handler) GetCamera(c *gin.Context) {
	camera, err := h.cameras.GetCamera(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrCameraNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "camera not found"})
			return
		}
		logger.Get().Error("get camera failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "camera data unavailable"})
		return
	}
	c.JSON(http.StatusOK, camera)
}

// suggestRequest is the POST /routes/suggest payload.
type suggestRequest struct {
	Start pointPayload `json:"start" binding:"required"`
	End   pointPayload `json:"end" binding:"required"`
}

type pointPayload struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

func (p pointPayload) toPoint() geo.Point {
	return geo.Point{Latitude: *p.Lat, Longitude: *p.Lng}
}

// SuggestRoutes runs the suggestion flow for a start/end pair.
func (h *Handler) SuggestRoutes(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := req.Start.toPoint()
	end := req.End.toPoint()
	if !start.Valid() || !end.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
		return
	}

	snapshot, err := h.cameras.Snapshot(c.Request.Context())
	if err != nil {
		logger.Get().Error("snapshot unavailable for suggestion", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "traffic data unavailable"})
		return
	}

	result, err := h.suggestions.SuggestRoutes(c.Request.Context(), start, end, snapshot)
	if err != nil {
		logger.Get().Error("route suggestion failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to suggest routes"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Bypasses generates detours around a congested point given as query params.
func (h *Handler) Bypasses(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lat"})
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lng"})
		return
	}

	center := geo.Point{Latitude: lat, Longitude: lng}
	if !center.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
		return
	}

	bypasses, err := h.suggestions.Bypasses(c.Request.Context(), center)
	if err != nil {
		logger.Get().Error("bypass generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate bypasses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bypasses": bypasses, "count": len(bypasses)})
}

// TimeStatus reports the day/night state and the active routing preference.
func (h *Handler) TimeStatus(c *gin.Context) {
	status, pref := h.suggestions.TimeStatus()
	c.JSON(http.StatusOK, gin.H{
		"timeString":        status.TimeString,
		"period":            status.Period,
		"nextChangeMinutes": status.NextChangeMinutes,
		"preference":        pref,
	})
}
