package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"weathermap.app/internal/core/dashboard"
	"weathermap.app/internal/core/layer"
	"weathermap.app/pkg/errors"
)

// ToggleLayerRequest sets a layer's visibility
type ToggleLayerRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// OpacityRequest sets a layer's opacity. Values are stored as given.
type OpacityRequest struct {
	Opacity *float64 `json:"opacity" binding:"required"`
}

// SelectSlotRequest picks a timeline slot by index
type SelectSlotRequest struct {
	Index *int `json:"index" binding:"required"`
}

// LayersResponse lists every layer plus the ones the map renders
type LayersResponse struct {
	Layers  []layer.Config `json:"layers"`
	Enabled []layer.Config `json:"enabled"`
}

func (s *HTTPServerAdapter) listLayers(c *gin.Context) {
	layers := s.dashboard.Layers()
	c.JSON(http.StatusOK, LayersResponse{Layers: layers.List(), Enabled: layers.EnabledLayers()})
}

// toggleLayer handles PUT /api/layers/:id/toggle requests
func (s *HTTPServerAdapter) toggleLayer(c *gin.Context) {
	var req ToggleLayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, errors.NewValidationError("enabled is required"))
		return
	}

	id := c.Param("id")
	s.dashboard.Layers().Toggle(id, *req.Enabled)
	updated, err := s.dashboard.Layers().Get(id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// setLayerOpacity handles PUT /api/layers/:id/opacity requests
func (s *HTTPServerAdapter) setLayerOpacity(c *gin.Context) {
	var req OpacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, errors.NewValidationError("opacity is required"))
		return
	}

	id := c.Param("id")
	s.dashboard.Layers().SetOpacity(id, *req.Opacity)
	updated, err := s.dashboard.Layers().Get(id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *HTTPServerAdapter) timelineView() dashboard.TimelineView {
	return s.dashboard.View().Timeline
}

func (s *HTTPServerAdapter) getTimeline(c *gin.Context) {
	c.JSON(http.StatusOK, s.timelineView())
}

// selectSlot handles POST /api/timeline/select requests
func (s *HTTPServerAdapter) selectSlot(c *gin.Context) {
	var req SelectSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, errors.NewValidationError("index is required"))
		return
	}

	if _, err := s.dashboard.Timeline().Select(*req.Index); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.timelineView())
}

func (s *HTTPServerAdapter) nextSlot(c *gin.Context) {
	s.dashboard.Timeline().Next()
	c.JSON(http.StatusOK, s.timelineView())
}

func (s *HTTPServerAdapter) previousSlot(c *gin.Context) {
	s.dashboard.Timeline().Previous()
	c.JSON(http.StatusOK, s.timelineView())
}

func (s *HTTPServerAdapter) play(c *gin.Context) {
	if err := s.dashboard.Play(); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.timelineView())
}

func (s *HTTPServerAdapter) pause(c *gin.Context) {
	s.dashboard.Pause()
	c.JSON(http.StatusOK, s.timelineView())
}

func (s *HTTPServerAdapter) togglePlay(c *gin.Context) {
	if _, err := s.dashboard.TogglePlay(); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.timelineView())
}
