package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"weathermap.app/internal/core/dashboard"
	"weathermap.app/pkg/errors"
)

// TabRequest switches the sidebar section
type TabRequest struct {
	Tab string `json:"tab" binding:"required,oneof=layers subscriptions alerts"`
}

// getDashboard handles GET /api/dashboard requests with the full view model
func (s *HTTPServerAdapter) getDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, s.dashboard.View())
}

func (s *HTTPServerAdapter) getUI(c *gin.Context) {
	c.JSON(http.StatusOK, s.dashboard.UI())
}

func (s *HTTPServerAdapter) setTab(c *gin.Context) {
	var req TabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, errors.NewValidationError("tab must be one of: layers, subscriptions, alerts"))
		return
	}
	if err := s.dashboard.SetTab(dashboard.Tab(req.Tab)); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.dashboard.UI())
}

func (s *HTTPServerAdapter) openModal(c *gin.Context) {
	if err := s.dashboard.OpenModal(dashboard.Modal(c.Param("modal"))); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.dashboard.UI())
}

func (s *HTTPServerAdapter) closeModal(c *gin.Context) {
	if err := s.dashboard.CloseModal(dashboard.Modal(c.Param("modal"))); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.dashboard.UI())
}
