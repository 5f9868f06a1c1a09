package api

import (
	"net/http"

	"github.com/Domenick1991/frontdesk/internal/service/views"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	views views.Reader
}

func NewDashboardHandler(reader views.Reader) *DashboardHandler {
	return &DashboardHandler{views: reader}
}

func (h *DashboardHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.get)
}

func (h *DashboardHandler) get(c *gin.Context) {
	c.JSON(http.StatusOK, h.views.Dashboard(c.Request.Context()))
}
