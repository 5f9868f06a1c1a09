package api

import (
	"net/http"

	"github.com/Domenick1991/frontdesk/internal/domain"
	"github.com/Domenick1991/frontdesk/internal/service/lifecycle"
	"github.com/Domenick1991/frontdesk/internal/service/views"
	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	desk  lifecycle.FrontDesk
	views views.Reader
}

type roomStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func NewRoomHandler(desk lifecycle.FrontDesk, reader views.Reader) *RoomHandler {
	return &RoomHandler{desk: desk, views: reader}
}

func (h *RoomHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.PUT("/:id/status", h.setStatus)
}

func (h *RoomHandler) list(c *gin.Context) {
	c.JSON(http.StatusOK, h.views.Rooms(c.Request.Context()))
}

func (h *RoomHandler) setStatus(c *gin.Context) {
	var req roomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	room, err := h.desk.SetRoomStatus(c.Request.Context(), c.Param("id"), domain.RoomStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}
