package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/Domenick1991/frontdesk/internal/domain"
	"github.com/Domenick1991/frontdesk/internal/service/lifecycle"
	"github.com/Domenick1991/frontdesk/internal/service/views"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReservationHandler struct {
	desk  lifecycle.FrontDesk
	views views.Reader
}

type extendRequest struct {
	NewCheckOut string `json:"newCheckOut" binding:"required"`
	RoomID      string `json:"roomId"`
	StayTypeID  string `json:"stayTypeId"`
	Actor       string `json:"actor"`
}

func NewReservationHandler(desk lifecycle.FrontDesk, reader views.Reader) *ReservationHandler {
	return &ReservationHandler{desk: desk, views: reader}
}

func (h *ReservationHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/export", h.export)
	router.GET("/:id", h.get)
	router.GET("/:id/refund-quote", h.refundQuote)
	router.GET("/:id/candidate-rooms", h.candidateRooms)
	router.POST("/:id/check-in", h.checkIn)
	router.POST("/:id/extend", h.extend)
	router.POST("/:id/check-out", h.checkOut)
	router.POST("/:id/cancel", h.cancel)
}

func historyQuery(c *gin.Context) (views.HistoryQuery, error) {
	q := views.HistoryQuery{
		Search: c.Query("q"),
		SortBy: c.Query("sort"),
		Desc:   c.Query("order") == "desc",
	}
	for _, s := range splitList(c.Query("status")) {
		q.Statuses = append(q.Statuses, domain.ReservationStatus(s))
	}
	for key, dst := range map[string]*time.Time{"from": &q.From, "to": &q.To} {
		if v := c.Query(key); v != "" {
			t, err := parseDate(v)
			if err != nil {
				return q, domain.NewValidationError(key, "expected YYYY-MM-DD")
			}
			*dst = t
		}
	}
	var err error
	if q.Page, err = queryInt(c, "page"); err != nil {
		return q, err
	}
	if q.PageSize, err = queryInt(c, "page_size"); err != nil {
		return q, err
	}
	return q, nil
}

func (h *ReservationHandler) list(c *gin.Context) {
	q, err := historyQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	page, err := h.views.History(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ReservationHandler) export(c *gin.Context) {
	q, err := historyQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	data, err := h.views.ExportHistory(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="reservations.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (h *ReservationHandler) get(c *gin.Context) {
	d, err := h.views.Reservation(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *ReservationHandler) refundQuote(c *gin.Context) {
	q, err := h.desk.RefundQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *ReservationHandler) candidateRooms(c *gin.Context) {
	occupancy, err := queryInt(c, "occupancy")
	if err != nil {
		writeError(c, err)
		return
	}
	rooms, err := h.desk.CandidateRooms(c.Request.Context(), c.Param("id"), occupancy, c.Query("roomTypeId"))
	if err != nil {
		writeError(c, err)
		return
	}
	if rooms == nil {
		rooms = []domain.Room{}
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *ReservationHandler) checkIn(c *gin.Context) {
	var req lifecycle.CheckInRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, err)
		return
	}
	req.ReservationID = c.Param("id")

	res, err := h.desk.CheckIn(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ReservationHandler) extend(c *gin.Context) {
	var body extendRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	newCheckOut, err := parseDate(body.NewCheckOut)
	if err != nil {
		writeError(c, domain.NewValidationError("checkOut", "expected YYYY-MM-DD"))
		return
	}

	res, err := h.desk.Extend(c.Request.Context(), lifecycle.ExtendRequest{
		ReservationID: c.Param("id"),
		NewCheckOut:   newCheckOut,
		RoomID:        body.RoomID,
		StayTypeID:    body.StayTypeID,
		Actor:         body.Actor,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ReservationHandler) checkOut(c *gin.Context) {
	var req lifecycle.CheckOutRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, err)
		return
	}
	req.ReservationID = c.Param("id")

	res, err := h.desk.CheckOut(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ReservationHandler) cancel(c *gin.Context) {
	var req lifecycle.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	req.ReservationID = c.Param("id")

	res, err := h.desk.Cancel(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// bindOptionalJSON binds a JSON body when one was sent. An empty body,
// chunked or not, leaves dst untouched.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
