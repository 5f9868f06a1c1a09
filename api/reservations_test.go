package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/frontdesk/internal/domain"
	"github.com/Domenick1991/frontdesk/internal/service/lifecycle"
	"github.com/Domenick1991/frontdesk/internal/service/views"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testContext(method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestReservationHandler_checkIn(t *testing.T) {
	desk := &MockFrontDesk{}
	handler := NewReservationHandler(desk, &MockViews{})

	adults := 2
	body, _ := json.Marshal(lifecycle.CheckInRequest{RoomID: "room-202", Adults: &adults})
	c, w := testContext(http.MethodPost, "/reservations/res-1001/check-in", body)
	c.Params = gin.Params{{Key: "id", Value: "res-1001"}}

	expected := domain.Reservation{ID: "res-1001", RoomID: "room-202", Status: domain.ReservationStatusCheckedIn, TotalAmount: domain.Dollars(540)}
	desk.On("CheckIn", mock.Anything, mock.MatchedBy(func(req lifecycle.CheckInRequest) bool {
		return req.ReservationID == "res-1001" && req.RoomID == "room-202" && *req.Adults == 2
	})).Return(expected, nil)

	handler.checkIn(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var got domain.Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, domain.ReservationStatusCheckedIn, got.Status)
	assert.Equal(t, domain.Dollars(540), got.TotalAmount)
	desk.AssertExpectations(t)
}

func TestReservationHandler_checkInWithoutBody(t *testing.T) {
	desk := &MockFrontDesk{}
	handler := NewReservationHandler(desk, &MockViews{})

	c, w := testContext(http.MethodPost, "/reservations/res-1001/check-in", nil)
	c.Params = gin.Params{{Key: "id", Value: "res-1001"}}
	desk.On("CheckIn", mock.Anything, lifecycle.CheckInRequest{ReservationID: "res-1001"}).
		Return(domain.Reservation{ID: "res-1001"}, nil)

	handler.checkIn(c)

	assert.Equal(t, http.StatusOK, w.Code)
	desk.AssertExpectations(t)
}

func TestReservationHandler_errorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		field  string
	}{
		{"not found", domain.NotFound("reservation", "x"), http.StatusNotFound, ""},
		{"validation", domain.NewValidationError("idNumber", "required"), http.StatusUnprocessableEntity, "idNumber"},
		{"transition", &domain.TransitionError{From: domain.ReservationStatusCheckedOut, To: domain.ReservationStatusCheckedIn}, http.StatusConflict, ""},
		{"step", fmt.Errorf("%w: refund", domain.ErrInvalidStep), http.StatusConflict, ""},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desk := &MockFrontDesk{}
			handler := NewReservationHandler(desk, &MockViews{})

			c, w := testContext(http.MethodPost, "/reservations/x/check-out", []byte(`{}`))
			c.Params = gin.Params{{Key: "id", Value: "x"}}
			desk.On("CheckOut", mock.Anything, lifecycle.CheckOutRequest{ReservationID: "x"}).Return(domain.Reservation{}, tt.err)

			handler.checkOut(c)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.field, decodeError(t, w)["field"])
		})
	}
}

func TestReservationHandler_checkOutChunkedEmptyBody(t *testing.T) {
	desk := &MockFrontDesk{}
	handler := NewReservationHandler(desk, &MockViews{})

	c, w := testContext(http.MethodPost, "/reservations/res-1002/check-out", []byte{})
	c.Request.ContentLength = -1
	c.Params = gin.Params{{Key: "id", Value: "res-1002"}}
	desk.On("CheckOut", mock.Anything, lifecycle.CheckOutRequest{ReservationID: "res-1002"}).
		Return(domain.Reservation{ID: "res-1002", Status: domain.ReservationStatusCheckedOut}, nil)

	handler.checkOut(c)

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	desk.AssertExpectations(t)
}

func TestReservationHandler_extend(t *testing.T) {
	desk := &MockFrontDesk{}
	handler := NewReservationHandler(desk, &MockViews{})

	c, w := testContext(http.MethodPost, "/reservations/res-1002/extend", []byte(`{"newCheckOut":"2026-06-12","actor":"night-desk"}`))
	c.Params = gin.Params{{Key: "id", Value: "res-1002"}}

	want := time.Date(2026, 6, 12, 0, 0, 0, 0, time.Local)
	desk.On("Extend", mock.Anything, lifecycle.ExtendRequest{ReservationID: "res-1002", NewCheckOut: want, Actor: "night-desk"}).
		Return(domain.Reservation{ID: "res-1002", CheckOut: want}, nil)

	handler.extend(c)

	assert.Equal(t, http.StatusOK, w.Code)
	desk.AssertExpectations(t)
}

func TestReservationHandler_extendBadDate(t *testing.T) {
	handler := NewReservationHandler(&MockFrontDesk{}, &MockViews{})

	c, w := testContext(http.MethodPost, "/reservations/res-1002/extend", []byte(`{"newCheckOut":"next tuesday"}`))
	c.Params = gin.Params{{Key: "id", Value: "res-1002"}}

	handler.extend(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "checkOut", decodeError(t, w)["field"])
}

func TestReservationHandler_cancel(t *testing.T) {
	desk := &MockFrontDesk{}
	handler := NewReservationHandler(desk, &MockViews{})

	c, w := testContext(http.MethodPost, "/reservations/res-1003/cancel",
		[]byte(`{"reason":"Flight canceled","refundAmount":50000,"refundMethod":"card"}`))
	c.Params = gin.Params{{Key: "id", Value: "res-1003"}}

	desk.On("Cancel", mock.Anything, mock.MatchedBy(func(req lifecycle.CancelRequest) bool {
		return req.ReservationID == "res-1003" && req.RefundAmount != nil && *req.RefundAmount == domain.Dollars(500) && req.RefundMethod == "card"
	})).Return(domain.Reservation{ID: "res-1003", Status: domain.ReservationStatusCanceled}, nil)

	handler.cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)
	desk.AssertExpectations(t)
}

func TestReservationHandler_list(t *testing.T) {
	reader := &MockViews{}
	handler := NewReservationHandler(&MockFrontDesk{}, reader)

	c, w := testContext(http.MethodGet, "/reservations?status=confirmed,canceled&from=2026-06-01&q=smith&sort=total&order=desc&page=2&page_size=5", nil)

	reader.On("History", mock.Anything, mock.MatchedBy(func(q views.HistoryQuery) bool {
		return len(q.Statuses) == 2 && q.Statuses[1] == domain.ReservationStatusCanceled &&
			q.From.Equal(time.Date(2026, 6, 1, 0, 0, 0, 0, time.Local)) && q.To.IsZero() &&
			q.Search == "smith" && q.SortBy == "total" && q.Desc && q.Page == 2 && q.PageSize == 5
	})).Return(views.HistoryPage{Rows: []views.Row{{ReservationID: "res-1"}}, Total: 6, Page: 2, PageSize: 5, Pages: 2}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var page views.HistoryPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 6, page.Total)
	reader.AssertExpectations(t)
}

func TestReservationHandler_listBadPage(t *testing.T) {
	handler := NewReservationHandler(&MockFrontDesk{}, &MockViews{})

	c, w := testContext(http.MethodGet, "/reservations?page=two", nil)
	handler.list(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "page", decodeError(t, w)["field"])
}

func TestReservationHandler_export(t *testing.T) {
	reader := &MockViews{}
	handler := NewReservationHandler(&MockFrontDesk{}, reader)

	c, w := testContext(http.MethodGet, "/reservations/export?status=checked-in", nil)
	reader.On("ExportHistory", mock.Anything, mock.Anything).Return([]byte("PK\x03\x04"), nil)

	handler.export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "reservations.xlsx")
}

func TestReservationHandler_refundQuoteAndCandidates(t *testing.T) {
	desk := &MockFrontDesk{}
	handler := NewReservationHandler(desk, &MockViews{})

	c, w := testContext(http.MethodGet, "/reservations/res-1/refund-quote", nil)
	c.Params = gin.Params{{Key: "id", Value: "res-1"}}
	desk.On("RefundQuote", mock.Anything, "res-1").Return(lifecycle.RefundQuote{ReservationID: "res-1", Percent: 50, Refundable: 25000}, nil)
	handler.refundQuote(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"refundable":25000`)

	c, w = testContext(http.MethodGet, "/reservations/res-1/candidate-rooms?occupancy=3", nil)
	c.Params = gin.Params{{Key: "id", Value: "res-1"}}
	desk.On("CandidateRooms", mock.Anything, "res-1", 3, "").Return(nil, nil)
	handler.candidateRooms(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
