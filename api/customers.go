package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/Domenick1991/frontdesk/internal/domain"
	"github.com/Domenick1991/frontdesk/internal/service/lifecycle"
	"github.com/Domenick1991/frontdesk/internal/service/views"
	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	desk     lifecycle.FrontDesk
	views    views.Reader
	maxBytes int64
}

func NewCustomerHandler(desk lifecycle.FrontDesk, reader views.Reader, maxDocumentBytes int64) *CustomerHandler {
	if maxDocumentBytes <= 0 {
		maxDocumentBytes = lifecycle.DefaultMaxDocumentBytes
	}
	return &CustomerHandler{desk: desk, views: reader, maxBytes: maxDocumentBytes}
}

func (h *CustomerHandler) Register(router *gin.RouterGroup) {
	router.GET("/:id", h.get)
	router.POST("/:id/document", h.uploadDocument)
}

func (h *CustomerHandler) get(c *gin.Context) {
	customer, err := h.views.Customer(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// uploadDocument takes the identification scan from the multipart field "file".
func (h *CustomerHandler) uploadDocument(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, errors.New("multipart field \"file\" is required"))
		return
	}
	if fh.Size > h.maxBytes {
		writeError(c, domain.NewValidationError("idDocument", "the file is too large"))
		return
	}

	f, err := fh.Open()
	if err != nil {
		badRequest(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxBytes+1))
	if err != nil {
		badRequest(c, err)
		return
	}

	customer, err := h.desk.AttachDocument(c.Request.Context(), c.Param("id"), fh.Filename, data)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}
