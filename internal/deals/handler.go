package deals

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"dealdesk-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches deal routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/deals", h.submit)
	rg.GET("/deals/:id", h.get)
}

func (h *Handler) submit(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize)

	dealID := c.PostForm("deal_id")
	if strings.TrimSpace(dealID) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "deal_id is required", nil)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	deal, err := h.Svc.Submit(c.Request.Context(), dealID, fileHeader.Filename, content)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrConflict):
			respond.Error(c, http.StatusConflict, "conflict", "deal id already exists", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit deal", nil)
		}
		return
	}

	c.Set("dealId", deal.ID)
	respond.JSON(c, http.StatusAccepted, toSubmitResponse(deal))
}

func (h *Handler) get(c *gin.Context) {
	dealID := c.Param("id")
	c.Set("dealId", dealID)

	sinceEventID := 0
	if v := c.Query("since_event_id"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "since_event_id must be a non-negative integer", nil)
			return
		}
		sinceEventID = parsed
	}

	deal, log, err := h.Svc.Get(c.Request.Context(), dealID, sinceEventID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "deal not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch deal", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(deal, log))
}
