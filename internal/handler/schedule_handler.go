package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/examboard/examboard-api/internal/dto"
	"github.com/examboard/examboard-api/internal/middleware"
	"github.com/examboard/examboard-api/internal/models"
	appErrors "github.com/examboard/examboard-api/pkg/errors"
	"github.com/examboard/examboard-api/pkg/response"
)

type scheduleService interface {
	Load(ctx context.Context, payload models.ScheduleResult) (*dto.LoadScheduleResponse, error)
	Grid(ctx context.Context, id string) (*dto.GridResponse, bool, error)
	Density(ctx context.Context, id string) (*dto.DensityResponse, bool, error)
	Stats(ctx context.Context, id string) (*dto.StatsResponse, bool, error)
	Conflicts(ctx context.Context, id string) (*dto.ConflictReportResponse, bool, error)
	Exams(ctx context.Context, id string, query dto.ExamListQuery) (*dto.ExamListResponse, bool, error)
	Drop(ctx context.Context, id string) error
}

// ScheduleHandler wires the schedule projection service to HTTP endpoints.
type ScheduleHandler struct {
	service         scheduleService
	maxPayloadBytes int64
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(service scheduleService, maxPayloadBytes int64) *ScheduleHandler {
	return &ScheduleHandler{service: service, maxPayloadBytes: maxPayloadBytes}
}

// Load godoc
// @Summary Load a backend schedule result for review
// @Tags Schedules
// @Accept json
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /schedules [post]
func (h *ScheduleHandler) Load(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	if h.maxPayloadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxPayloadBytes)
	}
	var payload models.ScheduleResult
	if err := c.ShouldBindJSON(&payload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, appErrors.ErrPayloadTooBig)
			return
		}
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule result payload"))
		return
	}
	resp, err := h.service.Load(c.Request.Context(), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}

// Grid godoc
// @Summary Weekly calendar grid for a loaded schedule
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id}/grid [get]
func (h *ScheduleHandler) Grid(c *gin.Context) {
	h.serveView(c, func(ctx context.Context, id string) (interface{}, bool, error) {
		return h.service.Grid(ctx, id)
	})
}

// Density godoc
// @Summary Heat-map density levels for a loaded schedule
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id}/density [get]
func (h *ScheduleHandler) Density(c *gin.Context) {
	h.serveView(c, func(ctx context.Context, id string) (interface{}, bool, error) {
		return h.service.Density(ctx, id)
	})
}

// Stats godoc
// @Summary Aggregate metrics for a loaded schedule
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id}/stats [get]
func (h *ScheduleHandler) Stats(c *gin.Context) {
	h.serveView(c, func(ctx context.Context, id string) (interface{}, bool, error) {
		return h.service.Stats(ctx, id)
	})
}

// Conflicts godoc
// @Summary Categorised conflict report for a loaded schedule
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id}/conflicts [get]
func (h *ScheduleHandler) Conflicts(c *gin.Context) {
	h.serveView(c, func(ctx context.Context, id string) (interface{}, bool, error) {
		return h.service.Conflicts(ctx, id)
	})
}

// Exams godoc
// @Summary Filtered flattened exam list for a loaded schedule
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Param search query string false "Substring match on course, instructor or room"
// @Param department query string false "Exact department code"
// @Param conflictsOnly query bool false "Only exams with conflicts"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id}/exams [get]
func (h *ScheduleHandler) Exams(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "schedule id is required"))
		return
	}
	var query dto.ExamListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exam list query"))
		return
	}
	start := time.Now()
	list, cacheHit, err := h.service.Exams(c.Request.Context(), id, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, list, nil, meta)
}

// Drop godoc
// @Summary Discard a loaded schedule result
// @Tags Schedules
// @Param id path string true "Schedule ID"
// @Success 204
// @Router /schedules/{id} [delete]
func (h *ScheduleHandler) Drop(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "schedule id is required"))
		return
	}
	if err := h.service.Drop(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *ScheduleHandler) serveView(c *gin.Context, fetch func(ctx context.Context, id string) (interface{}, bool, error)) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "schedule id is required"))
		return
	}
	start := time.Now()
	view, cacheHit, err := fetch(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, view, nil, meta)
}
