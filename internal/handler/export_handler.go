package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/examboard/examboard-api/internal/service"
	appErrors "github.com/examboard/examboard-api/pkg/errors"
	"github.com/examboard/examboard-api/pkg/response"
)

type exportService interface {
	ExamsCSV(ctx context.Context, id string) (*service.ExportResult, error)
	ConflictsPDF(ctx context.Context, id string) (*service.ExportResult, error)
}

// ExportHandler streams rendered schedule documents.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// ExamsCSV godoc
// @Summary Download the exam list as CSV
// @Tags Exports
// @Produce text/csv
// @Param id path string true "Schedule ID"
// @Success 200 {file} file
// @Router /schedules/{id}/export/exams.csv [get]
func (h *ExportHandler) ExamsCSV(c *gin.Context) {
	h.serve(c, func(ctx context.Context, id string) (*service.ExportResult, error) {
		return h.service.ExamsCSV(ctx, id)
	})
}

// ConflictsPDF godoc
// @Summary Download the conflict report as PDF
// @Tags Exports
// @Produce application/pdf
// @Param id path string true "Schedule ID"
// @Success 200 {file} file
// @Router /schedules/{id}/export/conflicts.pdf [get]
func (h *ExportHandler) ConflictsPDF(c *gin.Context) {
	h.serve(c, func(ctx context.Context, id string) (*service.ExportResult, error) {
		return h.service.ConflictsPDF(ctx, id)
	})
}

func (h *ExportHandler) serve(c *gin.Context, fetch func(ctx context.Context, id string) (*service.ExportResult, error)) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "schedule id is required"))
		return
	}
	result, err := fetch(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}
