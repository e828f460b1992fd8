package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/examboard/examboard-api/internal/service"
	appErrors "github.com/examboard/examboard-api/pkg/errors"
)

type fakeExportSrv struct {
	result *service.ExportResult
	err    error
	lastID string
}

func (f *fakeExportSrv) ExamsCSV(_ context.Context, id string) (*service.ExportResult, error) {
	f.lastID = id
	return f.result, f.err
}

func (f *fakeExportSrv) ConflictsPDF(_ context.Context, id string) (*service.ExportResult, error) {
	f.lastID = id
	return f.result, f.err
}

func TestExportHandlerExamsCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeExportSrv{
		result: &service.ExportResult{
			Filename:    "exams_sched-1_20260825_120000.csv",
			ContentType: "text/csv",
			Payload:     []byte("Course,CRN\nCS3000,111\n"),
		},
	}
	handler := NewExportHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/schedules/sched-1/export/exams.csv", nil)
	c.Params = gin.Params{{Key: "id", Value: "sched-1"}}

	handler.ExamsCSV(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sched-1", srv.lastID)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "exams_sched-1")
	assert.Contains(t, rec.Body.String(), "CS3000")
}

func TestExportHandlerMissingID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewExportHandler(&fakeExportSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/schedules//export/exams.csv", nil)

	handler.ExamsCSV(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportHandlerDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewExportHandler(&fakeExportSrv{err: appErrors.ErrExportDisabled})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/schedules/sched-1/export/conflicts.pdf", nil)
	c.Params = gin.Params{{Key: "id", Value: "sched-1"}}

	handler.ConflictsPDF(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
