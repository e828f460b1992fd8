package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examboard/examboard-api/internal/dto"
	"github.com/examboard/examboard-api/internal/models"
	appErrors "github.com/examboard/examboard-api/pkg/errors"
)

type fakeScheduleSrv struct {
	loadResp      *dto.LoadScheduleResponse
	loadErr       error
	gridResp      *dto.GridResponse
	gridHit       bool
	gridErr       error
	statsResp     *dto.StatsResponse
	examsResp     *dto.ExamListResponse
	dropErr       error
	lastQuery     dto.ExamListQuery
	lastDroppedID string
}

func (f *fakeScheduleSrv) Load(context.Context, models.ScheduleResult) (*dto.LoadScheduleResponse, error) {
	return f.loadResp, f.loadErr
}

func (f *fakeScheduleSrv) Grid(context.Context, string) (*dto.GridResponse, bool, error) {
	return f.gridResp, f.gridHit, f.gridErr
}

func (f *fakeScheduleSrv) Density(context.Context, string) (*dto.DensityResponse, bool, error) {
	return nil, false, nil
}

func (f *fakeScheduleSrv) Stats(context.Context, string) (*dto.StatsResponse, bool, error) {
	return f.statsResp, false, nil
}

func (f *fakeScheduleSrv) Conflicts(context.Context, string) (*dto.ConflictReportResponse, bool, error) {
	return nil, false, nil
}

func (f *fakeScheduleSrv) Exams(_ context.Context, _ string, query dto.ExamListQuery) (*dto.ExamListResponse, bool, error) {
	f.lastQuery = query
	return f.examsResp, false, nil
}

func (f *fakeScheduleSrv) Drop(_ context.Context, id string) error {
	f.lastDroppedID = id
	return f.dropErr
}

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Error map[string]interface{} `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func TestScheduleHandlerLoadSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewScheduleHandler(&fakeScheduleSrv{
		loadResp: &dto.LoadScheduleResponse{ScheduleID: "sched-1"},
	}, 0)

	body := `{"schedule":{"calendar":{},"complete":[]},"conflicts":{"total":0,"breakdown":[]},"summary":{"num_classes":0}}`
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/schedules", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Load(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "sched-1", envelope.Data["scheduleId"])
}

func TestScheduleHandlerLoadRejectsMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewScheduleHandler(&fakeScheduleSrv{}, 0)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/schedules", strings.NewReader("{not json"))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Load(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScheduleHandlerLoadRejectsOversizedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewScheduleHandler(&fakeScheduleSrv{}, 16)

	body := `{"schedule":{"calendar":{},"complete":[]},"summary":{}}`
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/schedules", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Load(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestScheduleHandlerGridSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewScheduleHandler(&fakeScheduleSrv{
		gridResp: &dto.GridResponse{ScheduleID: "sched-1"},
		gridHit:  true,
	}, 0)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/schedules/sched-1/grid", nil)
	c.Params = gin.Params{{Key: "id", Value: "sched-1"}}

	handler.Grid(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "sched-1", envelope.Data["scheduleId"])
	assert.Equal(t, true, envelope.Meta["cache_hit"])
	assert.Contains(t, envelope.Meta, "processing_time_ms")
}

func TestScheduleHandlerGridMissingID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewScheduleHandler(&fakeScheduleSrv{}, 0)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/schedules//grid", nil)

	handler.Grid(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScheduleHandlerGridExpired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewScheduleHandler(&fakeScheduleSrv{
		gridErr: appErrors.Clone(appErrors.ErrResultExpired, "schedule result sched-1 has expired"),
	}, 0)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/schedules/sched-1/grid", nil)
	c.Params = gin.Params{{Key: "id", Value: "sched-1"}}

	handler.Grid(c)

	assert.Equal(t, http.StatusGone, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "RESULT_EXPIRED", envelope.Error["code"])
}

func TestScheduleHandlerExamsBindsQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeScheduleSrv{
		examsResp: &dto.ExamListResponse{ScheduleID: "sched-1", Total: 0},
	}
	handler := NewScheduleHandler(service, 0)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/schedules/sched-1/exams?search=cs&department=CS&conflictsOnly=true", nil)
	c.Params = gin.Params{{Key: "id", Value: "sched-1"}}

	handler.Exams(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cs", service.lastQuery.Search)
	assert.Equal(t, "CS", service.lastQuery.Department)
	assert.True(t, service.lastQuery.ConflictsOnly)
}

func TestScheduleHandlerDrop(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeScheduleSrv{}
	handler := NewScheduleHandler(service, 0)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/schedules/sched-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "sched-1"}}

	handler.Drop(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "sched-1", service.lastDroppedID)
}

func TestScheduleHandlerDropNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewScheduleHandler(&fakeScheduleSrv{
		dropErr: appErrors.Clone(appErrors.ErrNotFound, "schedule result sched-1 not found"),
	}, 0)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/schedules/sched-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "sched-1"}}

	handler.Drop(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
