package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/examboard/examboard-api/internal/dto"
	"github.com/examboard/examboard-api/internal/models"
	appErrors "github.com/examboard/examboard-api/pkg/errors"
)

type fakeViewReader struct {
	exams     *dto.ExamListResponse
	conflicts *dto.ConflictReportResponse
	err       error
}

func (f *fakeViewReader) Exams(_ context.Context, _ string, _ dto.ExamListQuery) (*dto.ExamListResponse, bool, error) {
	return f.exams, false, f.err
}

func (f *fakeViewReader) Conflicts(_ context.Context, _ string) (*dto.ConflictReportResponse, bool, error) {
	return f.conflicts, false, f.err
}

func TestExportServiceExamsCSV(t *testing.T) {
	views := &fakeViewReader{
		exams: &dto.ExamListResponse{
			ScheduleID: "sched-1",
			Exams: []models.Exam{
				{Course: "CS3000", CRN: "111", Department: "CS", Instructor: "Dr. Reyes", Room: "HUM201", Day: "Monday", TimeSlot: "9:00-11:00", Students: 80, Conflicts: 2},
				{Course: "MATH2100", CRN: "222", Department: "MATH", Room: "SCI105", Day: "Monday", TimeSlot: "9:00-11:00", Students: 55},
			},
			Total: 2,
		},
	}
	svc := NewExportService(views, zap.NewNop(), true, nil, nil)

	result, err := svc.ExamsCSV(context.Background(), "sched-1")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasPrefix(result.Filename, "exams_sched-1_"))
	assert.True(t, strings.HasSuffix(result.Filename, ".csv"))

	body := string(result.Payload)
	assert.Contains(t, body, "Course")
	assert.Contains(t, body, "CS3000")
	assert.Contains(t, body, "MATH2100")
	assert.Contains(t, body, "Dr. Reyes")
}

func TestExportServiceConflictsPDF(t *testing.T) {
	views := &fakeViewReader{
		conflicts: &dto.ConflictReportResponse{
			ScheduleID: "sched-1",
			Total:      2,
			ByKind: map[models.ConflictKind][]models.ConflictRow{
				models.KindStudentDoubleBooking: {
					{Kind: models.KindStudentDoubleBooking, Entity: "s-1", Day: "Monday", Time: "9:00-11:00", Course: "CS3000", ConflictingCourses: []string{"MATH2100"}, Count: 1},
				},
				models.KindBackToBackStudent: {
					{Kind: models.KindBackToBackStudent, Entity: "s-2", Day: "Tuesday", Time: "11:30-1:30", Course: "PHY1000", Count: 1},
				},
			},
		},
	}
	svc := NewExportService(views, zap.NewNop(), true, nil, nil)

	result, err := svc.ConflictsPDF(context.Background(), "sched-1")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasSuffix(result.Filename, ".pdf"))
	assert.NotEmpty(t, result.Payload)
	assert.Equal(t, "%PDF", string(result.Payload[:4]))
}

func TestExportServiceDisabled(t *testing.T) {
	svc := NewExportService(&fakeViewReader{}, zap.NewNop(), false, nil, nil)

	_, err := svc.ExamsCSV(context.Background(), "sched-1")
	var typed *appErrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, appErrors.ErrExportDisabled.Code, typed.Code)

	_, err = svc.ConflictsPDF(context.Background(), "sched-1")
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, appErrors.ErrExportDisabled.Code, typed.Code)
}

func TestExportServicePropagatesViewErrors(t *testing.T) {
	views := &fakeViewReader{err: appErrors.Clone(appErrors.ErrNotFound, "schedule result missing not found")}
	svc := NewExportService(views, zap.NewNop(), true, nil, nil)

	_, err := svc.ExamsCSV(context.Background(), "missing")
	var typed *appErrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, appErrors.ErrNotFound.Code, typed.Code)
}
