package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/examboard/examboard-api/internal/dto"
	"github.com/examboard/examboard-api/internal/models"
	appErrors "github.com/examboard/examboard-api/pkg/errors"
	"github.com/examboard/examboard-api/pkg/export"
)

type scheduleViewReader interface {
	Exams(ctx context.Context, id string, query dto.ExamListQuery) (*dto.ExamListResponse, bool, error)
	Conflicts(ctx context.Context, id string) (*dto.ConflictReportResponse, bool, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult carries a rendered document ready for streaming.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders loaded schedule views as downloadable documents.
type ExportService struct {
	views   scheduleViewReader
	csv     csvRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
	enabled bool
}

// NewExportService constructs an ExportService.
func NewExportService(views scheduleViewReader, logger *zap.Logger, enabled bool, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{views: views, csv: csv, pdf: pdf, logger: logger, enabled: enabled}
}

// ExamsCSV renders the flattened exam list of a loaded schedule as CSV.
func (s *ExportService) ExamsCSV(ctx context.Context, id string) (*ExportResult, error) {
	if !s.enabled {
		return nil, appErrors.ErrExportDisabled
	}
	list, _, err := s.views.Exams(ctx, id, dto.ExamListQuery{})
	if err != nil {
		return nil, err
	}

	headers := []string{"Course", "CRN", "Department", "Instructor", "Room", "Day", "Time Slot", "Students", "Conflicts"}
	rows := make([]map[string]string, 0, len(list.Exams))
	for _, exam := range list.Exams {
		rows = append(rows, map[string]string{
			"Course":     exam.Course,
			"CRN":        exam.CRN,
			"Department": exam.Department,
			"Instructor": exam.Instructor,
			"Room":       exam.Room,
			"Day":        exam.Day,
			"Time Slot":  exam.TimeSlot,
			"Students":   fmt.Sprintf("%d", exam.Students),
			"Conflicts":  fmt.Sprintf("%d", exam.Conflicts),
		})
	}

	payload, err := s.csv.Render(export.Dataset{Headers: headers, Rows: rows})
	if err != nil {
		return nil, fmt.Errorf("render exam csv: %w", err)
	}
	s.logger.Info("exported exam list", zap.String("scheduleId", id), zap.Int("rows", len(rows)))
	return &ExportResult{
		Filename:    exportFilename("exams", id, "csv"),
		ContentType: "text/csv",
		Payload:     payload,
	}, nil
}

// ConflictsPDF renders the conflict report of a loaded schedule as PDF.
func (s *ExportService) ConflictsPDF(ctx context.Context, id string) (*ExportResult, error) {
	if !s.enabled {
		return nil, appErrors.ErrExportDisabled
	}
	report, _, err := s.views.Conflicts(ctx, id)
	if err != nil {
		return nil, err
	}

	headers := []string{"Kind", "Entity", "Day", "Time", "Course", "Conflicting Courses", "Count"}
	rows := make([]map[string]string, 0)
	for _, kind := range models.ConflictKinds {
		for _, row := range report.ByKind[kind] {
			rows = append(rows, map[string]string{
				"Kind":                kind.Label(),
				"Entity":              row.Entity,
				"Day":                 row.Day,
				"Time":                row.Time,
				"Course":              row.Course,
				"Conflicting Courses": strings.Join(row.ConflictingCourses, ", "),
				"Count":               fmt.Sprintf("%d", row.Count),
			})
		}
	}

	title := fmt.Sprintf("Conflict Report (%d conflicts)", report.Total)
	if report.DetailMissing {
		title += " - detail unavailable"
	}
	payload, err := s.pdf.Render(export.Dataset{Headers: headers, Rows: rows}, title)
	if err != nil {
		return nil, fmt.Errorf("render conflict pdf: %w", err)
	}
	s.logger.Info("exported conflict report", zap.String("scheduleId", id), zap.Int("rows", len(rows)))
	return &ExportResult{
		Filename:    exportFilename("conflicts", id, "pdf"),
		ContentType: "application/pdf",
		Payload:     payload,
	}, nil
}

func exportFilename(kind, id, ext string) string {
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	timestamp := time.Now().UTC().Format("20060102_150405")
	return fmt.Sprintf("%s_%s_%s.%s", kind, short, timestamp, ext)
}
