package dto

import (
	"time"

	"github.com/examboard/examboard-api/internal/models"
	"github.com/examboard/examboard-api/internal/projection"
)

// LoadScheduleResponse acknowledges an ingested schedule result.
type LoadScheduleResponse struct {
	ScheduleID    string                 `json:"scheduleId"`
	LoadedAt      time.Time              `json:"loadedAt"`
	ExpiresAt     time.Time              `json:"expiresAt"`
	Metrics       models.ScheduleMetrics `json:"metrics"`
	DetailMissing bool                   `json:"detailMissing"`
}

// GridResponse carries the calendar grid for one loaded schedule.
type GridResponse struct {
	ScheduleID string               `json:"scheduleId"`
	Rows       []models.CalendarRow `json:"rows"`
}

// DensityCell is one heat-map cell with its bucketed level.
type DensityCell struct {
	Day      string `json:"day"`
	TimeSlot string `json:"timeSlot"`
	Count    int    `json:"count"`
	Level    int    `json:"level"`
}

// DensityResponse carries the data-driven heat-map buckets.
type DensityResponse struct {
	ScheduleID string                       `json:"scheduleId"`
	Thresholds projection.DensityThresholds `json:"thresholds"`
	Cells      []DensityCell                `json:"cells"`
}

// StatsResponse carries the aggregate metrics for summary cards.
type StatsResponse struct {
	ScheduleID string                 `json:"scheduleId"`
	Metrics    models.ScheduleMetrics `json:"metrics"`
}

// ConflictReportResponse carries the per-kind conflict tables. DetailMissing
// signals that the total is authoritative but row detail is unavailable.
type ConflictReportResponse struct {
	ScheduleID    string                                       `json:"scheduleId"`
	Total         int                                          `json:"total"`
	ByKind        map[models.ConflictKind][]models.ConflictRow `json:"byKind"`
	Totals        models.ConflictTotals                        `json:"totals"`
	DetailMissing bool                                         `json:"detailMissing"`
}

// ExamListQuery filters the flattened exam list.
type ExamListQuery struct {
	Search        string `form:"search"`
	Department    string `form:"department"`
	ConflictsOnly bool   `form:"conflictsOnly"`
}

// ExamListResponse carries the (optionally filtered) flattened exam list.
type ExamListResponse struct {
	ScheduleID string        `json:"scheduleId"`
	Exams      []models.Exam `json:"exams"`
	Total      int           `json:"total"`
}
