package projection

import (
	"github.com/examboard/examboard-api/internal/models"
)

// ComputeMetrics aggregates summary-card and chart figures from the canonical
// grid, the flattened assignment list and the backend summary.
//
// The unique-student figure prefers a dataset-level unique-enrollment count
// when one is present; otherwise it falls back to the summary's raw
// enrollment sum, which overstates students enrolled in several exams. The
// result flags that approximation instead of guessing.
func ComputeMetrics(rows []models.CalendarRow, complete []models.ExamAssignment, summary models.ResultSummary, dataset *models.DatasetInfo, analysis *ConflictAnalysis) models.ScheduleMetrics {
	metrics := models.ScheduleMetrics{
		TotalConflicts: summary.RealConflicts,
		RoomsUsed:      summary.NumRooms,
		SlotsUsed:      summary.SlotsUsed,
	}

	byDay := make(map[string]*models.DayDistribution, len(WeekDays))
	for _, day := range WeekDays {
		byDay[day] = &models.DayDistribution{Day: day}
	}
	for _, row := range rows {
		block := &models.BlockDistribution{Block: TimeRange(row.TimeSlot)}
		for _, cell := range row.Cells {
			metrics.TotalExams += cell.ExamCount
			block.Exams += cell.ExamCount
			dist := byDay[cell.Day]
			if dist == nil {
				continue
			}
			dist.Exams += cell.ExamCount
			for _, exam := range cell.Exams {
				dist.Students += exam.Students
			}
		}
		metrics.ExamsByBlock = append(metrics.ExamsByBlock, *block)
	}
	for _, day := range WeekDays {
		metrics.ExamsByDay = append(metrics.ExamsByDay, *byDay[day])
	}

	metrics.RoomUtilization = roomUtilization(complete)

	if summary.NumClasses > 0 {
		metrics.Efficiency = float64(metrics.TotalExams) / float64(summary.NumClasses) * 100
	}

	if dataset != nil && dataset.UniqueStudents > 0 {
		metrics.Students = dataset.UniqueStudents
	} else {
		metrics.Students = summary.NumStudents
		metrics.StudentsApproximate = true
	}

	if analysis != nil {
		metrics.BackToBackWarnings = analysis.Totals.BackToBackWarnings()
	}

	return metrics
}

// roomUtilization averages per-exam fill rates. Each exam's rate is capped at
// 100% before averaging; exams without a known positive capacity are excluded
// from the mean rather than skewing it toward 0% or infinity.
func roomUtilization(complete []models.ExamAssignment) float64 {
	var total float64
	counted := 0
	for _, exam := range complete {
		if exam.Capacity <= 0 {
			continue
		}
		rate := float64(exam.Size) / float64(exam.Capacity) * 100
		if rate > 100 {
			rate = 100
		}
		if rate < 0 {
			rate = 0
		}
		total += rate
		counted++
	}
	if counted == 0 {
		return 0
	}
	return total / float64(counted)
}
