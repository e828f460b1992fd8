package projection

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/examboard/examboard-api/internal/models"
)

var dayAbbrs = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// BuildRows converts the backend's day/slot calendar map into ordered grid
// rows: one row per distinct slot label, sorted by start time, each with
// exactly seven day cells. Cell conflict counts come from the classifier when
// available.
func BuildRows(calendar map[string]map[string][]models.ExamAssignment, analysis *ConflictAnalysis) []models.CalendarRow {
	slotSet := make(map[string]struct{})
	for _, slots := range calendar {
		for label := range slots {
			slotSet[label] = struct{}{}
		}
	}
	labels := make([]string, 0, len(slotSet))
	for label := range slotSet {
		labels = append(labels, label)
	}
	sort.SliceStable(labels, func(i, j int) bool {
		a := StartMinutes(TimeRange(labels[i]))
		b := StartMinutes(TimeRange(labels[j]))
		if a == b {
			return labels[i] < labels[j]
		}
		return a < b
	})

	rows := make([]models.CalendarRow, 0, len(labels))
	for _, label := range labels {
		row := models.CalendarRow{TimeSlot: label, Cells: make([]models.CalendarCell, 0, len(dayAbbrs))}
		for _, abbr := range dayAbbrs {
			assignments := calendar[abbr][label]
			cell := models.CalendarCell{
				Day:   DayName(abbr),
				Exams: make([]models.Exam, 0, len(assignments)),
			}
			for i, assignment := range assignments {
				cell.Exams = append(cell.Exams, buildExam(abbr, label, assignment, i, analysis))
			}
			cell.ExamCount = len(cell.Exams)
			if analysis != nil {
				cell.Conflicts = analysis.CellCounts[models.CellKey{Day: cell.Day, Time: TimeRange(label)}]
			}
			row.Cells = append(row.Cells, cell)
		}
		rows = append(rows, row)
	}
	return rows
}

// buildExam maps one raw assignment into a display Exam. The identifier is a
// pure function of (day, slot, CRN, position) so repeated builds of the same
// result produce identical IDs.
func buildExam(dayAbbr, slotLabel string, assignment models.ExamAssignment, position int, analysis *ConflictAnalysis) models.Exam {
	crn := assignment.CRN.String()
	course := CleanCourseCode(assignment.Course)
	conflicts := 0
	if analysis != nil {
		conflicts = analysis.CRNCounts[crn]
	}
	return models.Exam{
		ID:         fmt.Sprintf("%s-%s-%s-%d", dayAbbr, TimeRange(slotLabel), crn, position),
		Course:     course,
		CRN:        crn,
		Department: departmentOf(course),
		Instructor: assignment.Instructor,
		Students:   assignment.Size,
		Room:       assignment.Room,
		Building:   buildingOf(assignment.Room),
		Day:        DayName(dayAbbr),
		TimeSlot:   TimeRange(slotLabel),
		Conflicts:  conflicts,
	}
}

// FlattenExams lists every exam in the grid in row-major order.
func FlattenExams(rows []models.CalendarRow) []models.Exam {
	var exams []models.Exam
	for _, row := range rows {
		for _, cell := range row.Cells {
			exams = append(exams, cell.Exams...)
		}
	}
	return exams
}

// departmentOf extracts the leading alphabetic prefix of a course code,
// e.g. "CS3000" yields "CS".
func departmentOf(course string) string {
	course = strings.TrimSpace(course)
	for i, r := range course {
		if !unicode.IsLetter(r) {
			return course[:i]
		}
	}
	return course
}

// buildingOf extracts the leading alphabetic token of a room label,
// e.g. "HUM201" yields "HUM".
func buildingOf(room string) string {
	room = strings.TrimSpace(room)
	for i, r := range room {
		if !unicode.IsLetter(r) {
			return strings.TrimSpace(room[:i])
		}
	}
	return room
}
