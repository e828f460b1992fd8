package projection

import (
	"strings"

	"github.com/examboard/examboard-api/internal/models"
)

// ExamFilter narrows the flattened exam list. Conditions compose with AND;
// empty fields match everything.
type ExamFilter struct {
	// Search matches case-insensitively against course, instructor and
	// room; any one match passes.
	Search string
	// Department must equal the exam's department exactly when set.
	Department string
	// ConflictsOnly keeps exams with at least one conflict incident.
	ConflictsOnly bool
}

// FilterExams returns the exams passing the filter. The source slice is never
// mutated.
func FilterExams(exams []models.Exam, filter ExamFilter) []models.Exam {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	result := make([]models.Exam, 0, len(exams))
	for _, exam := range exams {
		if search != "" && !matchesSearch(exam, search) {
			continue
		}
		if filter.Department != "" && exam.Department != filter.Department {
			continue
		}
		if filter.ConflictsOnly && exam.Conflicts == 0 {
			continue
		}
		result = append(result, exam)
	}
	return result
}

func matchesSearch(exam models.Exam, search string) bool {
	return strings.Contains(strings.ToLower(exam.Course), search) ||
		strings.Contains(strings.ToLower(exam.Instructor), search) ||
		strings.Contains(strings.ToLower(exam.Room), search)
}
