package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/examboard/examboard-api/internal/models"
)

func filterFixture() []models.Exam {
	return []models.Exam{
		{ID: "a", Course: "CS3000", Department: "CS", Instructor: "Dr. Reyes", Room: "HUM201", Conflicts: 2},
		{ID: "b", Course: "MATH2100", Department: "MATH", Instructor: "Dr. Chen", Room: "SCI105"},
		{ID: "c", Course: "CS4500", Department: "CS", Instructor: "Dr. Adeyemi", Room: "SCI300", Conflicts: 1},
		{ID: "d", Course: "ENG1100", Department: "ENG", Instructor: "Dr. Novak", Room: "HUM110"},
	}
}

func TestFilterExamsSearch(t *testing.T) {
	exams := filterFixture()

	byCourse := FilterExams(exams, ExamFilter{Search: "cs"})
	assert.Len(t, byCourse, 2)

	byInstructor := FilterExams(exams, ExamFilter{Search: "chen"})
	assert.Len(t, byInstructor, 1)
	assert.Equal(t, "b", byInstructor[0].ID)

	byRoom := FilterExams(exams, ExamFilter{Search: "hum"})
	assert.Len(t, byRoom, 2)

	none := FilterExams(exams, ExamFilter{Search: "zzz"})
	assert.Empty(t, none)
}

func TestFilterExamsDepartment(t *testing.T) {
	exams := filterFixture()

	cs := FilterExams(exams, ExamFilter{Department: "CS"})
	assert.Len(t, cs, 2)

	// Exact match only; no substring widening.
	assert.Empty(t, FilterExams(exams, ExamFilter{Department: "C"}))
}

func TestFilterExamsConflictsOnly(t *testing.T) {
	result := FilterExams(filterFixture(), ExamFilter{ConflictsOnly: true})
	assert.Len(t, result, 2)
	for _, exam := range result {
		assert.Greater(t, exam.Conflicts, 0)
	}
}

func TestFilterExamsCompose(t *testing.T) {
	result := FilterExams(filterFixture(), ExamFilter{Search: "sci", Department: "CS", ConflictsOnly: true})
	assert.Len(t, result, 1)
	assert.Equal(t, "c", result[0].ID)
}

func TestFilterExamsDoesNotMutateSource(t *testing.T) {
	exams := filterFixture()
	_ = FilterExams(exams, ExamFilter{Search: "cs", ConflictsOnly: true})
	assert.Equal(t, filterFixture(), exams)
}
