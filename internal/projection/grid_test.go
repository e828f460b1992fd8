package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examboard/examboard-api/internal/models"
)

func sampleCalendar() map[string]map[string][]models.ExamAssignment {
	return map[string]map[string][]models.ExamAssignment{
		"Mon": {
			"0 (9:00-11:00)": {
				{CRN: "111", Course: "CS3000", Room: "HUM201", Capacity: 100, Size: 80, Instructor: "Dr. Reyes"},
				{CRN: "222", Course: "MATH2100", Room: "SCI105", Capacity: 60, Size: 55},
			},
			"2 (2:00 PM-4:00 PM)": {
				{CRN: "333", Course: "PHY1000", Room: "SCI300", Capacity: 120, Size: 90},
			},
		},
		"Wed": {
			"1 (11:30-1:30 PM)": {
				{CRN: "444", Course: "ENG1100", Room: "HUM110", Capacity: 40, Size: 38},
			},
		},
	}
}

func TestBuildRowsShapeAndOrder(t *testing.T) {
	rows := BuildRows(sampleCalendar(), nil)

	require.Len(t, rows, 3)
	assert.Equal(t, "0 (9:00-11:00)", rows[0].TimeSlot)
	assert.Equal(t, "1 (11:30-1:30 PM)", rows[1].TimeSlot)
	assert.Equal(t, "2 (2:00 PM-4:00 PM)", rows[2].TimeSlot)

	for _, row := range rows {
		require.Len(t, row.Cells, 7, "row %s", row.TimeSlot)
		assert.Equal(t, "Monday", row.Cells[0].Day)
		assert.Equal(t, "Sunday", row.Cells[6].Day)
		for _, cell := range row.Cells {
			assert.Equal(t, len(cell.Exams), cell.ExamCount)
		}
	}

	monday := rows[0].Cells[0]
	require.Len(t, monday.Exams, 2)
	assert.Equal(t, "CS3000", monday.Exams[0].Course)
	assert.Equal(t, "CS", monday.Exams[0].Department)
	assert.Equal(t, "HUM", monday.Exams[0].Building)
	assert.Equal(t, "9:00-11:00", monday.Exams[0].TimeSlot)
}

func TestBuildRowsDeterministicIDs(t *testing.T) {
	first := BuildRows(sampleCalendar(), nil)
	second := BuildRows(sampleCalendar(), nil)

	firstExams := FlattenExams(first)
	secondExams := FlattenExams(second)
	require.Equal(t, len(firstExams), len(secondExams))
	for i := range firstExams {
		assert.Equal(t, firstExams[i].ID, secondExams[i].ID)
	}
	assert.Equal(t, "Mon-9:00-11:00-111-0", firstExams[0].ID)
	assert.Equal(t, "Mon-9:00-11:00-222-1", firstExams[1].ID)
}

func TestBuildRowsAttachesCellConflicts(t *testing.T) {
	analysis := &ConflictAnalysis{
		CellCounts: map[models.CellKey]int{
			{Day: "Monday", Time: "9:00-11:00"}: 2,
		},
		CRNCounts: map[string]int{"111": 2},
	}
	rows := BuildRows(sampleCalendar(), analysis)

	monday := rows[0].Cells[0]
	assert.Equal(t, 2, monday.Conflicts)
	assert.Equal(t, 2, monday.Exams[0].Conflicts)
	assert.Zero(t, monday.Exams[1].Conflicts)

	// Other cells in the same row carry no badge.
	for _, cell := range rows[0].Cells[1:] {
		assert.Zero(t, cell.Conflicts)
	}
}

func TestBuildRowsEmptyCalendar(t *testing.T) {
	rows := BuildRows(map[string]map[string][]models.ExamAssignment{}, nil)
	assert.Empty(t, rows)
	assert.Empty(t, FlattenExams(rows))
}

func TestBuildRowsMalformedSlotLabelsSortFirst(t *testing.T) {
	calendar := map[string]map[string][]models.ExamAssignment{
		"Tue": {
			"evening session": {{CRN: "901", Course: "HIS2000"}},
			"0 (9:00-11:00)":  {{CRN: "902", Course: "ART1000"}},
		},
	}
	rows := BuildRows(calendar, nil)
	require.Len(t, rows, 2)
	assert.Equal(t, "evening session", rows[0].TimeSlot)
	assert.Equal(t, "0 (9:00-11:00)", rows[1].TimeSlot)
}

func TestDepartmentAndBuildingPrefixes(t *testing.T) {
	assert.Equal(t, "CS", departmentOf("CS3000"))
	assert.Equal(t, "MATH", departmentOf("MATH2100"))
	assert.Equal(t, "", departmentOf("3000"))
	assert.Equal(t, "", departmentOf(""))
	assert.Equal(t, "HUM", buildingOf("HUM201"))
	assert.Equal(t, "SCI", buildingOf("SCI105"))
	assert.Equal(t, "", buildingOf("201"))
}
