package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/examboard/examboard-api/internal/models"
)

func TestComputeThresholds(t *testing.T) {
	thresholds := ComputeThresholds([]int{0, 0, 1, 2, 3, 4, 0})
	assert.Equal(t, 1, thresholds.Q1)
	assert.Equal(t, 2, thresholds.Q2)
	assert.Equal(t, 3, thresholds.Q3)
	assert.Equal(t, 4, thresholds.Max)
}

func TestComputeThresholdsAllZero(t *testing.T) {
	assert.Equal(t, DensityThresholds{}, ComputeThresholds([]int{0, 0, 0}))
	assert.Equal(t, DensityThresholds{}, ComputeThresholds(nil))
}

func TestComputeThresholdsSingleValue(t *testing.T) {
	thresholds := ComputeThresholds([]int{0, 5})
	assert.Equal(t, 5, thresholds.Q1)
	assert.Equal(t, 5, thresholds.Q2)
	assert.Equal(t, 5, thresholds.Q3)
	assert.Equal(t, 5, thresholds.Max)
}

func TestLevelAssignment(t *testing.T) {
	thresholds := DensityThresholds{Q1: 2, Q2: 4, Q3: 6, Max: 10}
	assert.Equal(t, 0, thresholds.Level(0))
	assert.Equal(t, 1, thresholds.Level(1))
	assert.Equal(t, 1, thresholds.Level(2))
	assert.Equal(t, 2, thresholds.Level(3))
	assert.Equal(t, 2, thresholds.Level(4))
	assert.Equal(t, 3, thresholds.Level(6))
	assert.Equal(t, 4, thresholds.Level(7))
	assert.Equal(t, 4, thresholds.Level(100))
}

func TestLevelMonotonic(t *testing.T) {
	counts := []int{0, 1, 1, 2, 3, 5, 8, 13}
	thresholds := ComputeThresholds(counts)
	for i := 0; i < 50; i++ {
		assert.LessOrEqual(t, thresholds.Level(i), thresholds.Level(i+1), "count %d", i)
	}
}

func TestCellCountsFlattensGrid(t *testing.T) {
	rows := []models.CalendarRow{
		{Cells: []models.CalendarCell{{ExamCount: 2}, {ExamCount: 0}, {ExamCount: 1}}},
		{Cells: []models.CalendarCell{{ExamCount: 3}}},
	}
	assert.Equal(t, []int{2, 0, 1, 3}, CellCounts(rows))
}
