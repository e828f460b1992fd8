package projection

import (
	"sort"

	"github.com/examboard/examboard-api/internal/models"
)

// DensityThresholds are the four quartile cut points over non-zero cell exam
// counts. They adapt the heat map to each schedule's own density distribution
// instead of a fixed absolute scale.
type DensityThresholds struct {
	Q1  int `json:"q1"`
	Q2  int `json:"q2"`
	Q3  int `json:"q3"`
	Max int `json:"max"`
}

// CellCounts flattens per-cell exam counts across the grid.
func CellCounts(rows []models.CalendarRow) []int {
	var counts []int
	for _, row := range rows {
		for _, cell := range row.Cells {
			counts = append(counts, cell.ExamCount)
		}
	}
	return counts
}

// ComputeThresholds derives the 25th/50th/75th/100th percentile cut points of
// the non-zero counts. With no non-zero counts every cut point collapses to
// zero.
func ComputeThresholds(counts []int) DensityThresholds {
	nonzero := make([]int, 0, len(counts))
	for _, count := range counts {
		if count > 0 {
			nonzero = append(nonzero, count)
		}
	}
	if len(nonzero) == 0 {
		return DensityThresholds{}
	}
	sort.Ints(nonzero)
	return DensityThresholds{
		Q1:  percentile(nonzero, 25),
		Q2:  percentile(nonzero, 50),
		Q3:  percentile(nonzero, 75),
		Max: nonzero[len(nonzero)-1],
	}
}

// Level buckets a cell count into a 0-4 heat level. Level 0 is reserved for
// empty cells and level 4 for anything above the 75th-percentile cut point.
// Level is monotonic in count for a fixed set of thresholds.
func (t DensityThresholds) Level(count int) int {
	switch {
	case count <= 0:
		return 0
	case count <= t.Q1:
		return 1
	case count <= t.Q2:
		return 2
	case count <= t.Q3:
		return 3
	default:
		return 4
	}
}

// percentile returns the nearest-rank percentile of a sorted slice.
func percentile(sorted []int, p int) int {
	if len(sorted) == 0 {
		return 0
	}
	rank := (p*len(sorted) + 99) / 100
	if rank < 1 {
		rank = 1
	}
	if rank > len(sorted) {
		rank = len(sorted)
	}
	return sorted[rank-1]
}
