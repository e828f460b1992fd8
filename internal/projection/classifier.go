package projection

import (
	"regexp"
	"strings"

	"github.com/examboard/examboard-api/internal/models"
)

// ConflictAnalysis is the classifier's full output: per-kind tables, per-cell
// deduplicated counts, per-CRN counts for exam badges, headline totals and a
// data-quality flag for summary/breakdown disagreement.
type ConflictAnalysis struct {
	ByKind        map[models.ConflictKind][]models.ConflictRow `json:"byKind"`
	CellCounts    map[models.CellKey]int                       `json:"-"`
	CRNCounts     map[string]int                               `json:"-"`
	Totals        models.ConflictTotals                        `json:"totals"`
	DetailMissing bool                                         `json:"detailMissing"`
}

// HardConflictRows counts normalized hard rows across all kinds.
func (a *ConflictAnalysis) HardConflictRows() int {
	count := 0
	for kind, rows := range a.ByKind {
		if kind.Soft() {
			continue
		}
		count += len(rows)
	}
	return count
}

// Classify normalizes the raw conflict breakdown into display tables and
// counts. The flattened exam list resolves CRNs to course names and, when the
// breakdown is missing entirely, locates the cells holding invalid exams.
func Classify(breakdown []models.ConflictRecord, complete []models.ExamAssignment, summary models.ResultSummary) *ConflictAnalysis {
	analysis := &ConflictAnalysis{
		ByKind:     make(map[models.ConflictKind][]models.ConflictRow),
		CellCounts: make(map[models.CellKey]int),
		CRNCounts:  make(map[string]int),
	}

	courseByCRN := make(map[string]string, len(complete))
	for _, exam := range complete {
		crn := exam.CRN.String()
		if crn != "" {
			courseByCRN[crn] = CleanCourseCode(exam.Course)
		}
	}

	for _, record := range breakdown {
		kind := classifyKind(record)
		row := normalizeRecord(record, kind, courseByCRN)
		analysis.ByKind[kind] = append(analysis.ByKind[kind], row)
		tally(&analysis.Totals, kind)

		if kind.Soft() {
			continue
		}
		if row.Day != models.UnknownValue && row.Time != models.UnknownValue {
			analysis.CellCounts[models.CellKey{Day: row.Day, Time: row.Time}]++
		}
		if row.CRN != models.UnknownValue {
			analysis.CRNCounts[row.CRN]++
		}
		for _, crn := range row.ConflictingCRNs {
			if crn != models.UnknownValue {
				analysis.CRNCounts[crn]++
			}
		}
	}

	// The summary is authoritative: when it reports hard conflicts the
	// breakdown failed to describe, surface one uncategorized bucket and
	// locate the affected cells through the per-exam validity flags.
	if analysis.HardConflictRows() == 0 && summary.RealConflicts > 0 {
		analysis.DetailMissing = true
		analysis.ByKind[models.KindUncategorized] = []models.ConflictRow{{
			Kind:   models.KindUncategorized,
			Entity: models.UnknownValue,
			Day:    models.UnknownValue,
			Time:   models.UnknownValue,
			Course: models.UnknownValue,
			CRN:    models.UnknownValue,
			Count:  summary.RealConflicts,
		}}
		for _, exam := range complete {
			if exam.IsValid() {
				continue
			}
			key := models.CellKey{Day: DayName(exam.Day), Time: TimeRange(exam.Block)}
			analysis.CellCounts[key]++
			if crn := exam.CRN.String(); crn != "" {
				analysis.CRNCounts[crn]++
			}
		}
	}

	return analysis
}

func classifyKind(record models.ConflictRecord) models.ConflictKind {
	switch strings.ToLower(strings.TrimSpace(record.Type)) {
	case "student_double_booking", "double_booking", "student_conflict":
		return models.KindStudentDoubleBooking
	case "instructor_double_booking", "instructor_conflict":
		return models.KindInstructorDoubleBooking
	case "max_exams_per_day", "exceeds_daily_limit", "daily_limit":
		return models.KindMaxExamsPerDay
	case "back_to_back_student":
		return models.KindBackToBackStudent
	case "back_to_back_instructor":
		return models.KindBackToBackInstructor
	case "back_to_back":
		// Plain back_to_back records carry no kind-specific suffix; the
		// populated entity fields disambiguate student vs instructor.
		if record.Student == "" && (record.Instructor != "" || record.InstructorName != "") {
			return models.KindBackToBackInstructor
		}
		return models.KindBackToBackStudent
	case "large_course_late", "large_course_not_early", "large_course":
		return models.KindLargeCourseLate
	default:
		return models.KindUncategorized
	}
}

func normalizeRecord(record models.ConflictRecord, kind models.ConflictKind, courseByCRN map[string]string) models.ConflictRow {
	row := models.ConflictRow{
		Kind:   kind,
		Entity: resolveEntity(record, kind),
		Day:    valueOrUnknown(DayName(record.Day)),
		Time:   valueOrUnknown(TimeRange(record.Time)),
		Course: valueOrUnknown(CleanCourseCode(record.Course)),
		CRN:    valueOrUnknown(record.CRN.String()),
		Count:  1,
	}

	crns := collectValues(record.ConflictingCRNs, record.ConflictingCRN.String())
	courses := collectValues(record.ConflictingCourses, record.ConflictingCourse)
	for i, course := range courses {
		courses[i] = CleanCourseCode(course)
	}

	// When only CRNs arrived, resolve them to course names via the exam
	// list; an unresolvable CRN stays visible as its raw value.
	if len(courses) == 0 && len(crns) > 0 {
		courses = make([]string, len(crns))
		for i, crn := range crns {
			if name, ok := courseByCRN[crn]; ok && name != "" {
				courses[i] = name
			} else {
				courses[i] = crn
			}
		}
	}

	// Parallel lists of unequal length are padded, never index-misaligned.
	for len(courses) < len(crns) {
		courses = append(courses, models.UnknownValue)
	}
	for len(crns) < len(courses) {
		crns = append(crns, models.UnknownValue)
	}

	row.ConflictingCourses = courses
	row.ConflictingCRNs = crns
	return row
}

// resolveEntity picks the affected entity with priority student, instructor,
// generic entity, unknown. Instructor-kind records prefer the display name
// over a bare identifier.
func resolveEntity(record models.ConflictRecord, kind models.ConflictKind) string {
	if kind == models.KindInstructorDoubleBooking || kind == models.KindBackToBackInstructor {
		if record.InstructorName != "" {
			return record.InstructorName
		}
		if record.Instructor != "" {
			return record.Instructor.String()
		}
	}
	if record.Student != "" {
		return record.Student.String()
	}
	if record.InstructorName != "" {
		return record.InstructorName
	}
	if record.Instructor != "" {
		return record.Instructor.String()
	}
	if record.Entity != "" {
		return record.Entity.String()
	}
	return models.UnknownValue
}

func tally(totals *models.ConflictTotals, kind models.ConflictKind) {
	switch kind {
	case models.KindStudentDoubleBooking:
		totals.StudentDoubleBookings++
	case models.KindInstructorDoubleBooking:
		totals.InstructorDoubleBookings++
	case models.KindMaxExamsPerDay:
		totals.StudentsOverDailyLimit++
	case models.KindBackToBackStudent:
		totals.StudentsBackToBack++
	case models.KindBackToBackInstructor:
		totals.InstructorsBackToBack++
	case models.KindLargeCourseLate:
		totals.LargeCoursesLate++
	}
}

func collectValues(list []string, scalar string) []string {
	result := make([]string, 0, len(list)+1)
	for _, item := range list {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	scalar = strings.TrimSpace(scalar)
	if scalar != "" && !contains(result, scalar) {
		result = append(result, scalar)
	}
	return result
}

func contains(items []string, value string) bool {
	for _, item := range items {
		if item == value {
			return true
		}
	}
	return false
}

func valueOrUnknown(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return models.UnknownValue
	}
	return value
}

var (
	courseRefRe  = regexp.MustCompile(`course_ref\s+(\S+)`)
	courseMetaRe = regexp.MustCompile(`^(\S+)\s+Name:`)
)

// CleanCourseCode strips solver debug artifacts from a course field, e.g.
// "course_ref CS3000 Name: 4, dtype: object" becomes "CS3000".
func CleanCourseCode(raw string) string {
	raw = strings.TrimSpace(raw)
	if m := courseRefRe.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if m := courseMetaRe.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return raw
}
