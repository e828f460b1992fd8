package models

// ConflictKind is the closed set of conflict categories. The loose wire
// `type` field is mapped onto it before any classification logic runs.
type ConflictKind string

const (
	KindStudentDoubleBooking    ConflictKind = "student_double_booking"
	KindInstructorDoubleBooking ConflictKind = "instructor_double_booking"
	KindMaxExamsPerDay          ConflictKind = "max_exams_per_day"
	KindBackToBackStudent       ConflictKind = "back_to_back_student"
	KindBackToBackInstructor    ConflictKind = "back_to_back_instructor"
	KindLargeCourseLate         ConflictKind = "large_course_late"
	KindUncategorized           ConflictKind = "uncategorized"
)

// ConflictKinds lists every kind in report display order.
var ConflictKinds = []ConflictKind{
	KindStudentDoubleBooking,
	KindInstructorDoubleBooking,
	KindMaxExamsPerDay,
	KindBackToBackStudent,
	KindBackToBackInstructor,
	KindLargeCourseLate,
	KindUncategorized,
}

// UnknownValue marks fields the backend omitted. Comparisons against it never
// falsely match the way empty-string comparisons would.
const UnknownValue = "Unknown"

// Label returns the human-readable name used in rendered reports.
func (k ConflictKind) Label() string {
	switch k {
	case KindStudentDoubleBooking:
		return "Student Double Booking"
	case KindInstructorDoubleBooking:
		return "Instructor Double Booking"
	case KindMaxExamsPerDay:
		return "Daily Exam Limit Exceeded"
	case KindBackToBackStudent:
		return "Back-to-Back (Student)"
	case KindBackToBackInstructor:
		return "Back-to-Back (Instructor)"
	case KindLargeCourseLate:
		return "Large Course Scheduled Late"
	default:
		return "Uncategorized"
	}
}

// Soft reports whether the kind is an advisory warning rather than a hard
// scheduling violation. Soft kinds stay out of hard totals and cell badges.
func (k ConflictKind) Soft() bool {
	return k == KindBackToBackStudent || k == KindBackToBackInstructor
}

// ConflictRow is one normalized conflict incident ready for display.
type ConflictRow struct {
	Kind               ConflictKind `json:"kind"`
	Entity             string       `json:"entity"`
	Day                string       `json:"day"`
	Time               string       `json:"time"`
	Course             string       `json:"course"`
	CRN                string       `json:"crn"`
	ConflictingCourses []string     `json:"conflictingCourses,omitempty"`
	ConflictingCRNs    []string     `json:"conflictingCrns,omitempty"`
	// Count is 1 for breakdown rows; the synthesized uncategorized row
	// carries the summary total instead.
	Count int `json:"count"`
}

// CellKey addresses one calendar cell by display vocabulary.
type CellKey struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

// ConflictTotals are the six headline conflict metrics.
type ConflictTotals struct {
	StudentDoubleBookings    int `json:"studentDoubleBookings"`
	InstructorDoubleBookings int `json:"instructorDoubleBookings"`
	StudentsOverDailyLimit   int `json:"studentsOverDailyLimit"`
	StudentsBackToBack       int `json:"studentsBackToBack"`
	InstructorsBackToBack    int `json:"instructorsBackToBack"`
	LargeCoursesLate         int `json:"largeCoursesLate"`
}

// BackToBackWarnings sums the soft warning counters.
func (t ConflictTotals) BackToBackWarnings() int {
	return t.StudentsBackToBack + t.InstructorsBackToBack
}

// ScheduleMetrics aggregates the headline numbers for summary cards.
type ScheduleMetrics struct {
	TotalExams         int                 `json:"totalExams"`
	TotalConflicts     int                 `json:"totalConflicts"`
	BackToBackWarnings int                 `json:"backToBackWarnings"`
	RoomsUsed          int                 `json:"roomsUsed"`
	SlotsUsed          int                 `json:"slotsUsed"`
	Students           int                 `json:"students"`
	RoomUtilization    float64             `json:"roomUtilization"`
	Efficiency         float64             `json:"efficiency"`
	ExamsByDay         []DayDistribution   `json:"examsByDay"`
	ExamsByBlock       []BlockDistribution `json:"examsByBlock"`
	// StudentsApproximate flags that Students came from the summary's
	// enrollment sum rather than a dataset-level unique count.
	StudentsApproximate bool `json:"studentsApproximate"`
}

// DayDistribution is one bar of the per-day chart.
type DayDistribution struct {
	Day      string `json:"day"`
	Exams    int    `json:"exams"`
	Students int    `json:"students"`
}

// BlockDistribution is one bar of the per-time-block chart.
type BlockDistribution struct {
	Block string `json:"block"`
	Exams int    `json:"exams"`
}
