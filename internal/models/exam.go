package models

// Exam is one scheduled course-section instance as shown to the registrar.
// Values are derived fresh on every schedule load and never mutated; a
// conflict-count update produces a new Exam value.
type Exam struct {
	ID         string `json:"id"`
	Course     string `json:"course"`
	CRN        string `json:"crn"`
	Department string `json:"department"`
	Instructor string `json:"instructor"`
	Students   int    `json:"students"`
	Room       string `json:"room"`
	Building   string `json:"building"`
	Day        string `json:"day"`
	TimeSlot   string `json:"timeSlot"`
	Conflicts  int    `json:"conflicts"`
}

// CalendarCell holds the exams sharing one (day, timeslot) pair.
//
// ExamCount always equals len(Exams). Conflicts counts distinct conflict
// incidents for the cell, which is allowed to exceed ExamCount when an
// incident references exams not visible in the cell.
type CalendarCell struct {
	Day       string `json:"day"`
	Exams     []Exam `json:"exams"`
	ExamCount int    `json:"examCount"`
	Conflicts int    `json:"conflicts"`
}

// CalendarRow is one time slot with exactly seven day cells, Monday first.
type CalendarRow struct {
	TimeSlot string         `json:"timeSlot"`
	Cells    []CalendarCell `json:"cells"`
}
