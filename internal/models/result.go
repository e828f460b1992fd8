package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ScheduleResult is the raw payload delivered by the scheduling backend once
// an exam timetable has been computed. It is decoded tolerantly: the solver
// emits numeric-or-string identifiers and scalar-or-array conflict fields
// depending on conflict type, so the loose spots are absorbed here before any
// projection logic runs.
type ScheduleResult struct {
	Schedule  SchedulePayload `json:"schedule"`
	Conflicts ConflictPayload `json:"conflicts"`
	Summary   ResultSummary   `json:"summary"`
	Dataset   *DatasetInfo    `json:"dataset,omitempty"`
}

// SchedulePayload carries the calendar grid and the flattened assignment list.
type SchedulePayload struct {
	// Calendar is keyed by three-letter day abbreviation, then by time-slot
	// label (e.g. "0 (9:00-11:00)").
	Calendar map[string]map[string][]ExamAssignment `json:"calendar"`
	// Complete repeats every assignment with explicit Day/Block fields.
	Complete []ExamAssignment `json:"complete"`
}

// ExamAssignment is one scheduled section as reported by the backend.
type ExamAssignment struct {
	CRN        FlexString `json:"CRN"`
	Course     string     `json:"Course"`
	Room       string     `json:"Room"`
	Capacity   int        `json:"Capacity"`
	Size       int        `json:"Size"`
	Valid      *bool      `json:"Valid,omitempty"`
	Instructor string     `json:"Instructor,omitempty"`
	Day        string     `json:"Day,omitempty"`
	Block      string     `json:"Block,omitempty"`
}

// IsValid treats a missing Valid flag as valid.
func (a ExamAssignment) IsValid() bool {
	return a.Valid == nil || *a.Valid
}

// ConflictPayload holds the aggregate count and the detailed breakdown.
type ConflictPayload struct {
	Total     int              `json:"total"`
	Breakdown []ConflictRecord `json:"breakdown"`
}

// ConflictRecord is one detected violation. Field presence varies by conflict
// type; absent fields stay empty and must never be compared as empty strings.
type ConflictRecord struct {
	Type               string     `json:"type"`
	Student            FlexString `json:"student,omitempty"`
	Instructor         FlexString `json:"instructor,omitempty"`
	InstructorName     string     `json:"instructor_name,omitempty"`
	Entity             FlexString `json:"entity,omitempty"`
	Day                string     `json:"day,omitempty"`
	Time               string     `json:"time,omitempty"`
	Course             string     `json:"course,omitempty"`
	CRN                FlexString `json:"crn,omitempty"`
	ConflictingCourse  string     `json:"conflicting_course,omitempty"`
	ConflictingCourses StringList `json:"conflicting_courses,omitempty"`
	ConflictingCRN     FlexString `json:"conflicting_crn,omitempty"`
	ConflictingCRNs    StringList `json:"conflicting_crns,omitempty"`
}

// ResultSummary carries the backend's authoritative aggregate counts.
type ResultSummary struct {
	NumClasses    int `json:"num_classes" validate:"min=0"`
	NumStudents   int `json:"num_students" validate:"min=0"`
	RealConflicts int `json:"real_conflicts" validate:"min=0"`
	NumRooms      int `json:"num_rooms" validate:"min=0"`
	SlotsUsed     int `json:"slots_used" validate:"min=0"`
}

// DatasetInfo is optional metadata about the uploaded enrollment dataset.
type DatasetInfo struct {
	UniqueStudents int `json:"unique_students,omitempty"`
}

// FlexString accepts JSON strings and numbers interchangeably.
type FlexString string

// UnmarshalJSON implements tolerant decoding for string-or-number fields.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*f = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*f = FlexString(strconv.FormatInt(i, 10))
		return nil
	}
	*f = FlexString(n.String())
	return nil
}

// String returns the underlying value.
func (f FlexString) String() string {
	return string(f)
}

// StringList accepts a scalar or an array of string/number values.
type StringList []string

// UnmarshalJSON normalises both shapes into a list.
func (l *StringList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*l = nil
		return nil
	}
	if trimmed[0] == '[' {
		var items []FlexString
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		result := make([]string, 0, len(items))
		for _, item := range items {
			result = append(result, item.String())
		}
		*l = result
		return nil
	}
	var single FlexString
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if single == "" {
		*l = nil
		return nil
	}
	*l = []string{single.String()}
	return nil
}

// Pagination describes list slicing metadata in response envelopes.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
