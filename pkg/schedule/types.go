// Package schedule implements the constraint-solver core of a university
// department timetable generator: it turns a declarative weekly-timetable
// problem into a boolean constraint satisfaction model, searches it with
// CP-SAT, and extracts a structured solution.
package schedule

import "fmt"

// CourseKind is the sum-type replacement for the source's string-coded
// course type ("theory" | "practical" | "theory+lab"). Composite courses
// are split by the normalizer into a Theory and a Practical sub-course
// before the solver ever sees them, so CourseKind itself only ever takes
// the two leaf values downstream of normalization.
type CourseKind int

const (
	Theory CourseKind = iota
	Practical
)

func (k CourseKind) String() string {
	switch k {
	case Theory:
		return "theory"
	case Practical:
		return "practical"
	default:
		return fmt.Sprintf("CourseKind(%d)", int(k))
	}
}

// RoomType is the sum-type replacement for the string-coded room type.
type RoomType int

const (
	Classroom RoomType = iota
	Lab
)

func (t RoomType) String() string {
	switch t {
	case Classroom:
		return "classroom"
	case Lab:
		return "lab"
	default:
		return fmt.Sprintf("RoomType(%d)", int(t))
	}
}

// Compatible reports whether a room of type t may host a course of kind k.
func (t RoomType) Compatible(k CourseKind) bool {
	if k == Theory {
		return t == Classroom
	}
	return t == Lab
}

// Status is the sum-type outcome tag of a solve, per spec §6/§7.
type Status int

const (
	StatusSuccess Status = iota
	StatusFailed
	StatusInfeasible
	StatusTimeout
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	case StatusInfeasible:
		return "infeasible"
	case StatusTimeout:
		return "timeout"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// classMarker is the sentinel batch identifier representing "every batch
// at once" for theory variables (spec §3, "CLASS marker").
const classMarker = "CLASS"

// Course is a normalized, single-kind course ready for the variable
// factory. Composite theory+lab subjects are represented as two Courses
// sharing a Group (their original name), produced once at normalization
// time instead of carrying a duck-typed "theory_hours vs practical_hours"
// union through the rest of the pipeline (spec §9, Design Notes).
type Course struct {
	Name         string
	Group        string // original subject name; equals Name for non-composite courses
	Kind         CourseKind
	HoursPerWeek int
	Teacher      string // optional; empty when not supplied
}

// Room is a normalized room.
type Room struct {
	Name     string
	Type     RoomType
	Capacity int
	Location string
}

// Batch is a bare student-group identifier.
type Batch string

// WeekConfig is the normalized working week.
type WeekConfig struct {
	WorkingDays    []string
	WeekStartHour  int
	WeekEndHour    int
	LunchStartHour int
	LunchEndHour   int
	hasLunch       bool
}

// Request is the fully-normalized problem handed to the solver pipeline.
type Request struct {
	Week     WeekConfig
	Courses  []Course
	Rooms    []Room
	Batches  []Batch
}

// Slot is one atomic teachable hour, produced by the grid builder (spec §4.1).
type Slot struct {
	Day       string
	StartHour int
}

// Key returns the stable "{day}_{start_hour}" identity of the slot.
func (s Slot) Key() string {
	return fmt.Sprintf("%s_%d", s.Day, s.StartHour)
}

// variableKey is the typed key of a decision variable (spec §9, Design
// Notes: "replace [string concatenation] with a typed key struct"). It is
// comparable, so it can be used directly as a map key for O(1) lookup
// during constraint posting without reparsing a string.
type variableKey struct {
	Course    string
	Batch     string // real batch name, or classMarker for theory
	Room      string
	Day       string
	StartHour int
	Duration  int
}

// Assignment is one emitted (course, batch, room, day, hour-range) entry
// of a solved timetable (spec §3, §4.6).
type Assignment struct {
	Subject   string
	Batch     string
	Room      string
	Day       string
	StartHour int
	EndHour   int
	Duration  int
	Kind      CourseKind
	StartTime string
	EndTime   string
}

// Stats summarizes a successful solve (spec §4.6).
type Stats struct {
	TotalSlots        int
	SubjectsScheduled int
	BatchesScheduled  int
}

// Result is the tagged outcome of a solve (spec §6, §7). Exactly one of
// Timetable (on success) or Reason (otherwise) is meaningful.
type Result struct {
	Status    Status
	Reason    string
	Timetable []Assignment
	Stats     Stats
}
