package schedule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

// RawWeekConfig, RawCourse, RawRoom and RawRequest mirror the wire
// contract of spec.md §6 verbatim: loosely-typed fields decoded straight
// off a map[string]any by mapstructure, exactly as the teacher's
// RawModelInput is decoded in pkg/model/input.go before being turned into
// a strongly-typed, invariant-checked ModelInput.
type RawWeekConfig struct {
	WorkingDays   []string `mapstructure:"working_days"`
	WeekStartTime string   `mapstructure:"week_start_time"`
	WeekEndTime   string   `mapstructure:"week_end_time"`
	LunchStart    string   `mapstructure:"lunch_start"`
	LunchEnd      string   `mapstructure:"lunch_end"`
}

type RawCourse struct {
	Name         string `mapstructure:"name"`
	Type         string `mapstructure:"type"`
	HoursPerWeek int    `mapstructure:"hours_per_week"`
	Teacher      string `mapstructure:"teacher"`
}

type RawRoom struct {
	Name     string `mapstructure:"name"`
	Type     string `mapstructure:"type"`
	Capacity int    `mapstructure:"capacity"`
	Location string `mapstructure:"location"`
}

type RawRequest struct {
	WeekConfig RawWeekConfig `mapstructure:"week_config"`
	Subjects   []RawCourse   `mapstructure:"subjects"`
	Rooms      []RawRoom     `mapstructure:"rooms"`
	Batches    []string      `mapstructure:"batches"`
}

var defaultBatches = []string{"Batch A", "Batch B", "Batch C"}

// InvalidInputError is the InvalidInput taxonomy entry (spec §7): a
// caller-correctable defect discovered during normalization, before any
// model is built.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return e.Reason
}

func invalidInput(format string, args ...any) error {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}

// ParseRequest decodes a loosely-typed payload (the result of
// json.Unmarshal into map[string]any, or an equivalent caller-built map)
// into a RawRequest and normalizes it into a Request. It is the single
// place spec.md §7's InvalidInput can originate from.
func ParseRequest(raw map[string]any) (Request, error) {
	var rawRequest RawRequest
	if err := mapstructure.Decode(raw, &rawRequest); err != nil {
		return Request{}, invalidInput("cannot decode request: %v", err)
	}
	return NormalizeRequest(rawRequest)
}

// NormalizeRequest converts a RawRequest into a Request, validating every
// invariant spec.md §3 states and splitting composite theory+lab courses
// into their theory and lab sub-courses (spec.md §3, §9).
func NormalizeRequest(raw RawRequest) (Request, error) {
	week, err := normalizeWeek(raw.WeekConfig)
	if err != nil {
		return Request{}, err
	}

	courses, err := normalizeCourses(raw.Subjects)
	if err != nil {
		return Request{}, err
	}

	rooms, err := normalizeRooms(raw.Rooms)
	if err != nil {
		return Request{}, err
	}

	batchNames := raw.Batches
	if len(batchNames) == 0 {
		batchNames = defaultBatches
	}
	if err := validateUniqueStrings("batch", batchNames); err != nil {
		return Request{}, err
	}
	batches := lo.Map(batchNames, func(name string, _ int) Batch { return Batch(name) })

	return Request{Week: week, Courses: courses, Rooms: rooms, Batches: batches}, nil
}

func normalizeWeek(raw RawWeekConfig) (WeekConfig, error) {
	if len(raw.WorkingDays) == 0 {
		return WeekConfig{}, invalidInput("working_days must not be empty")
	}
	if err := validateUniqueStrings("working day", raw.WorkingDays); err != nil {
		return WeekConfig{}, err
	}

	start, err := parseHHMM("week_start_time", raw.WeekStartTime)
	if err != nil {
		return WeekConfig{}, err
	}
	end, err := parseHHMM("week_end_time", raw.WeekEndTime)
	if err != nil {
		return WeekConfig{}, err
	}
	if start >= end {
		return WeekConfig{}, invalidInput("week_start_time must be before week_end_time")
	}

	week := WeekConfig{
		WorkingDays:   raw.WorkingDays,
		WeekStartHour: start,
		WeekEndHour:   end,
	}

	// An empty lunch window ("lunch_start" == "lunch_end") excludes no
	// hours, per spec.md §4.1 ("if lunch is empty... no hours are excluded").
	if raw.LunchStart != "" && raw.LunchEnd != "" {
		lunchStart, err := parseHHMM("lunch_start", raw.LunchStart)
		if err != nil {
			return WeekConfig{}, err
		}
		lunchEnd, err := parseHHMM("lunch_end", raw.LunchEnd)
		if err != nil {
			return WeekConfig{}, err
		}
		if lunchEnd < lunchStart {
			return WeekConfig{}, invalidInput("lunch_end must not be before lunch_start")
		}
		week.LunchStartHour = lunchStart
		week.LunchEndHour = lunchEnd
		week.hasLunch = lunchEnd > lunchStart
	}

	return week, nil
}

// parseHHMM parses an "HH:MM" string and truncates down to a whole hour,
// per spec.md §4.1 ("if week_end_time does not fall on a whole hour,
// truncate down").
func parseHHMM(field, value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, invalidInput("%s must be formatted as \"HH:MM\", got %q", field, value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, invalidInput("%s has a non-numeric hour: %q", field, value)
	}
	if _, err := strconv.Atoi(parts[1]); err != nil {
		return 0, invalidInput("%s has a non-numeric minute: %q", field, value)
	}
	if hour < 0 || hour > 24 {
		return 0, invalidInput("%s is out of range: %q", field, value)
	}
	return hour, nil
}

func normalizeCourses(raw []RawCourse) ([]Course, error) {
	names := lo.Map(raw, func(c RawCourse, _ int) string { return c.Name })
	if err := validateUniqueStrings("subject", names); err != nil {
		return nil, err
	}

	courses := make([]Course, 0, len(raw))
	for _, c := range raw {
		if c.Name == "" {
			return nil, invalidInput("subject name must not be empty")
		}
		if c.HoursPerWeek <= 0 {
			return nil, invalidInput("subject %q must have hours_per_week > 0, got %d", c.Name, c.HoursPerWeek)
		}

		switch c.Type {
		case "theory":
			courses = append(courses, Course{Name: c.Name, Group: c.Name, Kind: Theory, HoursPerWeek: c.HoursPerWeek, Teacher: c.Teacher})
		case "practical":
			courses = append(courses, Course{Name: c.Name, Group: c.Name, Kind: Practical, HoursPerWeek: c.HoursPerWeek, Teacher: c.Teacher})
		case "theory+lab":
			labHours := c.HoursPerWeek / 2
			theoryHours := c.HoursPerWeek - labHours
			courses = append(courses,
				Course{Name: c.Name + "~theory", Group: c.Name, Kind: Theory, HoursPerWeek: theoryHours, Teacher: c.Teacher},
				Course{Name: c.Name + "~lab", Group: c.Name, Kind: Practical, HoursPerWeek: labHours, Teacher: c.Teacher},
			)
		default:
			return nil, invalidInput("subject %q has unknown type %q", c.Name, c.Type)
		}
	}
	return courses, nil
}

func normalizeRooms(raw []RawRoom) ([]Room, error) {
	names := lo.Map(raw, func(r RawRoom, _ int) string { return r.Name })
	if err := validateUniqueStrings("room", names); err != nil {
		return nil, err
	}

	rooms := make([]Room, 0, len(raw))
	for _, r := range raw {
		if r.Name == "" {
			return nil, invalidInput("room name must not be empty")
		}
		var roomType RoomType
		switch r.Type {
		case "classroom":
			roomType = Classroom
		case "lab":
			roomType = Lab
		default:
			return nil, invalidInput("room %q has unknown type %q", r.Name, r.Type)
		}
		rooms = append(rooms, Room{Name: r.Name, Type: roomType, Capacity: r.Capacity, Location: r.Location})
	}
	return rooms, nil
}

func validateUniqueStrings(label string, values []string) error {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			return invalidInput("duplicate %s: %q", label, v)
		}
		seen[v] = true
	}
	return nil
}

// sortedCopy returns a sorted copy of ss without mutating the input,
// used wherever deterministic iteration order matters (spec.md §4.4,
// "Ordering, tie-breaks, numeric semantics").
func sortedCopy(ss []string) []string {
	out := make([]string, len(ss))
	copy(out, ss)
	sort.Strings(out)
	return out
}
