package schedule

import (
	"sort"
	"strconv"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
)

// variableRecord is the per-candidate metadata record of spec.md §4.3:
// "a record {var, course, kind, batch, room, day, start_hour, duration,
// end_hour} used by every downstream constraint."
type variableRecord struct {
	Key       variableKey
	Var       cpmodel.BoolVar
	Course    *Course
	Batch     string // real batch name, or classMarker
	Room      string
	Day       string
	StartHour int
	Duration  int
	EndHour   int
}

// variableSet is the mapping produced by the variable factory (spec.md
// §4.3) plus the indexes the constraint library (§4.4) needs to avoid
// re-scanning the whole set for every constraint family.
type variableSet struct {
	Order []variableKey
	ByKey map[variableKey]*variableRecord

	byRoomDayHour    map[roomDayHour][]*variableRecord
	byBatchDayHour   map[batchDayHour][]*variableRecord
	byCourseDay      map[courseDay][]*variableRecord
	byCourseBatch    map[courseBatch][]*variableRecord
	byCourseBatchDay map[courseBatchDay][]*variableRecord // per (course,real-batch-or-CLASS,day), for the daily cap
	byCourseDayHour  map[courseDayHour][]*variableRecord  // for practical synchronization, per (course,day,start_hour)
}

type roomDayHour struct {
	Room string
	Day  string
	Hour int
}

type batchDayHour struct {
	Batch string
	Day   string
	Hour  int
}

type courseDay struct {
	Course string
	Day    string
}

type courseBatch struct {
	Course string
	Batch  string
}

type courseBatchDay struct {
	Course string
	Batch  string
	Day    string
}

type courseDayHour struct {
	Course string
	Day    string
	Hour   int
}

// legalDurations returns the durations legal for a course kind, per
// spec.md §3 ("duration ∈ {1, 2}... theory may use 1 or 2; practical
// must use exactly 2"). This is also how §4.4.5 ("Duration shape") is
// enforced: there is structurally no duration-3+ candidate to create.
func legalDurations(kind CourseKind) []int {
	if kind == Theory {
		return []int{1, 2}
	}
	return []int{2}
}

// batchMarkersFor returns the batch dimension for a course: the single
// CLASS sentinel for theory, or every real batch for practical, per
// spec.md §4.3.
func batchMarkersFor(kind CourseKind, batches []Batch) []string {
	if kind == Theory {
		return []string{classMarker}
	}
	markers := make([]string, len(batches))
	for i, b := range batches {
		markers[i] = string(b)
	}
	return markers
}

// buildVariables enumerates every legal candidate (spec.md §4.3, rules
// 1-3) and materializes one boolean decision variable per candidate on
// builder, in the deterministic order spec.md §4.4 mandates: courses
// alphabetical, then rooms alphabetical, then days in working-day order,
// then start-hour ascending, then duration ascending.
func buildVariables(req Request, g *grid, builder *cpmodel.CpModelBuilder) *variableSet {
	vs := &variableSet{
		ByKey:            make(map[variableKey]*variableRecord),
		byRoomDayHour:    make(map[roomDayHour][]*variableRecord),
		byBatchDayHour:   make(map[batchDayHour][]*variableRecord),
		byCourseDay:      make(map[courseDay][]*variableRecord),
		byCourseBatch:    make(map[courseBatch][]*variableRecord),
		byCourseBatchDay: make(map[courseBatchDay][]*variableRecord),
		byCourseDayHour:  make(map[courseDayHour][]*variableRecord),
	}

	realBatches := make([]string, len(req.Batches))
	for i, b := range req.Batches {
		realBatches[i] = string(b)
	}

	courses := make([]Course, len(req.Courses))
	copy(courses, req.Courses)
	sort.Slice(courses, func(i, j int) bool { return courses[i].Name < courses[j].Name })

	rooms := make([]Room, len(req.Rooms))
	copy(rooms, req.Rooms)
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Name < rooms[j].Name })

	for ci := range courses {
		course := &courses[ci]
		batchMarkers := batchMarkersFor(course.Kind, req.Batches)

		for _, room := range rooms {
			// Room-type matching (spec.md §4.4.2): filtered here, at
			// variable-creation time, no explicit constraint is posted.
			if !room.Type.Compatible(course.Kind) {
				continue
			}

			for _, day := range req.Week.WorkingDays {
				for startHour := req.Week.WeekStartHour; startHour < req.Week.WeekEndHour; startHour++ {
					for _, duration := range legalDurations(course.Kind) {
						if !g.consecutiveRun(day, startHour, duration) {
							continue
						}

						for _, batch := range batchMarkers {
							key := variableKey{
								Course:    course.Name,
								Batch:     batch,
								Room:      room.Name,
								Day:       day,
								StartHour: startHour,
								Duration:  duration,
							}

							name := variableName(key)
							boolVar := builder.NewBoolVar(name)

							record := &variableRecord{
								Key:       key,
								Var:       boolVar,
								Course:    course,
								Batch:     batch,
								Room:      room.Name,
								Day:       day,
								StartHour: startHour,
								Duration:  duration,
								EndHour:   startHour + duration,
							}

							vs.Order = append(vs.Order, key)
							vs.ByKey[key] = record
							vs.index(record, realBatches)
						}
					}
				}
			}
		}
	}

	return vs
}

// index populates every lookup the constraint library needs. realBatches
// is the full roster; a CLASS-marked theory variable is indexed under
// every real batch name in byBatchDayHour, since it occupies all of them
// at once for the purposes of the per-batch no-overlap rule (spec.md
// §4.4.1).
func (vs *variableSet) index(r *variableRecord, realBatches []string) {
	batchesOccupied := []string{r.Batch}
	if r.Batch == classMarker {
		batchesOccupied = realBatches
	}

	for h := r.StartHour; h < r.EndHour; h++ {
		rdh := roomDayHour{Room: r.Room, Day: r.Day, Hour: h}
		vs.byRoomDayHour[rdh] = append(vs.byRoomDayHour[rdh], r)

		for _, batch := range batchesOccupied {
			bdh := batchDayHour{Batch: batch, Day: r.Day, Hour: h}
			vs.byBatchDayHour[bdh] = append(vs.byBatchDayHour[bdh], r)
		}
	}

	courseDayKey := courseDay{Course: r.Course.Name, Day: r.Day}
	vs.byCourseDay[courseDayKey] = append(vs.byCourseDay[courseDayKey], r)

	courseBatchKey := courseBatch{Course: r.Course.Name, Batch: r.Batch}
	vs.byCourseBatch[courseBatchKey] = append(vs.byCourseBatch[courseBatchKey], r)

	courseBatchDayKey := courseBatchDay{Course: r.Course.Name, Batch: r.Batch, Day: r.Day}
	vs.byCourseBatchDay[courseBatchDayKey] = append(vs.byCourseBatchDay[courseBatchDayKey], r)

	if r.Course.Kind == Practical {
		cdh := courseDayHour{Course: r.Course.Name, Day: r.Day, Hour: r.StartHour}
		vs.byCourseDayHour[cdh] = append(vs.byCourseDayHour[cdh], r)
	}
}

func variableName(k variableKey) string {
	return k.Course + "|" + k.Batch + "|" + k.Room + "|" + k.Day + "|" +
		strconv.Itoa(k.StartHour) + "|" + strconv.Itoa(k.Duration)
}
