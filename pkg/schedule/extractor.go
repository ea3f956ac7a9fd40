package schedule

import (
	"fmt"
	"sort"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
)

// dayOrder indexes a request's working days by their declared position,
// so extracted assignments can be sorted in working-day order rather
// than alphabetically (spec.md §4.4, §4.6).
func dayOrder(days []string) map[string]int {
	order := make(map[string]int, len(days))
	for i, d := range days {
		order[d] = i
	}
	return order
}

// extractAssignments reads every selected decision variable out of a
// satisfying CP-SAT response, expands CLASS-marked theory variables into
// one Assignment per real batch (spec.md §4.6, "a CLASS entry explodes
// into one row per batch in the output"), and returns them sorted
// deterministically: day (working-day order), then start hour, then
// course name, then batch (spec.md §4.4).
func extractAssignments(req Request, vs *variableSet, response *cmpb.CpSolverResponse) []Assignment {
	order := dayOrder(req.Week.WorkingDays)
	realBatches := make([]string, len(req.Batches))
	for i, b := range req.Batches {
		realBatches[i] = string(b)
	}

	var out []Assignment
	for _, key := range vs.Order {
		r := vs.ByKey[key]
		if !cpmodel.SolutionBooleanValue(response, r.Var) {
			continue
		}

		batches := []string{r.Batch}
		if r.Batch == classMarker {
			batches = realBatches
		}

		for _, batch := range batches {
			out = append(out, Assignment{
				Subject:   r.Course.Group,
				Batch:     batch,
				Room:      r.Room,
				Day:       r.Day,
				StartHour: r.StartHour,
				EndHour:   r.EndHour,
				Duration:  r.Duration,
				Kind:      r.Course.Kind,
				StartTime: formatHour(r.StartHour),
				EndTime:   formatHour(r.EndHour),
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if order[a.Day] != order[b.Day] {
			return order[a.Day] < order[b.Day]
		}
		if a.StartHour != b.StartHour {
			return a.StartHour < b.StartHour
		}
		if a.Subject != b.Subject {
			return a.Subject < b.Subject
		}
		return a.Batch < b.Batch
	})

	return out
}

// formatHour renders a whole hour as "HH:00", per spec.md §4.6's
// start_time/end_time fields.
func formatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// computeStats summarizes a solved timetable, per spec.md §4.6.
func computeStats(req Request, slots []Slot, assignments []Assignment) Stats {
	subjects := make(map[string]bool)
	batches := make(map[string]bool)
	for _, a := range assignments {
		subjects[a.Subject] = true
		batches[a.Batch] = true
	}
	return Stats{
		TotalSlots:        len(slots),
		SubjectsScheduled: len(subjects),
		BatchesScheduled:  len(batches),
	}
}
