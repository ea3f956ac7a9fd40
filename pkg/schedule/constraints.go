package schedule

import (
	"sort"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
)

// postConstraints wires every constraint family of spec.md §4.4 against
// builder. Room-type matching (§4.4.2) and duration shape (§4.4.5) are
// structural: the variable factory never creates a candidate that would
// violate them, so there is nothing to post for those two rules here.
func postConstraints(req Request, vs *variableSet, builder *cpmodel.CpModelBuilder) {
	postRoomExclusivity(vs, builder)
	postBatchExclusivity(vs, builder)
	postPracticalSynchronization(vs, builder)
	postDailyCap(req, vs, builder)
	postWeeklyQuota(req, vs, builder)
	postTeacherFatigue(req, vs, builder)
}

// postRoomExclusivity enforces spec.md §4.4.1's first half: a room hosts
// at most one class in any given (day, hour). Grouped per atomic hour
// rather than via interval no-overlap, since every candidate's footprint
// is already known at variable-creation time.
func postRoomExclusivity(vs *variableSet, builder *cpmodel.CpModelBuilder) {
	for _, records := range vs.byRoomDayHour {
		if len(records) <= 1 {
			continue
		}
		builder.AddAtMostOne(literalsOf(records)...)
	}
}

// postBatchExclusivity enforces spec.md §4.4.1's second half: a batch
// attends at most one class in any given (day, hour). A CLASS-marked
// theory variable was indexed under every real batch name by the
// variable factory, so it competes here exactly like a practical
// variable bound to one specific batch.
func postBatchExclusivity(vs *variableSet, builder *cpmodel.CpModelBuilder) {
	for _, records := range vs.byBatchDayHour {
		if len(records) <= 1 {
			continue
		}
		builder.AddAtMostOne(distinctLiterals(records)...)
	}
}

// postPracticalSynchronization enforces spec.md §4.4.4: every batch
// attends its own session of a practical course at the exact same
// (room-independent) (day, start_hour) as every other batch — i.e. for
// a fixed course and fixed (day, start_hour), either all batches have a
// variable selected there or none do. Implemented as linear equalities:
// each batch's "any room" sum at that (day, start_hour) is constrained
// equal to the first batch's sum (batches in sorted order).
func postPracticalSynchronization(vs *variableSet, builder *cpmodel.CpModelBuilder) {
	for _, records := range vs.byCourseDayHour {
		byBatch := make(map[string][]*variableRecord)
		for _, r := range records {
			byBatch[r.Batch] = append(byBatch[r.Batch], r)
		}
		if len(byBatch) < 2 {
			continue
		}

		batches := keysOf(byBatch)
		first := sumOf(byBatch[batches[0]])
		for i := 1; i < len(batches); i++ {
			builder.AddEquality(first, sumOf(byBatch[batches[i]]))
		}
	}
}

// postDailyCap enforces spec.md §4.4.6: a course meets at most 2 hours
// of a given kind per day, counted separately per batch (CLASS for
// theory, each real batch for practical) — never summed across batches,
// since postPracticalSynchronization already forces a practical
// course's batches to carry identical sums, and a combined-batch cap
// would reject a single ordinary synchronized session.
func postDailyCap(req Request, vs *variableSet, builder *cpmodel.CpModelBuilder) {
	const dailyCapHours = 2
	for _, c := range req.Courses {
		for _, batch := range batchMarkersFor(c.Kind, req.Batches) {
			for _, day := range req.Week.WorkingDays {
				records := vs.byCourseBatchDay[courseBatchDay{Course: c.Name, Batch: batch, Day: day}]
				if len(records) == 0 {
					continue
				}
				expr := cpmodel.NewLinearExpr()
				for _, r := range records {
					expr.AddTerm(r.Var, int64(r.Duration))
				}
				builder.AddLessOrEqual(expr, cpmodel.NewConstant(dailyCapHours))
			}
		}
	}
}

// postWeeklyQuota enforces spec.md §4.4.7: the hours actually scheduled
// for a course across the whole week equal its hours_per_week exactly,
// per batch (CLASS for theory, each real batch for practical) rather
// than summed across batches — the same reasoning as postDailyCap.
func postWeeklyQuota(req Request, vs *variableSet, builder *cpmodel.CpModelBuilder) {
	for _, c := range req.Courses {
		for _, batch := range batchMarkersFor(c.Kind, req.Batches) {
			records := vs.byCourseBatch[courseBatch{Course: c.Name, Batch: batch}]
			expr := cpmodel.NewLinearExpr()
			for _, r := range records {
				expr.AddTerm(r.Var, int64(r.Duration))
			}
			builder.AddEquality(expr, cpmodel.NewConstant(int64(c.HoursPerWeek)))
		}
	}
}

// postTeacherFatigue enforces spec.md §4.4's optional teacher-fatigue
// rule: a teacher (when named) teaches at most 3 hours within any
// 4-consecutive-hour sliding window on a single day, counted across
// every course they teach.
func postTeacherFatigue(req Request, vs *variableSet, builder *cpmodel.CpModelBuilder) {
	const windowSize = 4
	const maxHoursInWindow = 3

	teacherCourses := make(map[string][]string)
	for _, c := range req.Courses {
		if c.Teacher == "" {
			continue
		}
		teacherCourses[c.Teacher] = append(teacherCourses[c.Teacher], c.Name)
	}
	if len(teacherCourses) == 0 {
		return
	}
	teachers := make([]string, 0, len(teacherCourses))
	for t := range teacherCourses {
		teachers = append(teachers, t)
	}
	teachers = sortedCopy(teachers)

	for _, day := range req.Week.WorkingDays {
		for _, teacher := range teachers {
			courseNames := teacherCourses[teacher]
			var records []*variableRecord
			for _, name := range courseNames {
				records = append(records, vs.byCourseDay[courseDay{Course: name, Day: day}]...)
			}
			if len(records) == 0 {
				continue
			}

			for windowStart := req.Week.WeekStartHour; windowStart <= req.Week.WeekEndHour-windowSize; windowStart++ {
				windowEnd := windowStart + windowSize
				expr := cpmodel.NewLinearExpr()
				any := false
				for _, r := range records {
					overlapHours := overlapDuration(r.StartHour, r.EndHour, windowStart, windowEnd)
					if overlapHours == 0 {
						continue
					}
					expr.AddTerm(r.Var, int64(overlapHours))
					any = true
				}
				if !any {
					continue
				}
				builder.AddLessOrEqual(expr, cpmodel.NewConstant(maxHoursInWindow))
			}
		}
	}
}

func overlapDuration(startA, endA, startB, endB int) int {
	from := max(startA, startB)
	to := min(endA, endB)
	if to <= from {
		return 0
	}
	return to - from
}

func literalsOf(records []*variableRecord) []cpmodel.Literal {
	out := make([]cpmodel.Literal, len(records))
	for i, r := range records {
		out[i] = r.Var
	}
	return out
}

// distinctLiterals de-duplicates by variableKey before handing literals
// to AddAtMostOne. The variable factory appends a record to a given
// byBatchDayHour bucket at most once, so no duplicates arise today;
// de-duplication keeps the constraint robust should that change.
func distinctLiterals(records []*variableRecord) []cpmodel.Literal {
	seen := make(map[variableKey]bool, len(records))
	out := make([]cpmodel.Literal, 0, len(records))
	for _, r := range records {
		if seen[r.Key] {
			continue
		}
		seen[r.Key] = true
		out = append(out, r.Var)
	}
	return out
}

func sumOf(records []*variableRecord) *cpmodel.LinearExpr {
	expr := cpmodel.NewLinearExpr()
	for _, r := range records {
		expr.AddTerm(r.Var, 1)
	}
	return expr
}

func keysOf(m map[string][]*variableRecord) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
