package schedule

import "fmt"

// precheckResult carries the advisory feasibility-by-counting verdict of
// spec.md §4.2. It never produces a false negative (failing it always
// means infeasible); passing it never guarantees satisfiability.
type precheckResult struct {
	ok     bool
	reason string
}

// precheck compares weekly hour demand against available slot supply,
// per spec.md §4.2: H = Σ hours_per_week across all (post-split) courses,
// S = |Slot| × |rooms of any compatible type|. Theory demand is compared
// against classroom supply and practical demand against lab supply, and
// total demand against total supply; failing any one of the three fails
// the check. The reason string always reports the combined figures.
func precheck(req Request, slots []Slot) precheckResult {
	demand := 0
	for _, c := range req.Courses {
		demand += c.HoursPerWeek
	}

	classrooms, labs := 0, 0
	for _, r := range req.Rooms {
		if r.Type == Classroom {
			classrooms++
		} else {
			labs++
		}
	}

	theoryDemand, practicalDemand := 0, 0
	for _, c := range req.Courses {
		if c.Kind == Theory {
			theoryDemand += c.HoursPerWeek
		} else {
			practicalDemand += c.HoursPerWeek
		}
	}

	theorySupply := len(slots) * classrooms
	practicalSupply := len(slots) * labs
	supply := theorySupply + practicalSupply

	if theoryDemand > theorySupply || practicalDemand > practicalSupply || demand > supply {
		return precheckResult{
			ok:     false,
			reason: fmt.Sprintf("Need %dh but only %d slots available", demand, supply),
		}
	}
	return precheckResult{ok: true}
}
