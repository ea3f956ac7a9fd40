package schedule

import (
	"fmt"

	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
)

// Solve runs the full pipeline (grid → feasibility pre-check → variable
// factory → constraints → CP-SAT search → extraction) against req using
// DefaultSolverOptions, per spec.md §6.
func Solve(req Request) (result Result, err error) {
	return SolveWithOptions(req, DefaultSolverOptions())
}

// SolveWithOptions is Solve with caller-supplied SolverOptions, per
// spec.md §6. It recovers from panics raised by internal invariant
// violations (mirroring the teacher's predicate-evaluator panics in
// pkg/model/predicate_evaluator.go) and reports them as StatusError
// instead of crashing the caller, per spec.md §7's ErrorTaxonomy.
func SolveWithOptions(req Request, opts SolverOptions) (result Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			result = Result{Status: StatusError, Reason: fmt.Sprintf("internal error: %v", p)}
			err = fmt.Errorf("schedule: internal error: %v", p)
		}
	}()

	slots := BuildGrid(req.Week)
	if pre := precheck(req, slots); !pre.ok {
		return Result{Status: StatusFailed, Reason: pre.reason}, nil
	}

	g := newGrid(slots)
	vs, outcome, err := runSolver(req, g, opts)
	if err != nil {
		return Result{Status: StatusError, Reason: err.Error()}, err
	}

	switch outcome.status {
	case cmpb.CpSolverStatus_OPTIMAL, cmpb.CpSolverStatus_FEASIBLE:
		assignments := extractAssignments(req, vs, outcome.response)
		return Result{
			Status:    StatusSuccess,
			Timetable: assignments,
			Stats:     computeStats(req, slots, assignments),
		}, nil
	case cmpb.CpSolverStatus_INFEASIBLE:
		return Result{Status: StatusInfeasible, Reason: "No feasible solution under current constraints"}, nil
	case cmpb.CpSolverStatus_MODEL_INVALID:
		return Result{Status: StatusError, Reason: "cp model was rejected as invalid"}, nil
	default:
		// UNKNOWN: the time budget expired before the search could prove
		// either satisfiability or infeasibility (spec.md §4.5, §7).
		return Result{
			Status: StatusTimeout,
			Reason: fmt.Sprintf("Solver timed out after %ds", int(opts.TimeLimit.Seconds())),
		}, nil
	}
}
