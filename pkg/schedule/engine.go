package schedule

import (
	"fmt"
	"hash/fnv"
	"runtime"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
	"google.golang.org/protobuf/proto"
)

// SolverOptions tunes the CP-SAT driver. The zero value is not directly
// usable; callers get sensible defaults through DefaultSolverOptions,
// mirroring the teacher's timetabler constructors that always hand back
// a ready-to-use value rather than requiring the caller to fill in every
// field (pkg/model/timetabler.go).
type SolverOptions struct {
	// TimeLimit bounds how long the search may run before returning its
	// best-known answer (spec.md §4.5, §5).
	TimeLimit time.Duration
	// Workers is the number of parallel search workers CP-SAT uses.
	Workers int
	// RandomSeed pins the search for reproducibility (spec.md §4.5,
	// "seeded deterministically from the normalized request"). Zero
	// means "derive one from the request".
	RandomSeed int32
}

const defaultTimeLimit = 180 * time.Second

// DefaultSolverOptions returns the spec.md §4.5 defaults: a 180s time
// limit and a worker count of runtime.NumCPU() clamped to [1, 4].
func DefaultSolverOptions() SolverOptions {
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > 4 {
		workers = 4
	}
	return SolverOptions{TimeLimit: defaultTimeLimit, Workers: workers}
}

// seedFor derives a stable pseudo-random seed from a normalized request
// so that two identical requests solve identically, per spec.md §4.5.
func seedFor(req Request) int32 {
	h := fnv.New32a()
	fmt.Fprintf(h, "%+v", req)
	return int32(h.Sum32() & 0x7fffffff)
}

// solveOutcome is the raw result of running CP-SAT, before translation
// into a schedule.Result (spec.md §6/§7).
type solveOutcome struct {
	status   cmpb.CpSolverStatus
	response *cmpb.CpSolverResponse
}

// runSolver builds the CP-SAT model for req against the precomputed grid
// g and searches it with opts, returning the raw solver outcome. It never
// classifies the outcome into the public Status taxonomy; that is
// SolveWithOptions' job.
func runSolver(req Request, g *grid, opts SolverOptions) (*variableSet, solveOutcome, error) {
	builder := cpmodel.NewCpModelBuilder()
	vs := buildVariables(req, g, builder)
	postConstraints(req, vs, builder)

	model, err := builder.Model()
	if err != nil {
		return vs, solveOutcome{}, fmt.Errorf("build cp model: %w", err)
	}

	seed := opts.RandomSeed
	if seed == 0 {
		seed = seedFor(req)
	}

	params := &sppb.SatParameters{
		MaxTimeInSeconds: proto.Float64(opts.TimeLimit.Seconds()),
		NumSearchWorkers: proto.Int32(int32(opts.Workers)),
		RandomSeed:       proto.Int32(seed),
	}

	response, err := cpmodel.SolveCpModelWithParameters(model, params)
	if err != nil {
		return vs, solveOutcome{}, fmt.Errorf("solve cp model: %w", err)
	}

	return vs, solveOutcome{status: response.GetStatus(), response: response}, nil
}
