package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/campusgrid/timetable-solver/pkg/schedule"
)

// fixtureResult classifies one benchmarked fixture's outcome, mirroring the
// teacher's ResultType enum (cmd/benchmark/main.go).
type fixtureResult int

const (
	solved fixtureResult = iota
	infeasible
	timedOut
	failedPrecheck
)

func (r fixtureResult) String() string {
	switch r {
	case solved:
		return "solved"
	case infeasible:
		return "infeasible"
	case timedOut:
		return "timeout"
	case failedPrecheck:
		return "failed"
	default:
		return "unknown"
	}
}

type benchmarkRow struct {
	Fixture      string
	Subjects     int
	Rooms        int
	Batches      int
	WorkingDays  int
	DurationMs   int64
	Result       fixtureResult
	SolvedHours  int
	VariableRows int
}

func main() {
	dirPtr := flag.String("dir", "testdata/fixtures", "Directory of request JSON fixtures to benchmark")
	outPtr := flag.String("out", "benchmark_results.csv", "Path to the CSV report to write")
	timeLimitPtr := flag.Int("time-limit", 30, "CP-SAT wall-clock time limit per fixture, in seconds")
	flag.Parse()

	entries, err := os.ReadDir(*dirPtr)
	if err != nil {
		log.Fatalf("cannot read fixture directory: %v", err)
	}

	var rows []benchmarkRow
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		fixturePath := filepath.Join(*dirPtr, entry.Name())
		row, err := benchmarkFixture(fixturePath, time.Duration(*timeLimitPtr)*time.Second)
		if err != nil {
			log.Fatalf("fixture %q: %v", fixturePath, err)
		}
		fmt.Printf("%-40s result=%-10s duration=%dms\n", entry.Name(), row.Result, row.DurationMs)
		rows = append(rows, row)
	}

	if err := writeCSV(*outPtr, rows); err != nil {
		log.Fatalf("cannot write CSV report: %v", err)
	}
}

func benchmarkFixture(path string, timeLimit time.Duration) (benchmarkRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return benchmarkRow{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return benchmarkRow{}, err
	}

	req, err := schedule.ParseRequest(raw)
	if err != nil {
		return benchmarkRow{}, fmt.Errorf("invalid request: %w", err)
	}

	opts := schedule.DefaultSolverOptions()
	opts.TimeLimit = timeLimit

	start := time.Now()
	result, err := schedule.SolveWithOptions(req, opts)
	duration := time.Since(start)
	if err != nil {
		return benchmarkRow{}, fmt.Errorf("solve failed: %w", err)
	}

	row := benchmarkRow{
		Fixture:     filepath.Base(path),
		Subjects:    len(req.Courses),
		Rooms:       len(req.Rooms),
		Batches:     len(req.Batches),
		WorkingDays: len(req.Week.WorkingDays),
		DurationMs:  duration.Milliseconds(),
	}

	switch result.Status {
	case schedule.StatusSuccess:
		row.Result = solved
		row.VariableRows = len(result.Timetable)
		for _, a := range result.Timetable {
			row.SolvedHours += a.Duration
		}
	case schedule.StatusInfeasible:
		row.Result = infeasible
	case schedule.StatusTimeout:
		row.Result = timedOut
	default:
		row.Result = failedPrecheck
	}

	return row, nil
}

func writeCSV(path string, rows []benchmarkRow) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Fixture", "Subjects", "Rooms", "Batches", "WorkingDays", "DurationMs", "Result", "SolvedHours", "AssignmentRows"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			row.Fixture,
			fmt.Sprintf("%d", row.Subjects),
			fmt.Sprintf("%d", row.Rooms),
			fmt.Sprintf("%d", row.Batches),
			fmt.Sprintf("%d", row.WorkingDays),
			fmt.Sprintf("%d", row.DurationMs),
			row.Result.String(),
			fmt.Sprintf("%d", row.SolvedHours),
			fmt.Sprintf("%d", row.VariableRows),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return nil
}
