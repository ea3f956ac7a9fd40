package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/campusgrid/timetable-solver/pkg/schedule"
)

func main() {
	filePathPtr := flag.String("file", "", "Path to the input request JSON file")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written to the Standard Output")
	timeLimitPtr := flag.Int("time-limit", 180, "CP-SAT wall-clock time limit, in seconds")
	workersPtr := flag.Int("workers", 0, "Number of parallel search workers; 0 uses the runtime default")
	seedPtr := flag.Int("seed", 0, "Random seed override; 0 derives one from the request")
	flag.Parse()

	filePath := *filePathPtr
	if filePath == "" {
		log.Fatal("an input file must be specified")
	}

	raw, err := readRequestFile(filePath)
	if err != nil {
		log.Fatalf("cannot read input file: %v", err)
	}

	req, err := schedule.ParseRequest(raw)
	if err != nil {
		log.Fatalf("cannot parse request: %v", err)
	}

	opts := schedule.DefaultSolverOptions()
	opts.TimeLimit = time.Duration(*timeLimitPtr) * time.Second
	if *workersPtr > 0 {
		opts.Workers = *workersPtr
	}
	if *seedPtr != 0 {
		opts.RandomSeed = int32(*seedPtr)
	}

	result, err := schedule.SolveWithOptions(req, opts)
	if err != nil {
		log.Fatalf("solver encountered an internal error: %v", err)
	}

	output, err := json.MarshalIndent(responsePayload(result), "", "  ")
	if err != nil {
		log.Fatalf("cannot marshal response: %v", err)
	}

	if *outFilePathPtr == "" {
		fmt.Println(string(output))
	} else if err := os.WriteFile(*outFilePathPtr, output, 0666); err != nil {
		log.Fatalf("cannot write output file: %v", err)
	}

	os.Exit(exitCodeFor(result.Status))
}

func readRequestFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// responsePayload renders a Result in the wire shape spec.md §6 specifies:
// timetable entries as plain maps with the spec's exact field names, since
// Assignment's Go field names (Subject, StartHour, ...) differ from the
// wire's snake_case.
func responsePayload(result schedule.Result) map[string]any {
	payload := map[string]any{"status": result.Status.String()}

	if result.Status != schedule.StatusSuccess {
		payload["reason"] = result.Reason
		payload["timetable"] = []any{}
		return payload
	}

	timetable := make([]map[string]any, 0, len(result.Timetable))
	for _, a := range result.Timetable {
		timetable = append(timetable, map[string]any{
			"subject":    a.Subject,
			"batch":      a.Batch,
			"room":       a.Room,
			"day":        a.Day,
			"start_hour": a.StartHour,
			"end_hour":   a.EndHour,
			"duration":   a.Duration,
			"type":       a.Kind.String(),
			"start_time": a.StartTime,
			"end_time":   a.EndTime,
		})
	}
	payload["timetable"] = timetable
	payload["stats"] = map[string]any{
		"total_slots":        result.Stats.TotalSlots,
		"subjects_scheduled": result.Stats.SubjectsScheduled,
		"batches_scheduled":  result.Stats.BatchesScheduled,
	}
	return payload
}

// exitCodeFor mirrors the teacher's convention of a distinct process exit
// code per outcome class (cmd/cli/main.go: 10 solved, 15 verify failed, 20
// unsatisfiable).
func exitCodeFor(status schedule.Status) int {
	switch status {
	case schedule.StatusSuccess:
		return 0
	case schedule.StatusFailed:
		return 10
	case schedule.StatusInfeasible:
		return 20
	case schedule.StatusTimeout:
		return 30
	default:
		return 1
	}
}
