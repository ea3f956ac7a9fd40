package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBenchmarkFixtureSolved(t *testing.T) {
	dir := t.TempDir()
	fixture := filepath.Join(dir, "simple.json")
	require.NoError(t, os.WriteFile(fixture, []byte(`{
		"week_config": {
			"working_days": ["Mon"],
			"week_start_time": "09:00",
			"week_end_time": "12:00"
		},
		"subjects": [{"name": "Math", "type": "theory", "hours_per_week": 2}],
		"rooms": [{"name": "R1", "type": "classroom"}],
		"batches": ["A"]
	}`), 0644))

	row, err := benchmarkFixture(fixture, 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, solved, row.Result)
	assert.Equal(t, 1, row.Subjects)
	assert.Equal(t, 1, row.Rooms)
	assert.GreaterOrEqual(t, row.SolvedHours, 0)
}

func TestBenchmarkFixtureFailsPrecheck(t *testing.T) {
	dir := t.TempDir()
	fixture := filepath.Join(dir, "oversubscribed.json")
	require.NoError(t, os.WriteFile(fixture, []byte(`{
		"week_config": {
			"working_days": ["Mon"],
			"week_start_time": "09:00",
			"week_end_time": "11:00"
		},
		"subjects": [{"name": "Math", "type": "theory", "hours_per_week": 10}],
		"rooms": [{"name": "R1", "type": "classroom"}],
		"batches": ["A"]
	}`), 0644))

	row, err := benchmarkFixture(fixture, 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, failedPrecheck, row.Result)
}

func TestFixtureResultString(t *testing.T) {
	assert.Equal(t, "solved", solved.String())
	assert.Equal(t, "infeasible", infeasible.String())
	assert.Equal(t, "timeout", timedOut.String())
	assert.Equal(t, "failed", failedPrecheck.String())
}
