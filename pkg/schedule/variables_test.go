package schedule

import (
	"testing"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildVariablesRoomTypeMatching(t *testing.T) {
	req := Request{
		Week: WeekConfig{
			WorkingDays:   []string{"Mon"},
			WeekStartHour: 9,
			WeekEndHour:   11,
		},
		Courses: []Course{{Name: "Math", Kind: Theory, HoursPerWeek: 2}},
		Rooms: []Room{
			{Name: "C1", Type: Classroom},
			{Name: "L1", Type: Lab},
		},
		Batches: []Batch{"A"},
	}
	g := newGrid(BuildGrid(req.Week))
	builder := cpmodel.NewCpModelBuilder()

	vs := buildVariables(req, g, builder)

	for _, key := range vs.Order {
		assert.Equal(t, "C1", key.Room, "theory candidates must only target classrooms")
	}
}

func TestBuildVariablesTheoryUsesClassMarker(t *testing.T) {
	req := Request{
		Week: WeekConfig{
			WorkingDays:   []string{"Mon"},
			WeekStartHour: 9,
			WeekEndHour:   11,
		},
		Courses: []Course{{Name: "Math", Kind: Theory, HoursPerWeek: 2}},
		Rooms:   []Room{{Name: "C1", Type: Classroom}},
		Batches: []Batch{"A", "B"},
	}
	g := newGrid(BuildGrid(req.Week))
	builder := cpmodel.NewCpModelBuilder()

	vs := buildVariables(req, g, builder)
	require.NotEmpty(t, vs.Order)
	for _, key := range vs.Order {
		assert.Equal(t, classMarker, key.Batch)
	}
}

func TestBuildVariablesPracticalReplicatedPerBatch(t *testing.T) {
	req := Request{
		Week: WeekConfig{
			WorkingDays:   []string{"Mon"},
			WeekStartHour: 9,
			WeekEndHour:   11,
		},
		Courses: []Course{{Name: "Lab1", Kind: Practical, HoursPerWeek: 2}},
		Rooms:   []Room{{Name: "L1", Type: Lab}},
		Batches: []Batch{"A", "B", "C"},
	}
	g := newGrid(BuildGrid(req.Week))
	builder := cpmodel.NewCpModelBuilder()

	vs := buildVariables(req, g, builder)

	batches := make(map[string]bool)
	for _, key := range vs.Order {
		batches[key.Batch] = true
		assert.Equal(t, 2, key.Duration, "practical candidates must use duration 2")
	}
	assert.Len(t, batches, 3)
}

func TestBuildVariablesOnlyConsecutiveSlotsProduceCandidates(t *testing.T) {
	req := Request{
		Week: WeekConfig{
			WorkingDays:    []string{"Mon"},
			WeekStartHour:  9,
			WeekEndHour:    12,
			LunchStartHour: 10,
			LunchEndHour:   11,
			hasLunch:       true,
		},
		Courses: []Course{{Name: "Math", Kind: Theory, HoursPerWeek: 2}},
		Rooms:   []Room{{Name: "C1", Type: Classroom}},
		Batches: []Batch{"A"},
	}
	g := newGrid(BuildGrid(req.Week))
	builder := cpmodel.NewCpModelBuilder()

	vs := buildVariables(req, g, builder)

	for _, key := range vs.Order {
		if key.Duration == 2 {
			assert.NotEqual(t, 9, key.StartHour, "9-11 would span the lunch hour")
		}
	}
}

func TestLegalDurations(t *testing.T) {
	assert.ElementsMatch(t, []int{1, 2}, legalDurations(Theory))
	assert.ElementsMatch(t, []int{2}, legalDurations(Practical))
}
