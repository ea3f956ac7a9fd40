package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildGridExcludesLunch(t *testing.T) {
	week := WeekConfig{
		WorkingDays:    []string{"Mon"},
		WeekStartHour:  9,
		WeekEndHour:    13,
		LunchStartHour: 11,
		LunchEndHour:   12,
		hasLunch:       true,
	}

	slots := BuildGrid(week)

	hours := make([]int, 0, len(slots))
	for _, s := range slots {
		hours = append(hours, s.StartHour)
	}
	assert.Equal(t, []int{9, 10, 12}, hours)
}

func TestBuildGridNoLunchIncludesEveryHour(t *testing.T) {
	week := WeekConfig{
		WorkingDays:   []string{"Mon"},
		WeekStartHour: 9,
		WeekEndHour:   12,
	}

	slots := BuildGrid(week)
	assert.Len(t, slots, 3)
}

func TestSlotKeyIsStable(t *testing.T) {
	s := Slot{Day: "Mon", StartHour: 9}
	assert.Equal(t, "Mon_9", s.Key())
}

func TestGridConsecutiveRun(t *testing.T) {
	week := WeekConfig{
		WorkingDays:    []string{"Mon"},
		WeekStartHour:  9,
		WeekEndHour:    13,
		LunchStartHour: 11,
		LunchEndHour:   12,
		hasLunch:       true,
	}
	g := newGrid(BuildGrid(week))

	assert.True(t, g.consecutiveRun("Mon", 9, 2))
	assert.False(t, g.consecutiveRun("Mon", 10, 2), "spans the lunch hour")
	assert.True(t, g.consecutiveRun("Mon", 12, 1))
	assert.False(t, g.consecutiveRun("Mon", 12, 2), "overflows the day")
}
