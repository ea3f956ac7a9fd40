package schedule

// BuildGrid expands a WeekConfig into the ordered sequence of atomic
// one-hour slots, excluding lunch hours, per spec.md §4.1. For each day
// in working_days, for each whole hour h in [week_start_hour,
// week_end_hour), a Slot is emitted iff h < lunch_start_hour or
// h >= lunch_end_hour.
func BuildGrid(week WeekConfig) []Slot {
	hoursPerDay := week.WeekEndHour - week.WeekStartHour
	slots := make([]Slot, 0, len(week.WorkingDays)*hoursPerDay)

	for _, day := range week.WorkingDays {
		for hour := week.WeekStartHour; hour < week.WeekEndHour; hour++ {
			if week.hasLunch && hour >= week.LunchStartHour && hour < week.LunchEndHour {
				continue
			}
			slots = append(slots, Slot{Day: day, StartHour: hour})
		}
	}
	return slots
}

// grid indexes a slot sequence for the O(1) membership checks the
// variable factory and consecutiveness rule (spec.md §3, "consecutive
// within a day") need.
type grid struct {
	bySlotKey map[string]bool
}

func newGrid(slots []Slot) *grid {
	g := &grid{bySlotKey: make(map[string]bool, len(slots))}
	for _, s := range slots {
		g.bySlotKey[s.Key()] = true
	}
	return g
}

func (g *grid) has(day string, hour int) bool {
	return g.bySlotKey[Slot{Day: day, StartHour: hour}.Key()]
}

// consecutiveRun reports whether all `duration` atomic slots starting at
// (day, startHour) exist in the grid, i.e. none is a lunch hour and none
// overflows the day (spec.md §4.3, rule 3).
func (g *grid) consecutiveRun(day string, startHour, duration int) bool {
	for h := startHour; h < startHour+duration; h++ {
		if !g.has(day, h) {
			return false
		}
	}
	return true
}
