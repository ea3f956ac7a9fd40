package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRawRequest() RawRequest {
	return RawRequest{
		WeekConfig: RawWeekConfig{
			WorkingDays:   []string{"Mon", "Tue"},
			WeekStartTime: "09:00",
			WeekEndTime:   "13:00",
		},
		Subjects: []RawCourse{
			{Name: "Math", Type: "theory", HoursPerWeek: 2},
		},
		Rooms: []RawRoom{
			{Name: "R1", Type: "classroom"},
		},
	}
}

func TestNormalizeRequestDefaultsBatches(t *testing.T) {
	req, err := NormalizeRequest(baseRawRequest())
	require.NoError(t, err)
	assert.Equal(t, []Batch{"Batch A", "Batch B", "Batch C"}, req.Batches)
}

func TestNormalizeRequestRejectsEmptyWorkingDays(t *testing.T) {
	raw := baseRawRequest()
	raw.WeekConfig.WorkingDays = nil

	_, err := NormalizeRequest(raw)
	require.Error(t, err)
	assert.IsType(t, &InvalidInputError{}, err)
}

func TestNormalizeRequestRejectsDuplicateWorkingDays(t *testing.T) {
	raw := baseRawRequest()
	raw.WeekConfig.WorkingDays = []string{"Mon", "Mon"}

	_, err := NormalizeRequest(raw)
	require.Error(t, err)
}

func TestNormalizeRequestRejectsBadStartEnd(t *testing.T) {
	raw := baseRawRequest()
	raw.WeekConfig.WeekStartTime = "13:00"
	raw.WeekConfig.WeekEndTime = "09:00"

	_, err := NormalizeRequest(raw)
	require.Error(t, err)
}

func TestNormalizeRequestTruncatesMinutes(t *testing.T) {
	raw := baseRawRequest()
	raw.WeekConfig.WeekStartTime = "09:30"
	raw.WeekConfig.WeekEndTime = "12:45"

	req, err := NormalizeRequest(raw)
	require.NoError(t, err)
	assert.Equal(t, 9, req.Week.WeekStartHour)
	assert.Equal(t, 12, req.Week.WeekEndHour)
}

func TestNormalizeRequestEmptyLunchExcludesNoHours(t *testing.T) {
	raw := baseRawRequest()
	raw.WeekConfig.LunchStart = "13:00"
	raw.WeekConfig.LunchEnd = "13:00"

	req, err := NormalizeRequest(raw)
	require.NoError(t, err)
	assert.False(t, req.Week.hasLunch)
}

func TestNormalizeRequestParsesLunchWindow(t *testing.T) {
	raw := baseRawRequest()
	raw.WeekConfig.LunchStart = "11:00"
	raw.WeekConfig.LunchEnd = "12:00"

	req, err := NormalizeRequest(raw)
	require.NoError(t, err)
	assert.True(t, req.Week.hasLunch)
	assert.Equal(t, 11, req.Week.LunchStartHour)
	assert.Equal(t, 12, req.Week.LunchEndHour)
}

func TestNormalizeRequestRejectsNonPositiveHours(t *testing.T) {
	raw := baseRawRequest()
	raw.Subjects[0].HoursPerWeek = 0

	_, err := NormalizeRequest(raw)
	require.Error(t, err)
}

func TestNormalizeRequestRejectsUnknownSubjectType(t *testing.T) {
	raw := baseRawRequest()
	raw.Subjects[0].Type = "seminar"

	_, err := NormalizeRequest(raw)
	require.Error(t, err)
}

func TestNormalizeRequestRejectsUnknownRoomType(t *testing.T) {
	raw := baseRawRequest()
	raw.Rooms[0].Type = "auditorium"

	_, err := NormalizeRequest(raw)
	require.Error(t, err)
}

func TestNormalizeRequestSplitsCompositeCourse(t *testing.T) {
	raw := baseRawRequest()
	raw.Subjects = []RawCourse{
		{Name: "DB", Type: "theory+lab", HoursPerWeek: 5},
	}
	raw.Rooms = append(raw.Rooms, RawRoom{Name: "L1", Type: "lab"})

	req, err := NormalizeRequest(raw)
	require.NoError(t, err)
	require.Len(t, req.Courses, 2)

	var theory, lab Course
	for _, c := range req.Courses {
		switch c.Kind {
		case Theory:
			theory = c
		case Practical:
			lab = c
		}
	}

	assert.Equal(t, "DB~theory", theory.Name)
	assert.Equal(t, "DB", theory.Group)
	assert.Equal(t, "DB~lab", lab.Name)
	assert.Equal(t, "DB", lab.Group)
	assert.GreaterOrEqual(t, theory.HoursPerWeek, lab.HoursPerWeek)
	assert.Equal(t, 5, theory.HoursPerWeek+lab.HoursPerWeek)
}

func TestParseRequestFromMap(t *testing.T) {
	raw := map[string]any{
		"week_config": map[string]any{
			"working_days":    []string{"Mon"},
			"week_start_time": "09:00",
			"week_end_time":   "11:00",
		},
		"subjects": []map[string]any{
			{"name": "Math", "type": "theory", "hours_per_week": 2},
		},
		"rooms": []map[string]any{
			{"name": "R1", "type": "classroom"},
		},
	}

	req, err := ParseRequest(raw)
	require.NoError(t, err)
	assert.Len(t, req.Courses, 1)
	assert.Len(t, req.Rooms, 1)
}
