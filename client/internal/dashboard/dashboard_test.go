package dashboard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitlog/fitlog/client/internal/dashboard"
	"github.com/fitlog/fitlog/models"
)

func workoutOf(id, typ, date string, exercises ...models.Exercise) models.Workout {
	return models.Workout{ID: id, Username: "bob", Type: typ, Date: date, Exercises: exercises}
}

func press(sets, reps int, weight float64) models.Exercise {
	return models.Exercise{Name: "Press", Sets: sets, Reps: reps, Weight: weight}
}

func ids(workouts []models.Workout) []string {
	result := make([]string, 0, len(workouts))
	for _, w := range workouts {
		result = append(result, w.ID)
	}
	return result
}

func TestSummarize_SameDay(t *testing.T) {
	assert := assert.New(t)
	workouts := []models.Workout{
		workoutOf("1", "Pecho", "2024-03-01", press(3, 10, 50)),
		workoutOf("2", "Pierna", "2024-03-01", press(4, 8, 100), press(3, 12, 0)),
	}

	s := dashboard.Summarize(workouts)
	assert.Equal(2, s.TotalWorkouts)
	assert.Equal(3, s.TotalExercises)
	assert.Equal(1, s.ActiveDays)
	assert.Equal([]dashboard.TypeCount{{Type: "Pecho", Count: 1}, {Type: "Pierna", Count: 1}}, s.TypeDistribution)
	// Равенство: первый встреченный тип
	assert.Equal("Pecho", s.MostCommonType)
	// Равные даты: побеждает встреченная позже
	require.NotNil(t, s.MostRecent)
	assert.Equal("2", s.MostRecent.ID)
	assert.InDelta(1500.0+3200.0, s.TotalVolume, 0.0001)
}

func TestSummarize_Empty(t *testing.T) {
	s := dashboard.Summarize(nil)
	assert.Equal(t, dashboard.Summary{}, s)
	assert.Nil(t, dashboard.LastLogged(nil))
	assert.Empty(t, dashboard.Recent(nil, 0))
	assert.Empty(t, dashboard.FullHistory(nil))
}

func TestTypeDistribution_SumsToTotal(t *testing.T) {
	workouts := []models.Workout{
		workoutOf("1", "Espalda", "2024-03-01"),
		workoutOf("2", "Pecho", "2024-03-02"),
		workoutOf("3", "Pecho", "2024-03-03"),
		workoutOf("4", "Espalda", "2024-03-04"),
		workoutOf("5", "Pierna", "2024-03-05"),
	}

	distribution := dashboard.TypeDistribution(workouts)
	total := 0
	for _, tc := range distribution {
		total += tc.Count
	}
	assert.Equal(t, len(workouts), total)
	assert.Equal(t, "Espalda", distribution[0].Type)
	assert.Equal(t, "Espalda", dashboard.MostCommonType(distribution))
}

func TestRecent(t *testing.T) {
	workouts := []models.Workout{
		workoutOf("1", "A", "2024-03-05"),
		workoutOf("2", "A", "2024-03-01"),
		workoutOf("3", "A", "2024-03-09"),
		workoutOf("4", "A", "2024-03-02"),
		workoutOf("5", "A", "2024-03-03"),
		workoutOf("6", "A", "2024-03-04"),
		workoutOf("7", "A", "2024-03-08"),
	}

	tests := []struct {
		name     string
		input    []models.Workout
		n        int
		expected []string
	}{
		{name: "По умолчанию 5 последних", input: workouts, n: 0, expected: []string{"7", "6", "5", "4", "3"}},
		{name: "Явное n", input: workouts, n: 6, expected: []string{"7", "6", "5", "4", "3", "2"}},
		{name: "Меньше n записей", input: workouts[:3], n: 5, expected: []string{"3", "2", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(dashboard.Recent(tt.input, tt.n)))
		})
	}

	// Входной срез не меняется
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7"}, ids(workouts))
}

func TestFullHistory_StableByDate(t *testing.T) {
	workouts := []models.Workout{
		workoutOf("a", "A", "2024-03-01"),
		workoutOf("b", "A", "2024-03-05"),
		workoutOf("c", "A", "2024-03-01"),
		workoutOf("d", "A", "2024-03-05"),
		workoutOf("e", "A", "2023-12-31"),
	}

	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, ids(dashboard.FullHistory(workouts)))
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(workouts))
}

func TestFilterByType(t *testing.T) {
	workouts := []models.Workout{
		workoutOf("1", "Pecho", "2024-03-01"),
		workoutOf("2", "Pierna", "2024-03-01"),
		workoutOf("3", "Pecho", "2024-03-02"),
	}

	assert.Equal(t, []string{"1", "3"}, ids(dashboard.FilterByType(workouts, "Pecho")))
	assert.Equal(t, []string{"1", "2", "3"}, ids(dashboard.FilterByType(workouts, "")))
	assert.Empty(t, dashboard.FilterByType(workouts, "Brazo"))
}

func TestLastLogged(t *testing.T) {
	workouts := []models.Workout{
		workoutOf("1", "Pecho", "2024-03-09"),
		workoutOf("2", "Pierna", "2024-03-01"),
	}

	last := dashboard.LastLogged(workouts)
	require.NotNil(t, last)
	// Последняя по порядку хранения, а не по дате
	assert.Equal(t, "2", last.ID)
	assert.Equal(t, "1", dashboard.MostRecent(workouts).ID)
}
