// Package dashboard считает показатели по тренировкам одного пользователя.
// Функции не изменяют входные данные и не выполняют ввод-вывод.
package dashboard

import (
	"slices"

	"github.com/fitlog/fitlog/models"
)

// DefaultRecent - сколько последних тренировок показывает панель.
const DefaultRecent = 5

// TypeCount - количество тренировок одного типа.
type TypeCount struct {
	Type  string
	Count int
}

// Summary - сводка для панели пользователя.
type Summary struct {
	TotalWorkouts    int
	TotalExercises   int
	ActiveDays       int
	MostRecent       *models.Workout
	TypeDistribution []TypeCount // В порядке первого появления типа
	MostCommonType   string
	TotalVolume      float64
}

// Summarize считает сводку по тренировкам.
func Summarize(workouts []models.Workout) Summary {
	days := make(map[string]struct{}, len(workouts))
	s := Summary{TotalWorkouts: len(workouts)}
	for _, w := range workouts {
		s.TotalExercises += len(w.Exercises)
		days[w.Date] = struct{}{}
	}
	s.ActiveDays = len(days)
	s.MostRecent = MostRecent(workouts)
	s.TypeDistribution = TypeDistribution(workouts)
	s.MostCommonType = MostCommonType(s.TypeDistribution)
	s.TotalVolume = TotalVolume(workouts)
	return s
}

// MostRecent возвращает тренировку с наибольшей датой.
// При равных датах выигрывает встреченная позже. Для пустого списка nil.
func MostRecent(workouts []models.Workout) *models.Workout {
	var best *models.Workout
	for i := range workouts {
		if best == nil || workouts[i].Date >= best.Date {
			w := workouts[i]
			best = &w
		}
	}
	return best
}

// TypeDistribution считает тренировки по типам в порядке первого появления.
func TypeDistribution(workouts []models.Workout) []TypeCount {
	index := make(map[string]int)
	var counts []TypeCount
	for _, w := range workouts {
		i, ok := index[w.Type]
		if !ok {
			index[w.Type] = len(counts)
			counts = append(counts, TypeCount{Type: w.Type})
			i = len(counts) - 1
		}
		counts[i].Count++
	}
	return counts
}

// MostCommonType возвращает самый частый тип. При равенстве - первый по порядку.
func MostCommonType(distribution []TypeCount) string {
	best := TypeCount{}
	for _, tc := range distribution {
		if tc.Count > best.Count {
			best = tc
		}
	}
	return best.Type
}

// Recent возвращает последние n тренировок в порядке хранения, новые первыми.
// n <= 0 означает DefaultRecent.
func Recent(workouts []models.Workout, n int) []models.Workout {
	if n <= 0 {
		n = DefaultRecent
	}
	start := max(len(workouts)-n, 0)
	recent := slices.Clone(workouts[start:])
	slices.Reverse(recent)
	return recent
}

// FullHistory возвращает все тренировки, отсортированные по дате по убыванию.
// Тренировки одного дня сохраняют порядок добавления.
func FullHistory(workouts []models.Workout) []models.Workout {
	history := slices.Clone(workouts)
	slices.SortStableFunc(history, func(a, b models.Workout) int {
		switch {
		case a.Date > b.Date:
			return -1
		case a.Date < b.Date:
			return 1
		default:
			return 0
		}
	})
	return history
}

// FilterByType оставляет тренировки указанного типа. Пустой тип означает все.
func FilterByType(workouts []models.Workout, typ string) []models.Workout {
	if typ == "" {
		return slices.Clone(workouts)
	}
	var result []models.Workout
	for _, w := range workouts {
		if w.Type == typ {
			result = append(result, w)
		}
	}
	return result
}

// LastLogged возвращает последнюю добавленную тренировку или nil.
func LastLogged(workouts []models.Workout) *models.Workout {
	if len(workouts) == 0 {
		return nil
	}
	w := workouts[len(workouts)-1]
	return &w
}

// TotalVolume считает суммарный тоннаж: подходы * повторения * вес.
func TotalVolume(workouts []models.Workout) float64 {
	var volume float64
	for _, w := range workouts {
		for _, e := range w.Exercises {
			volume += float64(e.Sets*e.Reps) * e.Weight
		}
	}
	return volume
}
