package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fitlog/fitlog/models"
)

// parseExercises разбирает строку вида "Press banca 3x10x50; Dominadas 4x8".
// Упражнения разделяются ';' или переводом строки. Последнее слово каждого
// упражнения - подходы x повторения [x вес], вес по умолчанию 0.
func parseExercises(raw string) ([]models.Exercise, error) {
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ';' || r == '\n' })

	var exercises []models.Exercise
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx := strings.LastIndexAny(part, " \t")
		if idx < 0 {
			return nil, fmt.Errorf("упражнение '%s': ожидается 'название подходыxповторения[xвес]'", part)
		}
		name := strings.TrimSpace(part[:idx])
		dims := strings.Split(strings.ToLower(part[idx+1:]), "x")
		if len(dims) < 2 || len(dims) > 3 {
			return nil, fmt.Errorf("упражнение '%s': ожидается подходыxповторения[xвес]", part)
		}

		sets, err := strconv.Atoi(dims[0])
		if err != nil {
			return nil, fmt.Errorf("упражнение '%s': некорректное число подходов", part)
		}
		reps, err := strconv.Atoi(dims[1])
		if err != nil {
			return nil, fmt.Errorf("упражнение '%s': некорректное число повторений", part)
		}
		var weight float64
		if len(dims) == 3 {
			weight, err = strconv.ParseFloat(strings.ReplaceAll(dims[2], ",", "."), 64)
			if err != nil {
				return nil, fmt.Errorf("упражнение '%s': некорректный вес", part)
			}
		}
		exercises = append(exercises, models.Exercise{Name: name, Sets: sets, Reps: reps, Weight: weight})
	}
	return exercises, nil
}

// parseOptionalInt разбирает необязательное целое поле формы.
func parseOptionalInt(label, raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil //nolint:nilnil // Пустое поле - значение не задано
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("поле '%s': ожидается целое число", label)
	}
	return &v, nil
}
