package fix

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/types"
)

var now = time.Now // для подмены времени в тестах

var validate = validator.New()

// RawFix — сырой фикс от источника координат до валидации.
// Указатели отличают отсутствующее поле от нулевого значения.
type RawFix struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Speed     *float64 `json:"speed"`
	Accuracy  *float64 `json:"accuracy"`
	Timestamp *int64   `json:"timestamp"`
}

// Normalize проверяет сырой фикс и приводит его к внутреннему представлению.
// Широта и долгота обязательны и сверяются с допустимыми диапазонами.
// Отсутствующая или отрицательная скорость приводится к нулю, отсутствующая
// точность — к types.AccuracyUnknown, отсутствующая метка времени — к текущей.
// Побочных эффектов нет.
func Normalize(raw RawFix) (types.PositionFix, error) {
	if raw.Latitude == nil || raw.Longitude == nil {
		return types.PositionFix{}, fmt.Errorf("в фиксе отсутствуют координаты")
	}

	normalized := types.PositionFix{
		Latitude:  *raw.Latitude,
		Longitude: *raw.Longitude,
		Accuracy:  types.AccuracyUnknown,
		Timestamp: now().Unix(),
	}

	if raw.Speed != nil && *raw.Speed > 0 {
		normalized.Speed = *raw.Speed
	}
	if raw.Accuracy != nil && *raw.Accuracy >= 0 {
		normalized.Accuracy = *raw.Accuracy
	}
	if raw.Timestamp != nil {
		normalized.Timestamp = *raw.Timestamp
	}

	if err := validate.Struct(normalized); err != nil {
		return types.PositionFix{}, fmt.Errorf("некорректный фикс: %w", err)
	}

	return normalized, nil
}
