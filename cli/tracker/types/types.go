package types

// AccuracyUnknown — значение точности, когда источник её не сообщил.
// Отрицательный радиус погрешности невозможен, поэтому используется как сентинел.
const AccuracyUnknown float64 = -1

// PositionFix — одно наблюдение GPS после нормализации.
type PositionFix struct {
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`
	Speed     float64 `validate:"gte=0"` // м/с
	Accuracy  float64 // м, радиус погрешности; AccuracyUnknown, если не сообщена
	Timestamp int64   // unix-секунды
}

// Identity — привязка сессии: транспорт обязателен, маршрут опционален.
type Identity struct {
	BusID   string
	RouteID string // пустая строка — маршрут не выбран
}

// ActivityEntry — усечённое представление фикса для журнала активности.
type ActivityEntry struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Speed     float64 `json:"speed"`
	Accuracy  float64 `json:"accuracy"`
	Timestamp int64   `json:"timestamp"`
}

// NewActivityEntry собирает запись журнала из нормализованного фикса.
func NewActivityEntry(fix PositionFix) ActivityEntry {
	return ActivityEntry{
		Latitude:  fix.Latitude,
		Longitude: fix.Longitude,
		Speed:     fix.Speed,
		Accuracy:  fix.Accuracy,
		Timestamp: fix.Timestamp,
	}
}
