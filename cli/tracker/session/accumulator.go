package session

import (
	"time"

	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/types"
)

// Point — последняя учтённая точка сессии.
type Point struct {
	Latitude  float64
	Longitude float64
	Timestamp int64
}

// Stats — накопленная статистика сессии отслеживания.
type Stats struct {
	DistanceMeters float64   `json:"distance_meters"`
	AvgSpeed       float64   `json:"avg_speed"` // фактически последняя мгновенная скорость, см. Accumulate
	StartTime      time.Time `json:"start_time"`
}

// Accumulator накапливает пройденное расстояние и производную скорость
// в пределах одной сессии. Принадлежит машине состояний сессии и
// изменяется только из конвейера обработки фиксов.
type Accumulator struct {
	stats Stats
	prev  *Point
}

// Start сбрасывает статистику к нулю и фиксирует момент начала сессии.
func (a *Accumulator) Start(at time.Time) {
	a.stats = Stats{StartTime: at}
	a.prev = nil
}

// Reset возвращает аккумулятор к нулевому состоянию (остановка сессии).
func (a *Accumulator) Reset() {
	a.stats = Stats{}
	a.prev = nil
}

// Accumulate учитывает очередной фикс и возвращает обновлённую статистику.
// Расстояние до предыдущей точки считается по гаверсинусу; для первого
// фикса сессии вклад равен нулю. Поле AvgSpeed намеренно хранит
// мгновенную скорость последнего фикса, как только накоплено ненулевое
// расстояние — так вела себя исходная система, название сохранено.
// Предыдущая точка обновляется всегда; монотонность меток времени
// не предполагается.
func (a *Accumulator) Accumulate(f types.PositionFix) Stats {
	if a.prev != nil {
		a.stats.DistanceMeters += types.Distance(a.prev.Latitude, a.prev.Longitude, f.Latitude, f.Longitude)
	}

	if a.stats.DistanceMeters > 0 {
		a.stats.AvgSpeed = f.Speed
	} else {
		a.stats.AvgSpeed = 0
	}

	a.prev = &Point{Latitude: f.Latitude, Longitude: f.Longitude, Timestamp: f.Timestamp}

	return a.stats
}

// Stats возвращает текущую статистику сессии.
func (a *Accumulator) Stats() Stats {
	return a.stats
}
