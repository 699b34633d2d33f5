package location

import (
	"time"

	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/fix"
)

// Options — параметры подписки на поток координат.
type Options struct {
	// Interval — минимальный интервал между доставками фиксов подписчику.
	// Фиксы, пришедшие чаще, отбрасываются. Ноль — без прореживания.
	Interval time.Duration
}

// Subscription — активная подписка на поток координат.
type Subscription interface {
	// Unsubscribe останавливает доставку фиксов. Повторный вызов безопасен.
	Unsubscribe()
}

// Provider — внешний источник координат.
type Provider interface {
	// Subscribe начинает доставку фиксов обработчику. Обработчик вызывается
	// последовательно: следующий фикс не доставляется, пока не обработан
	// предыдущий.
	Subscribe(opts Options, handler func(fix.RawFix)) (Subscription, error)

	// LastKnown возвращает последний наблюдавшийся фикс или nil.
	LastKnown() *fix.RawFix
}
