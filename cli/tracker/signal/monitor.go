package signal

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/alert"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/types"
)

// DefaultThreshold — радиус погрешности в метрах, выше которого сигнал
// считается деградировавшим.
const DefaultThreshold = 50.0

// Monitor классифицирует фиксы по качеству сигнала и запрашивает
// предупреждение при деградации. Проверка выполняется для каждого
// принятого фикса независимо от переходов состояния сессии.
type Monitor struct {
	Notifier  alert.Notifier
	Threshold float64
}

// NewMonitor создаёт монитор с порогом по умолчанию.
func NewMonitor(notifier alert.Notifier) *Monitor {
	return &Monitor{Notifier: notifier, Threshold: DefaultThreshold}
}

// Evaluate проверяет точность фикса. Неизвестная точность деградацией
// не считается. При деградации запрашивается тактильный сигнал и
// best-effort уведомление с округлённой точностью; отказ планирования
// уведомления проглатывается и не прерывает обработку фикса.
func (m *Monitor) Evaluate(f types.PositionFix) bool {
	if f.Accuracy == types.AccuracyUnknown || f.Accuracy <= m.Threshold {
		return false
	}

	m.Notifier.HapticWarning()

	body := fmt.Sprintf("Current accuracy: %dm", int(math.Round(f.Accuracy)))
	if err := m.Notifier.ScheduleNotification("Poor GPS accuracy", body); err != nil {
		log.WithField("err", err).Warn("Не удалось запланировать уведомление о слабом сигнале")
	}

	return true
}
