package alert

import (
	log "github.com/sirupsen/logrus"
)

// Notifier — поставщик локальных предупреждений для водителя.
// Обе операции best-effort: вызывающая сторона вправе игнорировать ошибку.
type Notifier interface {
	// HapticWarning запрашивает короткий тактильный сигнал.
	HapticWarning()

	// ScheduleNotification пытается запланировать уведомление пользователю.
	ScheduleNotification(title, body string) error
}

// Console — реализация поверх журнала процесса. Используется, когда трекер
// работает как демон без устройства вывода уведомлений.
type Console struct{}

func (Console) HapticWarning() {
	log.Warn("Запрошен тактильный сигнал")
}

func (Console) ScheduleNotification(title, body string) error {
	log.WithField("title", title).Info(body)
	return nil
}
