package storage

import (
	log "github.com/sirupsen/logrus"

	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/types"
)

// Publisher публикует последнее состояние транспорта во внешние хранилища.
// Публикация best-effort: отказ логируется и не распространяется дальше,
// повторов и очереди нет — следующий фикс публикуется независимо.
type Publisher struct {
	Store Saver
}

// Publish собирает запись из фикса и привязки и перезаписывает её по ключу
// транспорта. Без выбранного транспорта публикация — no-op.
// Возвращаемую ошибку вызывающая сторона вправе игнорировать: она уже
// залогирована здесь.
func (p *Publisher) Publish(identity types.Identity, f types.PositionFix) error {
	if identity.BusID == "" {
		return nil
	}

	state := &RemoteState{
		Latitude:  f.Latitude,
		Longitude: f.Longitude,
		Speed:     f.Speed,
		Accuracy:  f.Accuracy,
		Timestamp: f.Timestamp,
		BusID:     identity.BusID,
	}
	if identity.RouteID != "" {
		routeID := identity.RouteID
		state.RouteID = &routeID
	}

	if err := p.Store.Save(state); err != nil {
		log.WithField("err", err).WithField("bus_id", identity.BusID).Error("Ошибка публикации состояния транспорта")
		return err
	}

	return nil
}
