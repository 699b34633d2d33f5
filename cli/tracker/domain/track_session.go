package domain

import (
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/activity"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/fix"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/kv"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/location"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/session"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/signal"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/storage"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/types"
)

var now = time.Now // для подмены времени в тестах

// Ключи сохранённой привязки в key-value хранилище.
const (
	keyBusID   = "busId"
	keyRouteID = "routeId"
)

// Состояния сессии отслеживания.
const (
	StateIdle     = "idle"
	StateTracking = "tracking"
)

// TrackSession — машина состояний сессии отслеживания. Владеет привязкой
// (транспорт и маршрут), статистикой сессии и подпиской на поток координат;
// всё это изменяется только через Start/Stop/Select* и конвейер фиксов.
type TrackSession struct {
	Permission  Permission
	Provider    location.Provider
	Accumulator *session.Accumulator
	Activity    *activity.Log
	Monitor     *signal.Monitor
	Publisher   *storage.Publisher
	KV          kv.Store
	Options     location.Options

	mu       sync.Mutex
	tracking bool
	identity types.Identity
	sub      location.Subscription
	lastFix  *types.PositionFix
}

// Initialize поднимает сохранённую привязку из key-value хранилища.
// Отсутствие сохранённых значений — нормальная ситуация.
func (s *TrackSession) Initialize() error {
	busID, ok, err := s.KV.Get(keyBusID)
	if err != nil {
		return fmt.Errorf("не удалось прочитать сохранённый транспорт: %w", err)
	}
	if ok {
		s.identity.BusID = busID
	}

	routeID, ok, err := s.KV.Get(keyRouteID)
	if err != nil {
		return fmt.Errorf("не удалось прочитать сохранённый маршрут: %w", err)
	}
	if ok {
		s.identity.RouteID = routeID
	}

	return nil
}

// SelectBus привязывает транспорт. Смена привязки во время отслеживания
// запрещена. Выбор сохраняется в key-value хранилище; отказ сохранения
// логируется, но выбор не отменяет.
func (s *TrackSession) SelectBus(busID string) error {
	if busID == "" {
		return fmt.Errorf("идентификатор транспорта не может быть пустым")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tracking {
		return fmt.Errorf("нельзя менять транспорт во время отслеживания")
	}

	s.identity.BusID = busID
	if err := s.KV.Set(keyBusID, busID); err != nil {
		log.WithField("err", err).Error("Не удалось сохранить выбранный транспорт")
	}
	return nil
}

// SelectRoute привязывает маршрут; пустая строка снимает привязку.
func (s *TrackSession) SelectRoute(routeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tracking {
		return fmt.Errorf("нельзя менять маршрут во время отслеживания")
	}

	s.identity.RouteID = routeID
	if err := s.KV.Set(keyRouteID, routeID); err != nil {
		log.WithField("err", err).Error("Не удалось сохранить выбранный маршрут")
	}
	return nil
}

// Start переводит сессию из Idle в Tracking: проверяет разрешение и
// привязку, сбрасывает статистику, подписывается на поток координат и
// дополнительно прогоняет через конвейер последний известный фикс, если
// он есть. При любом отказе состояние остаётся Idle.
func (s *TrackSession) Start() error {
	s.mu.Lock()

	if s.tracking {
		s.mu.Unlock()
		return fmt.Errorf("отслеживание уже запущено")
	}

	granted, err := s.Permission.Request()
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("не удалось запросить разрешение: %w", err)
	}
	if !granted {
		s.mu.Unlock()
		return fmt.Errorf("нет разрешения на геолокацию")
	}

	if s.identity.BusID == "" {
		s.mu.Unlock()
		return fmt.Errorf("не выбран транспорт")
	}

	s.Accumulator.Start(now())

	sub, err := s.Provider.Subscribe(s.Options, s.HandleFix)
	if err != nil {
		s.Accumulator.Reset()
		s.mu.Unlock()
		return fmt.Errorf("не удалось начать приём координат: %w", err)
	}

	s.sub = sub
	s.tracking = true
	identity := s.identity
	s.mu.Unlock()

	log.WithField("bus_id", identity.BusID).Info("Отслеживание запущено")

	// Немедленный разовый фикс в дополнение к подписке. Он мог быть снят
	// раньше первого фикса подписки — конвейер этого не предполагает.
	if last := s.Provider.LastKnown(); last != nil {
		s.HandleFix(*last)
	}

	return nil
}

// Stop переводит сессию в Idle: отписывается от потока координат и
// сбрасывает статистику. Идемпотентна и никогда не завершается ошибкой;
// фикс, уже находящийся в конвейере, дообрабатывается, новые не принимаются.
func (s *TrackSession) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.tracking {
		return
	}

	if s.sub != nil {
		s.sub.Unsubscribe()
		s.sub = nil
	}

	s.tracking = false
	s.Accumulator.Reset()

	log.Info("Отслеживание остановлено")
}

// HandleFix прогоняет один сырой фикс через конвейер: нормализация →
// накопление → журнал активности → контроль качества сигнала → публикация.
// Фиксы обрабатываются строго по одному; после остановки сессии вызов —
// no-op. Некорректный фикс отбрасывается молча, отказы коллабораторов
// логируются и не прерывают сессию.
func (s *TrackSession) HandleFix(raw fix.RawFix) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.tracking {
		return
	}

	normalized, err := fix.Normalize(raw)
	if err != nil {
		log.WithField("err", err).Debug("Фикс отброшен")
		return
	}

	s.Accumulator.Accumulate(normalized)

	if err := s.Activity.Record(types.NewActivityEntry(normalized)); err != nil {
		log.WithField("err", err).Error("Ошибка сохранения журнала активности")
	}

	s.Monitor.Evaluate(normalized)

	_ = s.Publisher.Publish(s.identity, normalized)

	s.lastFix = &normalized
}

// State возвращает текущее состояние машины.
func (s *TrackSession) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tracking {
		return StateTracking
	}
	return StateIdle
}

// Identity возвращает текущую привязку.
func (s *TrackSession) Identity() types.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// Stats возвращает статистику текущей сессии.
func (s *TrackSession) Stats() session.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Accumulator.Stats()
}

// LastFix возвращает последний обработанный фикс или nil.
// Он сохраняется и после остановки сессии.
func (s *TrackSession) LastFix() *types.PositionFix {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastFix == nil {
		return nil
	}
	last := *s.lastFix
	return &last
}
