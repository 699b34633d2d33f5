package location

import (
	"sync"

	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/fix"
)

// Manual — источник координат с ручной подачей фиксов. Используется в
// тестах и утилитах, где сетевой канал не нужен.
type Manual struct {
	// SubscribeErr имитирует отказ запуска подписки (например, GPS недоступен).
	SubscribeErr error

	mu         sync.Mutex
	handler    func(fix.RawFix)
	last       *fix.RawFix
	subscribed bool
}

func (m *Manual) Subscribe(opts Options, handler func(fix.RawFix)) (Subscription, error) {
	if m.SubscribeErr != nil {
		return nil, m.SubscribeErr
	}

	m.mu.Lock()
	m.handler = handler
	m.subscribed = true
	m.mu.Unlock()

	return &manualSubscription{provider: m}, nil
}

func (m *Manual) LastKnown() *fix.RawFix {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.last == nil {
		return nil
	}
	last := *m.last
	return &last
}

// Push подаёт фикс: он запоминается как последний известный и, при
// активной подписке, доставляется обработчику синхронно.
func (m *Manual) Push(raw fix.RawFix) {
	m.mu.Lock()
	seen := raw
	m.last = &seen
	handler := m.handler
	subscribed := m.subscribed
	m.mu.Unlock()

	if subscribed && handler != nil {
		handler(raw)
	}
}

// Subscribed сообщает, есть ли активная подписка.
func (m *Manual) Subscribed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.subscribed
}

type manualSubscription struct {
	provider *Manual
}

func (s *manualSubscription) Unsubscribe() {
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()

	s.provider.handler = nil
	s.provider.subscribed = false
}
