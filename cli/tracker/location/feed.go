package location

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/fix"
)

// Feed — источник координат поверх TCP: устройство подключается и шлёт
// фиксы построчно в JSON. Одновременно поддерживается одна подписка.
type Feed struct {
	addr string
	ttl  time.Duration

	// deliverMu сериализует вызовы обработчика между соединениями.
	deliverMu sync.Mutex

	mu           sync.Mutex
	l            net.Listener
	conns        map[net.Conn]struct{}
	handler      func(fix.RawFix)
	interval     time.Duration
	lastSeen     *fix.RawFix
	lastDelivery time.Time
}

// NewFeed создаёт источник, слушающий addr. ttl — тайм-аут чтения
// для соединения без данных; ноль отключает тайм-аут.
func NewFeed(addr string, ttl time.Duration) *Feed {
	return &Feed{addr: addr, ttl: ttl, conns: map[net.Conn]struct{}{}}
}

func (f *Feed) Subscribe(opts Options, handler func(fix.RawFix)) (Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.l != nil {
		return nil, fmt.Errorf("подписка уже активна")
	}

	l, err := net.Listen("tcp", f.addr)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть соединение: %w", err)
	}

	f.l = l
	f.handler = handler
	f.interval = opts.Interval
	f.lastDelivery = time.Time{}

	log.WithField("addr", l.Addr().String()).Info("Запущен приём координат")

	go f.acceptLoop(l)

	return &feedSubscription{feed: f}, nil
}

// LastKnown возвращает последний фикс, пришедший из сети, даже если он
// был отброшен прореживанием.
func (f *Feed) LastKnown() *fix.RawFix {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.lastSeen == nil {
		return nil
	}
	last := *f.lastSeen
	return &last
}

// Addr возвращает фактический адрес слушателя активной подписки.
func (f *Feed) Addr() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.l == nil {
		return ""
	}
	return f.l.Addr().String()
}

func (f *Feed) acceptLoop(l net.Listener) {
	for {
		conn, err := l.Accept()
		if err != nil {
			// слушатель закрыт при отписке
			return
		}

		f.mu.Lock()
		if f.handler == nil {
			f.mu.Unlock()
			conn.Close()
			continue
		}
		f.conns[conn] = struct{}{}
		f.mu.Unlock()

		go f.handleConn(conn)
	}
}

func (f *Feed) handleConn(conn net.Conn) {
	defer func() {
		conn.Close()
		f.mu.Lock()
		delete(f.conns, conn)
		f.mu.Unlock()
	}()

	log.WithField("ip", conn.RemoteAddr()).Info("Установлено соединение")

	scanner := bufio.NewScanner(conn)
	for {
		if f.ttl > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(f.ttl))
		} else {
			_ = conn.SetReadDeadline(time.Time{})
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				if ne, ok := err.(net.Error); ok && ne.Timeout() {
					log.WithField("ip", conn.RemoteAddr()).Warn("Таймаут чтения")
				} else {
					log.WithField("err", err).Error("Ошибка при получении")
				}
			} else {
				log.WithField("ip", conn.RemoteAddr()).Info("Клиент закрыл соединение")
			}
			return
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var raw fix.RawFix
		if err := json.Unmarshal(line, &raw); err != nil {
			log.WithField("err", err).Warn("Строка не соответствует формату фикса")
			continue
		}

		f.deliver(raw)
	}
}

// deliver сериализует доставку: обработчик вызывается под deliverMu,
// поэтому два фикса никогда не обрабатываются одновременно.
func (f *Feed) deliver(raw fix.RawFix) {
	f.deliverMu.Lock()
	defer f.deliverMu.Unlock()

	f.mu.Lock()

	seen := raw
	f.lastSeen = &seen

	handler := f.handler
	if handler == nil {
		f.mu.Unlock()
		return
	}
	if f.interval > 0 && !f.lastDelivery.IsZero() && time.Since(f.lastDelivery) < f.interval {
		f.mu.Unlock()
		return
	}
	f.lastDelivery = time.Now()
	f.mu.Unlock()

	handler(raw)
}

func (f *Feed) unsubscribe() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.l == nil {
		return
	}

	_ = f.l.Close()
	f.l = nil
	f.handler = nil

	for conn := range f.conns {
		_ = conn.Close()
	}
	f.conns = map[net.Conn]struct{}{}

	log.Info("Приём координат остановлен")
}

type feedSubscription struct {
	feed *Feed
	once sync.Once
}

func (s *feedSubscription) Unsubscribe() {
	s.once.Do(s.feed.unsubscribe)
}
