package activity

import (
	"encoding/json"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/kv"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/types"
)

// Ключ журнала в key-value хранилище.
const storageKey = "activityLog"

// Журнал хранит не больше трёх последних записей.
const capacity = 3

// Log — ограниченный журнал последних фиксов. Живёт дольше сессии:
// не сбрасывается при остановке отслеживания и переживает перезапуск
// процесса через key-value хранилище.
type Log struct {
	store kv.Store

	mu      sync.Mutex
	entries []types.ActivityEntry
}

// NewLog создаёт журнал и один раз поднимает сохранённые записи из
// хранилища. Отсутствующее или нечитаемое содержимое — пустой журнал.
func NewLog(store kv.Store) *Log {
	l := &Log{store: store}

	raw, ok, err := store.Get(storageKey)
	if err != nil {
		log.WithField("err", err).Warn("Не удалось прочитать журнал активности")
		return l
	}
	if !ok {
		return l
	}

	if err := json.Unmarshal([]byte(raw), &l.entries); err != nil {
		log.WithField("err", err).Warn("Журнал активности повреждён, содержимое отброшено")
		l.entries = nil
	}
	if len(l.entries) > capacity {
		l.entries = l.entries[:capacity]
	}

	return l
}

// Record добавляет запись в начало журнала, усекает его до трёх элементов
// и синхронно сохраняет результат в хранилище.
func (l *Log) Record(entry types.ActivityEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append([]types.ActivityEntry{entry}, l.entries...)
	if len(l.entries) > capacity {
		l.entries = l.entries[:capacity]
	}

	raw, err := json.Marshal(l.entries)
	if err != nil {
		return fmt.Errorf("ошибка сериализации журнала активности: %w", err)
	}
	if err := l.store.Set(storageKey, string(raw)); err != nil {
		return fmt.Errorf("не удалось сохранить журнал активности: %w", err)
	}

	return nil
}

// Entries возвращает копию журнала, самые свежие записи первыми.
func (l *Log) Entries() []types.ActivityEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := make([]types.ActivityEntry, len(l.entries))
	copy(entries, l.entries)
	return entries
}
