package catalog

import (
	"fmt"
	"sync"

	cron "github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Пути каталожных документов в удалённом хранилище.
const (
	busesPath  = "busIds"
	routesPath = "routes"
)

// Entry — единица каталога, приведённая к единому виду.
type Entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Source — читающая сторона удалённого хранилища каталогов.
type Source interface {
	// ReadOnce возвращает JSON-документ по пути, если он есть.
	ReadOnce(path string) (string, bool, error)

	// SubscribeValue доставляет новые версии документа по мере изменения.
	// Возвращённая функция снимает подписку.
	SubscribeValue(path string, onChange func(string)) (func(), error)
}

// Catalog — кэш списков транспорта и маршрутов. Обновляется по подписке
// на изменения и, на случай потерянных уведомлений, ежедневно по расписанию.
type Catalog struct {
	Source Source

	mu     sync.Mutex
	buses  []Entry
	routes []Entry

	unsubscribes  []func()
	cronScheduler *cron.Cron
}

// Initialize загружает оба каталога, подписывается на их изменения и
// планирует ежедневное обновление кэша.
func (c *Catalog) Initialize() error {
	c.Refresh()

	busesUnsub, err := c.Source.SubscribeValue(busesPath, func(doc string) {
		c.mu.Lock()
		c.buses = normalizeBuses(doc)
		c.mu.Unlock()
	})
	if err != nil {
		return fmt.Errorf("не удалось подписаться на каталог транспорта: %w", err)
	}
	c.unsubscribes = append(c.unsubscribes, busesUnsub)

	routesUnsub, err := c.Source.SubscribeValue(routesPath, func(doc string) {
		c.mu.Lock()
		c.routes = normalizeRoutes(doc)
		c.mu.Unlock()
	})
	if err != nil {
		return fmt.Errorf("не удалось подписаться на каталог маршрутов: %w", err)
	}
	c.unsubscribes = append(c.unsubscribes, routesUnsub)

	c.cronScheduler = cron.New()
	if _, err := c.cronScheduler.AddFunc("0 3 * * *", func() {
		log.Info("Запуск запланированного обновления кэша каталогов")
		c.Refresh()
	}); err != nil {
		return fmt.Errorf("ошибка при настройке cron-задачи: %w", err)
	}
	c.cronScheduler.Start()
	log.Info("Запланировано ежедневное обновление кэша каталогов в 03:00")

	return nil
}

// Shutdown снимает подписки и останавливает планировщик.
func (c *Catalog) Shutdown() {
	for _, unsubscribe := range c.unsubscribes {
		unsubscribe()
	}
	c.unsubscribes = nil

	if c.cronScheduler != nil {
		c.cronScheduler.Stop()
		log.Info("Cron-планировщик остановлен")
	}
}

// Refresh перечитывает оба каталога. Отказ чтения оставляет прежний кэш,
// отсутствующий документ заменяется списком по умолчанию.
func (c *Catalog) Refresh() {
	if doc, ok, err := c.Source.ReadOnce(busesPath); err != nil {
		log.WithField("err", err).Error("Ошибка чтения каталога транспорта")
	} else {
		buses := defaultBuses()
		if ok {
			buses = normalizeBuses(doc)
		}
		c.mu.Lock()
		c.buses = buses
		c.mu.Unlock()
	}

	if doc, ok, err := c.Source.ReadOnce(routesPath); err != nil {
		log.WithField("err", err).Error("Ошибка чтения каталога маршрутов")
	} else {
		routes := defaultRoutes()
		if ok {
			routes = normalizeRoutes(doc)
		}
		c.mu.Lock()
		c.routes = routes
		c.mu.Unlock()
	}
}

// Buses возвращает копию каталога транспорта.
func (c *Catalog) Buses() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	buses := make([]Entry, len(c.buses))
	copy(buses, c.buses)
	return buses
}

// Routes возвращает копию каталога маршрутов.
func (c *Catalog) Routes() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	routes := make([]Entry, len(c.routes))
	copy(routes, c.routes)
	return routes
}
