package storage

import (
	"errors"

	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/storage/store/mysql"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/storage/store/nats"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/storage/store/postgresql"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/storage/store/rabbitmq"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/storage/store/redis"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/storage/store/tarantool"
)

var ErrInvalidStorage = errors.New("storage not found")
var ErrUnknownStorage = errors.New("storage isn't support yet")

type Store interface {
	Connector
	Saver
}

// Saver интерфейс для подключения внешних хранилищ
type Saver interface {
	// Save перезаписывает запись по её ключу целиком: предыдущая версия
	// не сохраняется, победитель при гонке — последняя запись
	Save(interface {
		Key() string
		ToBytes() ([]byte, error)
	}) error
}

// Connector интерфейс для подключения внешних хранилищ
type Connector interface {
	// Init установка соединения с хранилищем
	Init(map[string]string) error

	// Close закрытие соединения с хранилищем
	Close() error
}

// Repository набор выходных хранилищ
type Repository struct {
	storages []Saver
}

// AddStore добавляет хранилище для сохранения данных
func (r *Repository) AddStore(s Saver) {
	r.storages = append(r.storages, s)
}

// Save перезаписывает состояние во всех установленных хранилищах
func (r *Repository) Save(m interface {
	Key() string
	ToBytes() ([]byte, error)
}) error {
	for _, store := range r.storages {
		if err := store.Save(m); err != nil {
			return err
		}
	}
	return nil
}

// LoadStorages загружает хранилища из структуры конфига
func (r *Repository) LoadStorages(storages map[string]map[string]string) error {
	if len(storages) == 0 {
		return ErrInvalidStorage
	}

	var db Store
	for store, params := range storages {
		switch store {
		case "rabbitmq":
			db = &rabbitmq.Connector{}
		case "postgresql":
			db = &postgresql.Connector{}
		case "nats":
			db = &nats.Connector{}
		case "tarantool":
			db = &tarantool.Connector{}
		case "redis":
			db = &redis.Connector{}
		case "mysql":
			db = &mysql.Connector{}
		default:
			return ErrUnknownStorage
		}

		if err := db.Init(params); err != nil {
			return err
		}

		r.AddStore(db)
	}
	return nil
}

// NewRepository создает пустой репозиторий
func NewRepository() *Repository {
	return &Repository{}
}
