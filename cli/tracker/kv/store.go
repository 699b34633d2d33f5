package kv

import "errors"

var ErrUnknownStore = errors.New("неизвестный тип key-value хранилища")

// Store — локальное key-value хранилище небольших строковых записей.
// Значения непрозрачны: сериализацию выполняет вызывающая сторона.
type Store interface {
	// Get возвращает значение и признак его наличия.
	Get(key string) (string, bool, error)

	// Set сохраняет значение синхронно.
	Set(key, value string) error
}

// New создаёт хранилище по секции конфига.
func New(params map[string]string) (Store, error) {
	switch params["type"] {
	case "", "file":
		return NewFile(params["path"]), nil
	case "redis":
		return NewRedis(params)
	default:
		return nil, ErrUnknownStore
	}
}
