package kv

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
)

// File — хранилище в одном JSON-файле. Аналог локального хранилища
// мобильного устройства: несколько мелких записей, синхронная запись.
type File struct {
	path string

	mu   sync.Mutex
	data map[string]string
}

// NewFile загружает существующий файл, если он есть. Повреждённое или
// отсутствующее содержимое трактуется как пустое хранилище, а не как ошибка.
func NewFile(path string) *File {
	if path == "" {
		path = "tracker-kv.json"
	}

	f := &File{path: path, data: map[string]string{}}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithField("err", err).Warn("Не удалось прочитать файл key-value хранилища")
		}
		return f
	}

	if err := json.Unmarshal(raw, &f.data); err != nil {
		log.WithField("err", err).Warn("Файл key-value хранилища повреждён, содержимое отброшено")
		f.data = map[string]string{}
	}

	return f
}

func (f *File) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	value, ok := f.data[key]
	return value, ok, nil
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.data[key] = value

	raw, err := json.Marshal(f.data)
	if err != nil {
		return fmt.Errorf("ошибка сериализации key-value хранилища: %w", err)
	}

	dir := filepath.Dir(f.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("не удалось создать директорию хранилища: %w", err)
		}
	}

	if err := os.WriteFile(f.path, raw, 0644); err != nil {
		return fmt.Errorf("не удалось записать файл хранилища: %w", err)
	}

	return nil
}
