package catalog

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisSource — источник каталогов поверх Redis: документы лежат по своим
// путям как строки, уведомления об изменениях приходят через Pub/Sub
// в каналы "catalog.<путь>".
type RedisSource struct {
	client *redis.Client
}

// NewRedisSource подключается к Redis по параметрам секции конфига:
// host, port, password.
func NewRedisSource(params map[string]string) (*RedisSource, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", params["host"], params["port"]),
		Password: params["password"],
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("Redis недоступен: %w", err)
	}

	return &RedisSource{client: client}, nil
}

func (s *RedisSource) ReadOnce(path string) (string, bool, error) {
	doc, err := s.client.Get(context.Background(), path).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("ошибка чтения каталога: %w", err)
	}
	return doc, true, nil
}

func (s *RedisSource) SubscribeValue(path string, onChange func(string)) (func(), error) {
	pubsub := s.client.Subscribe(context.Background(), "catalog."+path)

	if _, err := pubsub.Receive(context.Background()); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("не удалось подписаться на изменения каталога: %w", err)
	}

	go func() {
		for msg := range pubsub.Channel() {
			onChange(msg.Payload)
		}
	}()

	return func() { _ = pubsub.Close() }, nil
}

// Close закрывает соединение с Redis.
func (s *RedisSource) Close() error {
	return s.client.Close()
}
