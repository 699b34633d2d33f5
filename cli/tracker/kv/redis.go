package kv

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
)

// Redis — key-value хранилище поверх Redis. Используется, когда трекер
// работает без устойчивой локальной файловой системы.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis подключается к Redis по параметрам секции конфига:
// host, port, password, db, prefix.
func NewRedis(params map[string]string) (*Redis, error) {
	dbIndex := 0
	if params["db"] != "" {
		var err error
		if dbIndex, err = strconv.Atoi(params["db"]); err != nil {
			return nil, fmt.Errorf("не удалось получить номер базы Redis: %w", err)
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     params["host"] + ":" + params["port"],
		Password: params["password"],
		DB:       dbIndex,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("Redis недоступен: %w", err)
	}

	return &Redis{client: client, prefix: params["prefix"]}, nil
}

func (r *Redis) Get(key string) (string, bool, error) {
	value, err := r.client.Get(context.Background(), r.prefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("ошибка чтения из Redis: %w", err)
	}
	return value, true, nil
}

func (r *Redis) Set(key, value string) error {
	if err := r.client.Set(context.Background(), r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("ошибка записи в Redis: %w", err)
	}
	return nil
}

// Close закрывает соединение с Redis.
func (r *Redis) Close() error {
	return r.client.Close()
}
