package redis

/*
Плагин для работы с Redis.

Раздел настроек, которые должны отвечать в конфиге для подключения хранилища:

host = "localhost"
port = "6379"
password = ""
db = "0"
prefix = "buses/"
*/

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
)

type Connector struct {
	client *redis.Client
	config map[string]string
}

func (c *Connector) Init(cfg map[string]string) error {
	if cfg == nil {
		return fmt.Errorf("некорректная ссылка на конфигурацию")
	}
	c.config = cfg

	dbIndex := 0
	if c.config["db"] != "" {
		var err error
		if dbIndex, err = strconv.Atoi(c.config["db"]); err != nil {
			return fmt.Errorf("не удалось получить номер базы: %v", err)
		}
	}

	c.client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", c.config["host"], c.config["port"]),
		Password: c.config["password"],
		DB:       dbIndex,
	})

	if err := c.client.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("Redis недоступен: %v", err)
	}
	return nil
}

func (c *Connector) Save(msg interface {
	Key() string
	ToBytes() ([]byte, error)
}) error {
	if msg == nil {
		return fmt.Errorf("некорректная ссылка на запись")
	}

	innerPkg, err := msg.ToBytes()
	if err != nil {
		return fmt.Errorf("ошибка сериализации записи: %v", err)
	}

	// SET перезаписывает значение ключа целиком, истории не остаётся
	key := c.config["prefix"] + msg.Key()
	if err := c.client.Set(context.Background(), key, innerPkg, 0).Err(); err != nil {
		return fmt.Errorf("не удалось записать состояние: %v", err)
	}
	return nil
}

func (c *Connector) Close() error {
	return c.client.Close()
}
