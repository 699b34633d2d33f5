package tarantool

/*
Плагин для работы с Tarantool.

Раздел настроек, которые должны отвечать в конфиге для подключения хранилища:

host = "localhost"
port = "3301"
user = "user"
password = "pass"
max_recons = 5
timeout = 1
reconnect = 1
space = "buses"
*/

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tarantool/go-tarantool"
)

type Connector struct {
	connection *tarantool.Connection
	config     map[string]string
}

func (c *Connector) Init(cfg map[string]string) error {
	if cfg == nil {
		return fmt.Errorf("некорректная ссылка на конфигурацию")
	}

	c.config = cfg
	conStr := fmt.Sprintf("%s:%s", c.config["host"], c.config["port"])

	maxRecons, err := strconv.Atoi(c.config["max_recons"])
	if err != nil {
		return fmt.Errorf("не удалось получить MaxReconnects: %v", err)
	}
	timeout, err := strconv.Atoi(c.config["timeout"])
	if err != nil {
		return fmt.Errorf("не удалось получить timeout: %v", err)
	}
	reconnect, err := strconv.Atoi(c.config["reconnect"])
	if err != nil {
		return fmt.Errorf("не удалось получить reconnect: %v", err)
	}
	opts := tarantool.Opts{
		Timeout:       time.Duration(timeout) * time.Second,
		Reconnect:     time.Duration(reconnect) * time.Second,
		MaxReconnects: uint(maxRecons),
		User:          c.config["user"],
		Pass:          c.config["password"],
	}

	c.connection, err = tarantool.Connect(conStr, opts)
	if err != nil {
		return fmt.Errorf("не удалось подключиться к Tarantool: %v", err)
	}

	return err
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

	// Replace замещает кортеж по первичному ключу, прежнее значение теряется
	_, err = c.connection.Replace(c.config["space"], []interface{}{msg.Key(), string(innerPkg)})
	if err != nil {
		return fmt.Errorf("не удалось записать состояние: %v", err)
	}
	return nil
}

func (c *Connector) Close() error {
	return c.connection.Close()
}
