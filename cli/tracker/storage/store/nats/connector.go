package nats

/*
Плагин для работы с NATS.

Раздел настроек, которые должны отвечать в конфиге для подключения хранилища:

host = "localhost"
port = "4222"
subject = "buses"

Вместо host и port можно задать url целиком:

url = "nats://localhost:4222"
*/

import (
	"fmt"

	"github.com/nats-io/nats.go"
)

type Connector struct {
	connection *nats.Conn
	config     map[string]string
}

func (c *Connector) Init(cfg map[string]string) error {
	if cfg == nil {
		return fmt.Errorf("некорректная ссылка на конфигурацию")
	}
	c.config = cfg

	url := c.config["url"]
	if url == "" {
		url = fmt.Sprintf("nats://%s:%s", c.config["host"], c.config["port"])
	}

	var err error
	if c.connection, err = nats.Connect(url); err != nil {
		return fmt.Errorf("не удалось подключиться к NATS: %v", err)
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

	subject := c.config["subject"]
	if subject == "" {
		subject = "buses"
	}

	if err := c.connection.Publish(subject+"."+msg.Key(), innerPkg); err != nil {
		return fmt.Errorf("не удалось отправить сообщение: %v", err)
	}
	return nil
}

func (c *Connector) Close() error {
	c.connection.Close()
	return nil
}
