package postgresql

/*
Настройки, которые могут (а не которые – должны) быть в конфиге для подключения хранилища:

host = "localhost"
port = "5432"
user = "postgres"
password = "postgres"
database = "tracker"
table = "bus_state"
sslmode = "disable"
state_field_name = "state"
*/

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

type Connector struct {
	connection *sql.DB
	config     map[string]string
}

func (c *Connector) Init(cfg map[string]string) error {
	var (
		err error
	)
	if cfg == nil {
		return fmt.Errorf("некорректная ссылка на конфигурацию")
	}
	c.config = cfg
	connStr := fmt.Sprintf("dbname=%s host=%s port=%s user=%s password=%s sslmode=%s",
		c.config["database"], c.config["host"], c.config["port"], c.config["user"], c.config["password"], c.config["sslmode"])
	if c.connection, err = sql.Open("postgres", connStr); err != nil {
		return fmt.Errorf("ошибка подключения к PostgreSQL: %v", err)
	}

	if err = c.connection.Ping(); err != nil {
		return fmt.Errorf("PostgreSQL недоступен: %v", err)
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

	stateFieldName := c.config["state_field_name"]
	if stateFieldName == "" {
		log.Warnf("Ключ 'state_field_name' не найден в конфигурации хранилища. Используется значение по умолчанию 'state'.")
		stateFieldName = "state"
	}

	// запись по транспорту одна: вставка при конфликте замещает её целиком
	upsertQuery := fmt.Sprintf(
		"INSERT INTO %s (bus_id, %s) VALUES ($1, $2) ON CONFLICT (bus_id) DO UPDATE SET %s = EXCLUDED.%s",
		c.config["table"], stateFieldName, stateFieldName, stateFieldName)
	if _, err = c.connection.Exec(upsertQuery, msg.Key(), innerPkg); err != nil {
		return fmt.Errorf("не удалось перезаписать состояние: %v", err)
	}
	return nil
}

func (c *Connector) Close() error {
	return c.connection.Close()
}
