package mysql

/*
Плагин для работы с MySQL.

Раздел настроек, которые должны отвечать в конфиге для подключения хранилища:

host = "localhost"
port = "3306"
user = "root"
password = ""
database = "tracker"
table = "bus_state"
*/

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
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

	connStr := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s",
		c.config["user"], c.config["password"], c.config["host"], c.config["port"], c.config["database"])
	if c.connection, err = sql.Open("mysql", connStr); err != nil {
		return fmt.Errorf("ошибка подключения к MySQL: %v", err)
	}

	if err = c.connection.Ping(); err != nil {
		return fmt.Errorf("MySQL недоступен: %v", err)
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

	upsertQuery := fmt.Sprintf(
		"INSERT INTO %s (bus_id, state) VALUES (?, ?) ON DUPLICATE KEY UPDATE state = VALUES(state)",
		c.config["table"])
	if _, err = c.connection.Exec(upsertQuery, msg.Key(), innerPkg); err != nil {
		return fmt.Errorf("не удалось перезаписать состояние: %v", err)
	}
	return nil
}

func (c *Connector) Close() error {
	return c.connection.Close()
}
