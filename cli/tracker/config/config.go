package config

/*
Описание конфигурационного файла
*/

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"gopkg.in/yaml.v2"
)

var validate = validator.New()

type Tracking struct {
	// Минимальный интервал между фиксами в секундах.
	IntervalSeconds int `yaml:"interval_seconds" validate:"gte=0"`

	// Порог точности в метрах, выше которого сигнал считается деградировавшим.
	AccuracyThreshold float64 `yaml:"accuracy_threshold" validate:"gte=0"`
}

type Settings struct {
	Host              string                       `yaml:"host"`
	Port              string                       `yaml:"port"`
	ConnTTL           int                          `yaml:"conn_ttl"`
	ApiPort           int32                        `yaml:"api_port"`
	LogLevel          string                       `yaml:"log_level"`
	LogFilePath       string                       `yaml:"log_file_path"`
	LogMaxAgeDays     int                          `yaml:"log_max_age_days"`
	PermissionGranted bool                         `yaml:"permission_granted"`
	Tracking          Tracking                     `yaml:"tracking"`
	KV                map[string]string            `yaml:"kv"`
	Store             map[string]map[string]string `yaml:"storage"`
	Catalog           map[string]string            `yaml:"catalog"`
}

func (s *Settings) GetEmptyConnTTL() time.Duration {
	return time.Duration(s.ConnTTL) * time.Second
}

func (s *Settings) GetListenAddress() string {
	return s.Host + ":" + s.Port
}

func (s *Settings) GetTrackingInterval() time.Duration {
	return time.Duration(s.Tracking.IntervalSeconds) * time.Second
}

func (s *Settings) GetLogLevel() log.Level {
	var lvl log.Level

	switch s.LogLevel {
	case "DEBUG":
		lvl = log.DebugLevel
	case "INFO":
		lvl = log.InfoLevel
	case "WARN":
		lvl = log.WarnLevel
	case "ERROR":
		lvl = log.ErrorLevel
	default:
		lvl = log.InfoLevel
	}
	return lvl
}

func New(confPath string) (Settings, error) {
	c := Settings{}
	data, err := os.ReadFile(confPath)
	if err != nil {
		return c, err
	}
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		return c, err
	}

	if c.Tracking.IntervalSeconds == 0 {
		c.Tracking.IntervalSeconds = 7 // Период фиксов исходного устройства
	}
	if c.Tracking.AccuracyThreshold == 0 {
		c.Tracking.AccuracyThreshold = 50
	}

	if err := validate.Struct(c.Tracking); err != nil {
		return c, fmt.Errorf("некорректная секция tracking: %w", err)
	}

	return c, err
}
