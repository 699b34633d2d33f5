package config

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	log "github.com/sirupsen/logrus"
)

func TestConfigLoad(t *testing.T) {
	// To prevent log output during tests
	log.SetOutput(io.Discard)

	cfg := `host: "127.0.0.1"
port: "5020"
conn_ttl: 10
api_port: 8080
log_level: "DEBUG"
permission_granted: true

tracking:
  interval_seconds: 7
  accuracy_threshold: 50

kv:
  type: "file"
  path: "/var/lib/tracker/kv.json"

storage:
  redis:
    host: "localhost"
    port: "6379"
    prefix: "buses/"
  postgresql:
    host: "localhost"
    port: "5432"
    user: "postgres"
    password: "postgres"
    database: "tracker"
    table: "bus_state"
    sslmode: "disable"
`

	file, err := os.CreateTemp("/tmp", "config.yaml")
	if !assert.NoError(t, err) {
		return
	}
	defer os.Remove(file.Name())

	if _, err = file.WriteString(cfg); !assert.NoError(t, err) {
		return
	}

	conf, err := New(file.Name())
	if assert.NoError(t, err) {
		assert.Equal(t, Settings{
			Host:              "127.0.0.1",
			Port:              "5020",
			ConnTTL:           10,
			ApiPort:           8080,
			LogLevel:          "DEBUG",
			PermissionGranted: true,
			Tracking: Tracking{
				IntervalSeconds:   7,
				AccuracyThreshold: 50,
			},
			KV: map[string]string{
				"type": "file",
				"path": "/var/lib/tracker/kv.json",
			},
			Store: map[string]map[string]string{
				"redis": {
					"host":   "localhost",
					"port":   "6379",
					"prefix": "buses/",
				},
				"postgresql": {
					"host":     "localhost",
					"port":     "5432",
					"user":     "postgres",
					"password": "postgres",
					"database": "tracker",
					"table":    "bus_state",
					"sslmode":  "disable",
				},
			},
		}, conf)

		assert.Equal(t, log.DebugLevel, conf.GetLogLevel())
		assert.Equal(t, "127.0.0.1:5020", conf.GetListenAddress())
		assert.Equal(t, 10*time.Second, conf.GetEmptyConnTTL())
		assert.Equal(t, 7*time.Second, conf.GetTrackingInterval())
	}
}

func TestConfigDefaults(t *testing.T) {
	file, err := os.CreateTemp("/tmp", "config.yaml")
	if !assert.NoError(t, err) {
		return
	}
	defer os.Remove(file.Name())

	if _, err = file.WriteString("host: \"127.0.0.1\"\nport: \"5020\"\n"); !assert.NoError(t, err) {
		return
	}

	conf, err := New(file.Name())
	if assert.NoError(t, err) {
		assert.Equal(t, 7, conf.Tracking.IntervalSeconds)
		assert.Equal(t, 50.0, conf.Tracking.AccuracyThreshold)
		assert.False(t, conf.PermissionGranted)
		assert.Equal(t, log.InfoLevel, conf.GetLogLevel())
	}
}

func TestConfigRejectsNegativeTrackingValues(t *testing.T) {
	file, err := os.CreateTemp("/tmp", "config.yaml")
	if !assert.NoError(t, err) {
		return
	}
	defer os.Remove(file.Name())

	if _, err = file.WriteString("tracking:\n  interval_seconds: -5\n"); !assert.NoError(t, err) {
		return
	}

	_, err = New(file.Name())
	assert.Error(t, err)
}

func TestConfigMissingFile(t *testing.T) {
	_, err := New("/nonexistent/config.yaml")
	assert.Error(t, err)
}
