package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/activity"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/alert"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/api"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/catalog"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/config"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/domain"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/kv"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/location"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/session"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/signal"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/storage"
)

func main() {
	configFilePath := ""
	flag.StringVar(&configFilePath, "c", "", "путь до конфигурационного файла")
	flag.Parse()

	cfg, err := getConfig(configFilePath)
	if err != nil {
		log.Fatalf("Не удалось получить конфиг: %v", err)
		return
	}

	configureLogging(cfg)

	store, err := kv.New(cfg.KV)
	if err != nil {
		log.Fatalf("Не удалось открыть key-value хранилище: %v", err)
		return
	}

	repository := storage.NewRepository()
	if err := repository.LoadStorages(cfg.Store); err != nil {
		log.Fatalf("Не удалось загрузить внешние хранилища: %v", err)
		return
	}

	trackSession := &domain.TrackSession{
		Permission:  domain.StaticPermission{Granted: cfg.PermissionGranted},
		Provider:    location.NewFeed(cfg.GetListenAddress(), cfg.GetEmptyConnTTL()),
		Accumulator: &session.Accumulator{},
		Activity:    activity.NewLog(store),
		Monitor:     &signal.Monitor{Notifier: alert.Console{}, Threshold: cfg.Tracking.AccuracyThreshold},
		Publisher:   &storage.Publisher{Store: repository},
		KV:          store,
		Options:     location.Options{Interval: cfg.GetTrackingInterval()},
	}
	if err := trackSession.Initialize(); err != nil {
		log.Fatalf("Не удалось восстановить сохранённую привязку: %v", err)
		return
	}

	catalogCache := runCatalog(cfg)

	go runApi(trackSession, catalogCache, cfg.ApiPort)

	select {}
}

func getConfig(configFilePath string) (config.Settings, error) {
	var c config.Settings

	if configFilePath == "" {
		return c, fmt.Errorf("не задан путь до конфига")
	}

	c, err := config.New(configFilePath)
	if err != nil {
		return c, fmt.Errorf("ошибка парсинга конфига: %v", err)
	}

	return c, nil
}

func configureLogging(cfg config.Settings) {
	log.SetLevel(cfg.GetLogLevel())

	consoleFmt := &log.TextFormatter{ForceColors: true, FullTimestamp: false}
	log.SetFormatter(consoleFmt)
	log.SetOutput(os.Stdout)

	if cfg.LogFilePath != "" {
		logDir := filepath.Dir(cfg.LogFilePath)
		if _, err := os.Stat(logDir); os.IsNotExist(err) {
			if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
				log.Fatalf("Не получилось создать директорию для логов: %v", err)
			}
		}

		lumberjackLogger := &lumberjack.Logger{
			Filename:   cfg.LogFilePath,
			MaxSize:    100,
			MaxBackups: 366,
			MaxAge:     cfg.LogMaxAgeDays,
			Compress:   true,
		}

		fileFmt := &log.TextFormatter{DisableColors: true, FullTimestamp: true}
		hook := lfshook.NewHook(lfshook.WriterMap{
			log.PanicLevel: lumberjackLogger,
			log.FatalLevel: lumberjackLogger,
			log.ErrorLevel: lumberjackLogger,
			log.WarnLevel:  lumberjackLogger,
			log.InfoLevel:  lumberjackLogger,
			log.DebugLevel: lumberjackLogger,
			log.TraceLevel: lumberjackLogger,
		}, fileFmt)

		log.AddHook(hook)
	}
}

// runCatalog поднимает кэш каталогов, если в конфиге задан их источник.
// Трекер работоспособен и без каталогов: привязку можно задать через API.
func runCatalog(cfg config.Settings) *catalog.Catalog {
	if len(cfg.Catalog) == 0 {
		log.Info("Источник каталогов не задан, списки транспорта и маршрутов недоступны")
		return nil
	}

	catalogSource, err := catalog.NewRedisSource(cfg.Catalog)
	if err != nil {
		log.Fatalf("Не удалось подключить источник каталогов: %v", err)
		return nil
	}

	catalogCache := &catalog.Catalog{Source: catalogSource}
	if err := catalogCache.Initialize(); err != nil {
		log.Fatalf("Не удалось инициализировать кэш каталогов: %v", err)
		return nil
	}

	return catalogCache
}

func runApi(trackSession *domain.TrackSession, catalogCache *catalog.Catalog, port int32) {
	handler := api.NewHandler(trackSession, catalogCache)
	controller := api.NewController(handler)
	log.Infof("Запуск API на порту %d", port)
	if err := controller.Run(port); err != nil {
		log.Fatal(err)
	}
}
