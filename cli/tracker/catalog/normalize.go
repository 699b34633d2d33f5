package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Формы значения в каталожном документе. Значение может быть простой
// строкой-именем либо объектом с одним из известных полей имени; маршрут
// дополнительно может описываться остановками. Неизвестная форма
// сводится к ключу записи.
type entryDoc struct {
	Name      string   `json:"name"`
	RouteName string   `json:"routeName"`
	Stop1     *stopDoc `json:"stop_1"`
	Stop3     *stopDoc `json:"stop_3"`
}

type stopDoc struct {
	Name string `json:"name"`
}

// normalizeBuses приводит документ каталога транспорта к списку {id, name}.
// Нечитаемый документ заменяется списком по умолчанию.
func normalizeBuses(doc string) []Entry {
	variants, err := parseVariants(doc)
	if err != nil {
		log.WithField("err", err).Warn("Каталог транспорта не разобран, используется список по умолчанию")
		return defaultBuses()
	}

	entries := make([]Entry, 0, len(variants))
	for id, variant := range variants {
		entries = append(entries, Entry{ID: id, Name: busName(id, variant)})
	}
	sortEntries(entries)
	return entries
}

// normalizeRoutes приводит документ каталога маршрутов к списку {id, name}.
func normalizeRoutes(doc string) []Entry {
	variants, err := parseVariants(doc)
	if err != nil {
		log.WithField("err", err).Warn("Каталог маршрутов не разобран, используется список по умолчанию")
		return defaultRoutes()
	}

	entries := make([]Entry, 0, len(variants))
	for id, variant := range variants {
		entries = append(entries, Entry{ID: id, Name: routeName(id, variant)})
	}
	sortEntries(entries)
	return entries
}

func parseVariants(doc string) (map[string]json.RawMessage, error) {
	var variants map[string]json.RawMessage
	if err := json.Unmarshal([]byte(doc), &variants); err != nil {
		return nil, fmt.Errorf("документ не является JSON-объектом: %w", err)
	}
	return variants, nil
}

func busName(id string, raw json.RawMessage) string {
	// Вариант 1: значение — просто строка-имя.
	var name string
	if err := json.Unmarshal(raw, &name); err == nil && name != "" {
		return name
	}

	// Вариант 2: объект с полем name.
	var entry entryDoc
	if err := json.Unmarshal(raw, &entry); err == nil && entry.Name != "" {
		return entry.Name
	}

	return id
}

func routeName(id string, raw json.RawMessage) string {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil && name != "" {
		return name
	}

	var entry entryDoc
	if err := json.Unmarshal(raw, &entry); err != nil {
		return id
	}

	switch {
	case entry.Name != "":
		return entry.Name
	case entry.RouteName != "":
		return entry.RouteName
	case entry.Stop1 != nil && entry.Stop3 != nil:
		first := entry.Stop1.Name
		if first == "" {
			first = "Start"
		}
		last := entry.Stop3.Name
		if last == "" {
			last = "End"
		}
		return fmt.Sprintf("Route %s: %s → %s", strings.ToUpper(id), first, last)
	default:
		return id
	}
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
}

func defaultBuses() []Entry {
	return []Entry{
		{ID: "bus_001", Name: "Bus 001"},
		{ID: "bus_002", Name: "Bus 002"},
		{ID: "bus_003", Name: "Bus 003"},
	}
}

func defaultRoutes() []Entry {
	return []Entry{
		{ID: "route_001", Name: "Route A - City Center"},
		{ID: "route_002", Name: "Route B - Airport"},
		{ID: "route_003", Name: "Route C - University"},
		{ID: "route_004", Name: "Route D - Mall"},
	}
}
