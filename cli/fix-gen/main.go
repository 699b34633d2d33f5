package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"net"
	"os"
	"time"
)

/*
Генератор фиксов координат.

Утилита подключается к приёмнику трекера и отправляет фиксы координат
в виде JSON-строк, по одной на строку. Один фикс или серия фиксов
с постоянной скоростью на восток.

Usage:
  -server string
    	Адрес приёмника в формате <ip>:<port> (default "localhost:6000")
  -lat float
    	Широта (обязательно)
  -lon float
    	Долгота (обязательно)
  -speed float
    	Скорость в м/с
  -accuracy float
    	Погрешность в метрах (отрицательная — не передаётся)
  -time string
    	Метка времени первого фикса в формате RFC 3339, по умолчанию текущая
  -count int
    	Количество фиксов (default 1)
  -interval int
    	Интервал между фиксами в секундах (default 7)

Example

```
./fix-gen --lat 55.75 --lon 37.62 --speed 6 --count 10 --server localhost:6000
```
*/

func main() {
	server := ""
	lat := 0.0
	lon := 0.0
	speed := 0.0
	accuracy := 0.0
	ts := ""
	count := 0
	interval := 0

	flag.StringVar(&server, "server", "localhost:6000", "Адрес приёмника в формате <ip>:<port>")
	flag.Float64Var(&lat, "lat", math.NaN(), "Широта (обязательно)")
	flag.Float64Var(&lon, "lon", math.NaN(), "Долгота (обязательно)")
	flag.Float64Var(&speed, "speed", 0, "Скорость в м/с")
	flag.Float64Var(&accuracy, "accuracy", -1, "Погрешность в метрах (отрицательная — не передаётся)")
	flag.StringVar(&ts, "time", "", "Метка времени первого фикса в формате RFC 3339, по умолчанию текущая")
	flag.IntVar(&count, "count", 1, "Количество фиксов")
	flag.IntVar(&interval, "interval", 7, "Интервал между фиксами в секундах")

	flag.Parse()

	if math.IsNaN(lat) || math.IsNaN(lon) {
		fmt.Println("Требуются широта и долгота, смотрите помощь (-h)")
		os.Exit(1)
	}

	start := time.Now()
	if ts != "" {
		parsed, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			fmt.Println("Ошибка парсинга метки времени: ", ts)
			os.Exit(1)
		}
		start = parsed
	}

	conn, err := net.Dial("tcp", server)
	if err != nil {
		fmt.Println("Ошибка соединения с приёмником: ", err)
		os.Exit(1)
	}
	defer conn.Close()

	writer := bufio.NewWriter(conn)

	// метров в одном градусе долготы на данной широте
	metersPerDegree := 111320.0 * math.Cos(lat*math.Pi/180)

	for i := 0; i < count; i++ {
		at := start.Add(time.Duration(i*interval) * time.Second).Unix()
		currentLon := lon
		if metersPerDegree > 0 {
			currentLon += speed * float64(i*interval) / metersPerDegree
		}

		line, err := buildLine(lat, currentLon, speed, accuracy, at)
		if err != nil {
			fmt.Println("Ошибка сборки фикса: ", err)
			os.Exit(1)
		}

		if _, err := writer.WriteString(line + "\n"); err != nil {
			fmt.Println("Ошибка отправки фикса: ", err)
			os.Exit(1)
		}
		if err := writer.Flush(); err != nil {
			fmt.Println("Ошибка отправки фикса: ", err)
			os.Exit(1)
		}

		fmt.Printf("Отправлен фикс %d/%d: lat=%f lon=%f\n", i+1, count, lat, currentLon)

		if i+1 < count {
			time.Sleep(time.Duration(interval) * time.Second)
		}
	}
}

func buildLine(lat, lon, speed, accuracy float64, ts int64) (string, error) {
	payload := map[string]interface{}{
		"latitude":  lat,
		"longitude": lon,
		"speed":     speed,
		"timestamp": ts,
	}
	if accuracy >= 0 {
		payload["accuracy"] = accuracy
	}

	bytes, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
