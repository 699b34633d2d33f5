package storage

import (
	"encoding/json"
)

// RemoteState — публикуемая запись о транспорте. Хранилище держит ровно
// одну такую запись на ключ: каждая публикация замещает предыдущую.
type RemoteState struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Speed     float64 `json:"speed"`
	Accuracy  float64 `json:"accuracy"`
	Timestamp int64   `json:"timestamp"`
	BusID     string  `json:"busId"`
	RouteID   *string `json:"routeId"`
}

// Key возвращает ключ записи — идентификатор транспорта.
func (rs *RemoteState) Key() string {
	return rs.BusID
}

func (rs *RemoteState) ToBytes() ([]byte, error) {
	return json.Marshal(rs)
}
