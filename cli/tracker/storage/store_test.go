package storage

import (
	"errors"
	"io"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// mockSaver implements the Saver interface for testing.
type mockSaver struct {
	saveCalled int
	lastKey    string
	err        error
}

func (ms *mockSaver) Save(data interface {
	Key() string
	ToBytes() ([]byte, error)
}) error {
	ms.saveCalled++
	ms.lastKey = data.Key()
	return ms.err
}

func TestRepositorySaveFansOutToAllStores(t *testing.T) {
	log.SetOutput(io.Discard)

	first := &mockSaver{}
	second := &mockSaver{}

	repo := NewRepository()
	repo.AddStore(first)
	repo.AddStore(second)

	state := &RemoteState{Latitude: 1, Longitude: 2, BusID: "bus_001"}
	assert.NoError(t, repo.Save(state))

	assert.Equal(t, 1, first.saveCalled)
	assert.Equal(t, 1, second.saveCalled)
	assert.Equal(t, "bus_001", first.lastKey)
}

func TestRepositorySaveReturnsFirstStoreError(t *testing.T) {
	log.SetOutput(io.Discard)

	failing := &mockSaver{err: errors.New("хранилище недоступно")}
	repo := NewRepository()
	repo.AddStore(failing)

	assert.Error(t, repo.Save(&RemoteState{BusID: "bus_001"}))
}

func TestLoadStoragesRejectsEmptyAndUnknown(t *testing.T) {
	repo := NewRepository()

	assert.ErrorIs(t, repo.LoadStorages(nil), ErrInvalidStorage)
	assert.ErrorIs(t, repo.LoadStorages(map[string]map[string]string{
		"etcd": {"host": "localhost"},
	}), ErrUnknownStorage)
}

func TestRemoteStateSerialization(t *testing.T) {
	routeID := "route_007"
	state := &RemoteState{
		Latitude:  55.75,
		Longitude: 37.61,
		Speed:     6,
		Accuracy:  10,
		Timestamp: 1700000000,
		BusID:     "bus_001",
		RouteID:   &routeID,
	}

	raw, err := state.ToBytes()
	assert.NoError(t, err)
	assert.JSONEq(t,
		`{"lat":55.75,"lng":37.61,"speed":6,"accuracy":10,"timestamp":1700000000,"busId":"bus_001","routeId":"route_007"}`,
		string(raw))

	// Без маршрута routeId публикуется как null, а не отсутствует.
	state.RouteID = nil
	raw, err = state.ToBytes()
	assert.NoError(t, err)
	assert.JSONEq(t,
		`{"lat":55.75,"lng":37.61,"speed":6,"accuracy":10,"timestamp":1700000000,"busId":"bus_001","routeId":null}`,
		string(raw))
}
