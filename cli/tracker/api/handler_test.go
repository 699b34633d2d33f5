package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/activity"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/domain"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/fix"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/kv"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/location"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/session"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/signal"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/storage"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	log.SetOutput(io.Discard)
	m.Run()
}

type nopSaver struct{}

func (nopSaver) Save(interface {
	Key() string
	ToBytes() ([]byte, error)
}) error {
	return nil
}

type silentNotifier struct{}

func (silentNotifier) HapticWarning() {}

func (silentNotifier) ScheduleNotification(title, body string) error { return nil }

func newTestController(t *testing.T) (*Controller, *location.Manual) {
	store := kv.NewFile(filepath.Join(t.TempDir(), "kv.json"))
	provider := &location.Manual{}

	trackSession := &domain.TrackSession{
		Permission:  domain.StaticPermission{Granted: true},
		Provider:    provider,
		Accumulator: &session.Accumulator{},
		Activity:    activity.NewLog(store),
		Monitor:     signal.NewMonitor(silentNotifier{}),
		Publisher:   &storage.Publisher{Store: nopSaver{}},
		KV:          store,
	}

	return NewController(NewHandler(trackSession, nil)), provider
}

func rawFix(lat, lng, speed, accuracy float64, ts int64) fix.RawFix {
	return fix.RawFix{Latitude: &lat, Longitude: &lng, Speed: &speed, Accuracy: &accuracy, Timestamp: &ts}
}

func perform(c *Controller, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	c.router.ServeHTTP(w, req)
	return w
}

func TestGetStatusIdle(t *testing.T) {
	c, _ := newTestController(t)

	w := perform(c, http.MethodGet, "/status")
	assert.Equal(t, http.StatusOK, w.Code)

	var status StatusResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, StatusResponse{State: domain.StateIdle}, status)
}

func TestStartWithoutBusRejected(t *testing.T) {
	c, _ := newTestController(t)

	w := perform(c, http.MethodPost, "/tracking/start")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTrackingLifecycle(t *testing.T) {
	c, provider := newTestController(t)

	assert.Equal(t, http.StatusOK, perform(c, http.MethodPost, "/bus/bus_001").Code)
	assert.Equal(t, http.StatusOK, perform(c, http.MethodPost, "/route/route_2").Code)
	assert.Equal(t, http.StatusOK, perform(c, http.MethodPost, "/tracking/start").Code)

	var status StatusResponse
	w := perform(c, http.MethodGet, "/status")
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, StatusResponse{State: domain.StateTracking, BusID: "bus_001", RouteID: "route_2"}, status)

	// смена привязки во время отслеживания запрещена
	assert.Equal(t, http.StatusConflict, perform(c, http.MethodPost, "/bus/bus_002").Code)

	lat, lng, speed, accuracy := 55.75, 37.62, 6.0, 12.0
	ts := int64(1700000000)
	provider.Push(rawFix(lat, lng, speed, accuracy, ts))

	var sess SessionResponse
	w = perform(c, http.MethodGet, "/session")
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &sess))
	if assert.NotNil(t, sess.LastFix) {
		assert.Equal(t, 55.75, sess.LastFix.Latitude)
		assert.Equal(t, 6.0, sess.LastFix.Speed)
	}

	w = perform(c, http.MethodGet, "/activity")
	var entries []map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	assert.Len(t, entries, 1)

	assert.Equal(t, http.StatusOK, perform(c, http.MethodPost, "/tracking/stop").Code)

	w = perform(c, http.MethodGet, "/status")
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, domain.StateIdle, status.State)
}

func TestClearRoute(t *testing.T) {
	c, _ := newTestController(t)

	assert.Equal(t, http.StatusOK, perform(c, http.MethodPost, "/route/route_1").Code)
	assert.Equal(t, http.StatusOK, perform(c, http.MethodDelete, "/route").Code)

	var status StatusResponse
	w := perform(c, http.MethodGet, "/status")
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "", status.RouteID)
}

func TestCatalogUnavailableWithoutSource(t *testing.T) {
	c, _ := newTestController(t)

	assert.Equal(t, http.StatusServiceUnavailable, perform(c, http.MethodGet, "/catalog/buses").Code)
	assert.Equal(t, http.StatusServiceUnavailable, perform(c, http.MethodGet, "/catalog/routes").Code)
}
