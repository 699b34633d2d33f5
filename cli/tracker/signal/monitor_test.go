package signal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/types"
)

// mockNotifier фиксирует вызовы и может имитировать отказ планирования.
type mockNotifier struct {
	hapticCalled bool
	title        string
	body         string
	scheduleErr  error
}

func (m *mockNotifier) HapticWarning() { m.hapticCalled = true }

func (m *mockNotifier) ScheduleNotification(title, body string) error {
	m.title = title
	m.body = body
	return m.scheduleErr
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name         string
		accuracy     float64
		wantDegraded bool
	}{
		{name: "Accuracy above threshold is degraded", accuracy: 80, wantDegraded: true},
		{name: "Accuracy just above threshold is degraded", accuracy: 50.1, wantDegraded: true},
		{name: "Accuracy at threshold is ok", accuracy: 50, wantDegraded: false},
		{name: "Good accuracy is ok", accuracy: 10, wantDegraded: false},
		{name: "Unknown accuracy is not degraded", accuracy: types.AccuracyUnknown, wantDegraded: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &mockNotifier{}
			monitor := NewMonitor(notifier)

			degraded := monitor.Evaluate(types.PositionFix{Latitude: 1, Longitude: 2, Accuracy: tt.accuracy})

			assert.Equal(t, tt.wantDegraded, degraded)
			assert.Equal(t, tt.wantDegraded, notifier.hapticCalled)
		})
	}
}

func TestEvaluateNotificationContent(t *testing.T) {
	notifier := &mockNotifier{}
	monitor := NewMonitor(notifier)

	monitor.Evaluate(types.PositionFix{Accuracy: 79.6})

	assert.Equal(t, "Poor GPS accuracy", notifier.title)
	assert.Equal(t, "Current accuracy: 80m", notifier.body)
}

func TestEvaluateSwallowsScheduleFailure(t *testing.T) {
	notifier := &mockNotifier{scheduleErr: errors.New("нет разрешения на уведомления")}
	monitor := NewMonitor(notifier)

	// Отказ планирования не должен приводить к панике или менять результат.
	degraded := monitor.Evaluate(types.PositionFix{Accuracy: 120})

	assert.True(t, degraded)
	assert.True(t, notifier.hapticCalled)
}
