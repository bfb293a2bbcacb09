package station

import (
	"errors"
	"testing"
	"time"

	"github.com/nguyentantai21042004/pump-station/internal/logger"
	"go.uber.org/zap"
	zapobserver "go.uber.org/zap/zaptest/observer"
	"gotest.tools/v3/assert"
)

func TestNewClampsSizes(t *testing.T) {
	tests := []struct {
		name         string
		pumps        int
		queue        int
		wantPumps    int
		wantQueue    int
		wantWarnings int
	}{
		{"valid", 3, 5, 3, 5, 0},
		{"bounds", 1, 10, 1, 10, 0},
		{"queue zero", 2, 0, 2, 1, 1},
		{"pumps too many", 11, 4, 10, 4, 1},
		{"both invalid", -3, 42, 1, 10, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			observer, logs := zapobserver.New(zap.WarnLevel)
			s := New(Config{Pumps: tt.pumps, QueueCapacity: tt.queue}, logger.NewFromZap(zap.New(observer).Sugar()))

			assert.Equal(t, s.Pumps(), tt.wantPumps)
			assert.Equal(t, s.QueueCapacity(), tt.wantQueue)
			assert.Equal(t, len(s.Warnings()), tt.wantWarnings)
			assert.Equal(t, logs.Len(), tt.wantWarnings)
		})
	}
}

func TestConfigurationErrorMessage(t *testing.T) {
	s := New(Config{Pumps: 2, QueueCapacity: 0}, logger.NewNop())
	warnings := s.Warnings()
	assert.Equal(t, len(warnings), 1)

	var err error = warnings[0]
	var cerr *ConfigurationError
	assert.Assert(t, errors.As(err, &cerr))
	assert.Equal(t, cerr.Field, "queue capacity")
	assert.Equal(t, cerr.Value, 0)
	assert.Equal(t, cerr.Applied, 1)
	assert.Equal(t, err.Error(), "queue capacity must be between 1 and 10, got 0; using 1")
}

func TestNewDefaultsPolicyAndTiming(t *testing.T) {
	s := New(Config{Pumps: 1, QueueCapacity: 1, Admission: "unknown"}, logger.NewNop()).(*implStation)

	assert.Equal(t, s.cfg.Admission, AdmissionBlock)
	assert.Equal(t, s.cfg.Timing.PollInterval, DefaultTiming().PollInterval)
	assert.Equal(t, s.bays.Available(), 1)
	assert.Equal(t, s.area.Capacity(), 1)
}

func TestSamplerBounds(t *testing.T) {
	sm := newSampler(7)
	for i := 0; i < 1000; i++ {
		d := sm.between(2*time.Second, 5*time.Second)
		assert.Assert(t, d >= 2*time.Second && d < 5*time.Second, "got %v", d)
	}
	assert.Equal(t, sm.between(time.Second, time.Second), time.Second)
	assert.Equal(t, sm.between(4*time.Second, time.Second), 4*time.Second)
}
