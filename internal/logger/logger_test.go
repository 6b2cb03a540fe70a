package logger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"fitmap/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LogConfig
		level   zapcore.Level
		wantErr bool
	}{
		{name: "json info", cfg: config.LogConfig{Level: "info", Format: "json"}, level: zapcore.InfoLevel},
		{name: "console debug", cfg: config.LogConfig{Level: "DEBUG", Format: "console"}, level: zapcore.DebugLevel},
		{name: "unknown level", cfg: config.LogConfig{Level: "chatty"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg, time.UTC)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.level))
			assert.False(t, log.Core().Enabled(tt.level-1))
		})
	}
}

type stringArray struct {
	zapcore.PrimitiveArrayEncoder
	values []string
}

func (s *stringArray) AppendString(v string) { s.values = append(s.values, v) }

func TestTimeEncoder_UsesLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	enc := &stringArray{}

	timeEncoder(loc)(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), enc)

	require.Len(t, enc.values, 1)
	assert.Equal(t, "2024-05-01T09:00:00-03:00", enc.values[0])
}
