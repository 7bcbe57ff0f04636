package logx

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lines struct {
	got []string
}

func (l *lines) WriteLineString(s string) { l.got = append(l.got, s) }
func (l *lines) WriteLineBytes(b []byte)  { l.got = append(l.got, string(b)) }

func TestNewWritesOneLinePerRecord(t *testing.T) {
	var sink lines
	log := New(&sink, slog.LevelInfo)

	log.Info("starting application", "width", 800)
	log.Debug("hidden")
	log.Warn("device lost")

	require.Len(t, sink.got, 2)
	assert.True(t, strings.Contains(sink.got[0], "msg=\"starting application\""), sink.got[0])
	assert.True(t, strings.Contains(sink.got[0], "width=800"), sink.got[0])
	assert.True(t, strings.Contains(sink.got[1], "level=WARN"), sink.got[1])
}

func TestNopDiscards(t *testing.T) {
	log := Nop()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
	log.Error("nothing")

	assert.Same(t, log, OrNop(log))
	assert.NotNil(t, OrNop(nil))
}
