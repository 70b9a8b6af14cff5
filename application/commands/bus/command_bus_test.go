package bus

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "campaign-manager/pkg/errors"
)

type pingCommand struct {
	Fail error
}

func (c pingCommand) Validate() error { return nil }

type invalidCommand struct{}

func (invalidCommand) Validate() error { return pkgerrors.NewValidationError("bad input") }

type logLine struct {
	level string
	msg   string
}

type recordingLogger struct {
	mu    sync.Mutex
	lines []logLine
}

func (l *recordingLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, logLine{level, msg})
}

func (l *recordingLogger) Debug(msg string, kv ...interface{}) { l.add("debug", msg) }
func (l *recordingLogger) Info(msg string, kv ...interface{})  { l.add("info", msg) }
func (l *recordingLogger) Warn(msg string, kv ...interface{})  { l.add("warn", msg) }
func (l *recordingLogger) Error(msg string, kv ...interface{}) { l.add("error", msg) }

func (l *recordingLogger) last() logLine {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lines[len(l.lines)-1]
}

type recordingMetrics struct {
	names []string
	errs  []error
}

func (m *recordingMetrics) RecordCommandExecution(ctx context.Context, name string, d time.Duration, err error) {
	m.names = append(m.names, name)
	m.errs = append(m.errs, err)
}

func TestCommandBus_SendReturnsResult(t *testing.T) {
	logger := &recordingLogger{}
	metrics := &recordingMetrics{}
	b := NewCommandBus(LoggingMiddleware(logger), MetricsMiddleware(metrics))
	require.NoError(t, b.Register(pingCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
		if err := cmd.(pingCommand).Fail; err != nil {
			return nil, err
		}
		return "pong", nil
	})))

	result, err := b.Send(context.Background(), pingCommand{})
	require.NoError(t, err)
	assert.Equal(t, "pong", result)
	assert.Equal(t, logLine{"info", "Command succeeded"}, logger.last())
	assert.Equal(t, []string{"pingCommand"}, metrics.names)
}

func TestCommandBus_ErrorLevels(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		level string
	}{
		{"caller error", pkgerrors.NewNotFoundError("Campaign"), "warn"},
		{"system error", pkgerrors.NewStorageUnavailableError("PutItem", errors.New("x")), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &recordingLogger{}
			b := NewCommandBus(LoggingMiddleware(logger))
			require.NoError(t, b.Register(pingCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
				return nil, cmd.(pingCommand).Fail
			})))

			_, err := b.Send(context.Background(), pingCommand{Fail: tt.err})

			require.Error(t, err)
			assert.Equal(t, pkgerrors.GetAppError(tt.err).Type, pkgerrors.GetAppError(err).Type, "type survives wrapping")
			assert.Equal(t, tt.level, logger.last().level)
		})
	}
}

func TestCommandBus_ValidationAndRouting(t *testing.T) {
	b := NewCommandBus()

	_, err := b.Send(context.Background(), invalidCommand{})
	assert.True(t, pkgerrors.IsValidation(err))

	_, err = b.Send(context.Background(), pingCommand{})
	assert.ErrorIs(t, err, ErrHandlerNotFound)

	h := CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) { return nil, nil })
	require.NoError(t, b.Register(pingCommand{}, h))
	assert.Error(t, b.Register(pingCommand{}, h))
}
