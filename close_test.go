package ogmneo

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCloser struct {
	err   error
	calls int
}

func (s *stubCloser) Close() error {
	s.calls++
	return s.err
}

func TestCloseWithLog(t *testing.T) {
	tests := []struct {
		name    string
		closer  io.Closer
		wantLog []string
	}{
		{name: "nil closer"},
		{name: "clean close", closer: &stubCloser{}},
		{
			name:    "failing close",
			closer:  &stubCloser{err: errors.New("connection reset")},
			wantLog: []string{"failed to close resource", "redis journal", "connection reset", "level=WARN"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			CloseWithLog(tt.closer, logger, "redis journal")

			if s, ok := tt.closer.(*stubCloser); ok {
				assert.Equal(t, 1, s.calls)
			}
			if len(tt.wantLog) == 0 {
				assert.Empty(t, buf.String())
			}
			for _, want := range tt.wantLog {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestCloseWithLogNilLogger(t *testing.T) {
	s := &stubCloser{err: errors.New("busy")}
	require.NotPanics(t, func() { CloseWithLog(s, nil, "driver") })
	assert.Equal(t, 1, s.calls)
}
