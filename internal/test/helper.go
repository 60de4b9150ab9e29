package test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func DummyLogger(w io.Writer) *zap.Logger {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey: "message",
	})

	writer := zap.CombineWriteSyncers(zapcore.AddSync(os.Stderr), zapcore.AddSync(w))

	l := zap.New(zapcore.NewCore(encoder, writer, zapcore.DebugLevel))
	zap.RedirectStdLog(l)

	return l
}

// Backend is a stand-in search backend that replies with a fixed status and
// body and keeps every request it received.
type Backend struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*http.Request
}

func NewBackend(t *testing.T, code int, body string) *Backend {
	t.Helper()

	b := &Backend{}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, r.Clone(r.Context()))
		b.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(b.Close)

	return b
}

func (b *Backend) Requests() []*http.Request {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]*http.Request{}, b.requests...)
}

// UnreachableURL returns an address nothing listens on.
func UnreachableURL(t *testing.T) string {
	t.Helper()

	s := httptest.NewServer(http.NotFoundHandler())
	s.Close()

	return s.URL
}
