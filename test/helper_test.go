//go:build integration
// +build integration

package test

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"
)

type splunkSink struct {
	*httptest.Server

	mu     sync.Mutex
	events []map[string]interface{}
}

func startSplunk(t *testing.T) *splunkSink {
	s := &splunkSink{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("Authorization") != "Splunk test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"text":"Invalid token","code":4}`)
			return
		}

		var event map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"text":"Invalid data format","code":6}`)
			return
		}

		s.mu.Lock()
		s.events = append(s.events, event)
		s.mu.Unlock()

		_, _ = io.WriteString(w, `{"text":"Success","code":0}`)
	}))
	t.Cleanup(s.Close)

	return s
}

func (s *splunkSink) Events() []map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]map[string]interface{}{}, s.events...)
}

func setEnvironment(port int, apiURL, splunkEndpoint string) {
	os.Setenv("PORT", strconv.Itoa(port))
	os.Setenv("API_URL", apiURL)
	os.Setenv("QUERY_ENCODING", "raw")
	os.Setenv("REQUEST_TIMEOUT", "10s")

	os.Setenv("SPLUNK_INDEX", "main")
	os.Setenv("SPLUNK_TOKEN", "test-token")
	os.Setenv("SPLUNK_ENDPOINT", splunkEndpoint)

	os.Setenv("HOST", "test")
	os.Setenv("NAMESPACE", "test")
	os.Setenv("POD_NAME", "test")

	os.Unsetenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	os.Unsetenv("OTEL_METRIC_EXPORT_INTERVAL")
}

func waitForPortOpen(port int) {
	address := net.JoinHostPort("localhost", strconv.Itoa(port))
	for {
		conn, err := net.DialTimeout("tcp", address, 500*time.Millisecond)
		if err == nil {
			_ = conn.Close()
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
}
