package audit

import (
	"bytes"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/aum-search/aum-web/internal/test"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerAudit(t *testing.T) {
	logger := test.DummyLogger(io.Discard).Sugar()

	actual := NewLoggerAudit(logger, "http://localhost:8000")

	assert.NotNil(t, actual)
	assert.IsType(t, &LoggerAudit{}, actual)
	assert.Equal(t, "http://localhost:8000", actual.Backend)
}

func TestLoggingAuditWrite(t *testing.T) {
	cases := []struct {
		description string
		given       QueryData
		output      *regexp.Regexp
	}{
		{
			"query data with all fields set",
			QueryData{Query: "cat", User: "test", RequestID: "abc", Timestamp: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).Unix()},
			regexp.MustCompile(`AUDIT\s{"Query": "cat", "User": "test", "RequestID": "abc", "Backend": "http://search:8000", "Timestamp": 1672531200}`),
		},
		{
			"query data with empty query",
			QueryData{Query: "", User: "test", Timestamp: time.Now().Unix()},
			regexp.MustCompile(`AUDIT\s{"Query": "", "User": "test", "RequestID": "", "Backend": "http://search:8000", "Timestamp": \d{10}}`),
		},
		{
			"query data with nothing set",
			QueryData{},
			regexp.MustCompile(`AUDIT\s{"Query": "", "User": "", "RequestID": "", "Backend": "http://search:8000", "Timestamp": 0}`),
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			var output bytes.Buffer

			logger := test.DummyLogger(&output).Sugar()

			audit := &LoggerAudit{Logger: logger, Backend: "http://search:8000"}
			err := audit.Write(&tc.given)

			assert.Nil(t, err)
			assert.Regexp(t, tc.output, output.String())
		})
	}
}
