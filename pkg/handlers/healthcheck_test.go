package handlers

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aum-search/aum-web/internal/test"
	"github.com/stretchr/testify/assert"
)

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		given       func(*testing.T) string
		code        int
		body        string
		want        string
	}{
		{
			"search backend is accessible",
			func(t *testing.T) string {
				return test.NewBackend(t, 200, `<html></html>`).URL
			},
			200,
			`{"status":"OK"}`,
			``,
		},
		{
			"search backend answers with client error",
			func(t *testing.T) string {
				return test.NewBackend(t, 404, `Not Found`).URL
			},
			200,
			`{"status":"OK"}`,
			``,
		},
		{
			"search backend answers with server error",
			func(t *testing.T) string {
				return test.NewBackend(t, 500, `Internal Server Error`).URL
			},
			503,
			`{"backend":"Unable to connect to the search backend"}`,
			`search backend returned status: 500`,
		},
		{
			"search backend is not accessible",
			test.UnreachableURL,
			503,
			`{"backend":"Unable to connect to the search backend"}`,
			`Unable to connect to the search backend: unable to send request to search backend`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			var body, output bytes.Buffer

			cfg := newConfig(t, tc.given(t), &output)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", &bytes.Buffer{})

			Healthcheck(cfg).ServeHTTP(w, r)

			actual := w.Result()
			defer func() { _ = actual.Body.Close() }()

			_, _ = io.Copy(&body, actual.Body)

			assert.Equal(t, tc.code, actual.StatusCode)
			assert.Contains(t, body.String(), tc.body)
			assert.Contains(t, output.String(), tc.want)
		})
	}
}
