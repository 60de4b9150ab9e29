package backend

import (
	"net/url"
	"os"
	"time"

	"github.com/aum-search/aum-web/pkg/env"
)

const (
	DefaultURL = "http://localhost:8000"

	// EncodingRaw appends the query to the URL as submitted, leaving
	// URL-significant characters such as "&" and "#" untouched.
	EncodingRaw = "raw"
	// EncodingEscape percent-encodes the whole query value.
	EncodingEscape = "escape"
)

type Env struct {
	URL      string
	Encoding string
	Timeout  time.Duration
}

func NewBackendEnv() *Env {
	return &Env{}
}

func (b *Env) Populate() error {
	address := os.Getenv("API_URL")
	if address == "" {
		address = DefaultURL
	}
	u, err := url.Parse(address)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return &env.TypeError{Name: "API_URL"}
	}
	b.URL = address

	switch encoding := os.Getenv("QUERY_ENCODING"); encoding {
	case "":
		b.Encoding = EncodingRaw
	case EncodingRaw, EncodingEscape:
		b.Encoding = encoding
	default:
		return &env.TypeError{Name: "QUERY_ENCODING"}
	}

	if s := os.Getenv("BACKEND_TIMEOUT"); s != "" {
		d, err := env.ParseDuration(s)
		if err != nil {
			return &env.TypeError{Name: "BACKEND_TIMEOUT"}
		}
		b.Timeout = d
	}

	return nil
}
