package splunk

import (
	"os"

	"github.com/aum-search/aum-web/pkg/env"
)

type Env struct {
	Index     string
	Endpoint  string
	Token     string
	Host      string
	Namespace string
	Pod       string
}

func NewSplunkEnv() *Env {
	return &Env{}
}

// Populate leaves the Splunk audit disabled when SPLUNK_ENDPOINT is not set.
// Once it is set, all remaining variables are required.
func (s *Env) Populate() error {
	endpoint := os.Getenv("SPLUNK_ENDPOINT")
	if endpoint == "" {
		return nil
	}

	required := []struct {
		name  string
		value *string
	}{
		{"SPLUNK_INDEX", &s.Index},
		{"SPLUNK_TOKEN", &s.Token},
		{"HOST", &s.Host},
		{"NAMESPACE", &s.Namespace},
		{"POD_NAME", &s.Pod},
	}
	for _, r := range required {
		v := os.Getenv(r.name)
		if v == "" {
			return &env.Error{Name: r.name}
		}
		*r.value = v
	}
	s.Endpoint = endpoint

	return nil
}

func (s *Env) Enabled() bool {
	return s.Endpoint != ""
}
