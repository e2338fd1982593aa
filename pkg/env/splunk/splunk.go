package splunk

import (
	"os"

	"github.com/app-sre/dbconsole/pkg/env"
)

// Env configures the optional Splunk audit sink. The sink is disabled unless
// SPLUNK_ENDPOINT is set.
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

func (s *Env) Enabled() bool {
	return s.Endpoint != ""
}

func (s *Env) Populate() error {
	s.Endpoint = os.Getenv("SPLUNK_ENDPOINT")
	if s.Endpoint == "" {
		return nil
	}

	index := os.Getenv("SPLUNK_INDEX")
	if index == "" {
		return &env.Error{Name: "SPLUNK_INDEX"}
	}
	s.Index = index

	token := os.Getenv("SPLUNK_TOKEN")
	if token == "" {
		return &env.Error{Name: "SPLUNK_TOKEN"}
	}
	s.Token = token

	s.Host = os.Getenv("HOST")
	if s.Host == "" {
		s.Host, _ = os.Hostname()
	}
	s.Namespace = os.Getenv("NAMESPACE")
	s.Pod = os.Getenv("POD_NAME")

	return nil
}
