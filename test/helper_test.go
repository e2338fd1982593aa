//go:build integration
// +build integration

package test

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/orlangure/gnomock"
	"github.com/orlangure/gnomock/preset/postgres"
	"github.com/orlangure/gnomock/preset/splunk"
	"github.com/stretchr/testify/require"
)

const consolePort = 8080

func dummyHTTPClient() http.Client {
	return http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec
		},
	}
}

func createSplunkIngestToken(t *testing.T, client http.Client, host, port, password string) string {
	splunkURL := fmt.Sprintf("https://%s:%s/servicesNS/admin/splunk_httpinput/data/inputs/http?output_mode=json", host, port)

	req, err := http.NewRequest(http.MethodPost, splunkURL, bytes.NewBufferString(`name=dbconsole`))
	require.NoError(t, err)
	req.SetBasicAuth("admin", password)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	response := struct {
		Entry []struct {
			Content struct {
				Token string `json:"token"`
			} `json:"content"`
		} `json:"entry"`
	}{}

	require.NoError(t, json.Unmarshal(respBody, &response))
	require.NotEmpty(t, response.Entry)

	return response.Entry[0].Content.Token
}

func startPostgres(t *testing.T) *gnomock.Container {
	p := postgres.Preset(
		postgres.WithUser("gnomock", "gnomick"),
		postgres.WithDatabase("shop"),
		postgres.WithQueries(
			`CREATE TABLE users (id INT PRIMARY KEY, name TEXT)`,
			`INSERT INTO users VALUES (1, 'alice'), (2, 'bob')`,
		),
	)

	options := p.Options()
	options = append(options, gnomock.WithRegistryAuth(os.Getenv("QUAY_TOKEN")))
	options = append(options, gnomock.WithUseLocalImagesFirst())
	psql, err := gnomock.StartCustom("quay.io/app-sre/postgres:12.5", p.Ports(),
		options...,
	)
	require.NoError(t, err)

	t.Cleanup(func() { _ = gnomock.Stop(psql) })

	return psql
}

func startSplunk(t *testing.T, password string) *gnomock.Container {
	s := splunk.Preset(
		splunk.WithVersion("latest"),
		splunk.WithLicense(true),
		splunk.WithPassword(password),
	)

	options := s.Options()
	options = append(options, gnomock.WithRegistryAuth(os.Getenv("QUAY_TOKEN")))
	options = append(options, gnomock.WithUseLocalImagesFirst())
	container, err := gnomock.StartCustom("quay.io/app-sre/splunk:latest", s.Ports(),
		options...,
	)
	require.NoError(t, err)

	t.Cleanup(func() { _ = gnomock.Stop(container) })

	return container
}

func setEnvironment(t *testing.T, role, dbHost, dbPort, splunkToken, splunkEndpoint string) {
	t.Setenv("BACKEND_KIND", "sql")
	t.Setenv("CONSOLE_ROLE", role)
	t.Setenv("CONSOLE_PORT", strconv.Itoa(consolePort))

	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DB_HOST", dbHost)
	t.Setenv("DB_PORT", dbPort)
	t.Setenv("DB_USER", "gnomock")
	t.Setenv("DB_PASS", "gnomick")
	t.Setenv("DB_NAME", "shop")

	if splunkEndpoint != "" {
		t.Setenv("SPLUNK_INDEX", "main")
		t.Setenv("SPLUNK_TOKEN", splunkToken)
		t.Setenv("SPLUNK_ENDPOINT", splunkEndpoint)

		t.Setenv("HOST", "test")
		t.Setenv("NAMESPACE", "test")
		t.Setenv("POD_NAME", "test")
	}
}

func waitForPortOpen(port int) {
	address := net.JoinHostPort("localhost", strconv.Itoa(port))
	for {
		conn, err := net.DialTimeout("tcp", address, 500*time.Millisecond)
		if err == nil {
			_ = conn.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
}
