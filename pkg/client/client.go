package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/app-sre/dbconsole/pkg/models"
	"github.com/app-sre/dbconsole/pkg/sqlbuild"
	"github.com/app-sre/dbconsole/pkg/version"
)

const (
	queryPath          = "/api/query"
	createDatabasePath = "/api/database/create"
	slavesPath         = "/api/slaves"

	connectTimeout = 5 * time.Second
	maxBodySize    = 64 << 20
)

var ErrUnexpectedResponse = errors.New("unexpected response")

// Client talks to the cluster HTTP API of a master or slave node.
type Client struct {
	endpoint string
	token    string

	client *http.Client
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.SetHTTPClient(client)
	}
}

// WithToken sets the credential sent with every query.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func New(endpoint string, options ...Option) *Client {
	c := &Client{endpoint: strings.TrimRight(endpoint, "/")}

	c.client = &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout: connectTimeout,
			}).DialContext,
		},
	}

	for _, option := range options {
		option(c)
	}

	return c
}

func (c *Client) SetHTTPClient(client *http.Client) {
	c.client = client
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Query binds the statement and submits it to the query endpoint.
func (c *Client) Query(ctx context.Context, stmt sqlbuild.Statement) (*models.QueryResult, error) {
	query, err := stmt.Bind()
	if err != nil {
		return nil, err
	}

	var result models.QueryResult
	if err := c.post(ctx, queryPath, &models.QueryRequest{Query: query, Token: c.token}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CreateDatabase(ctx context.Context, name string) (*models.QueryResult, error) {
	var result models.QueryResult
	if err := c.post(ctx, createDatabasePath, &models.CreateDatabaseRequest{DBName: name}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Slaves fetches the node registry of a master.
func (c *Client) Slaves(ctx context.Context) (models.SlaveRegistry, error) {
	req, err := c.request(ctx, http.MethodGet, slavesPath, nil)
	if err != nil {
		return nil, err
	}

	var registry models.SlaveRegistry
	if err := c.do(req, &registry); err != nil {
		return nil, err
	}
	if registry == nil {
		registry = models.SlaveRegistry{}
	}
	return registry, nil
}

// Ping checks that the node answers HTTP requests at all.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.request(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("unable to reach backend: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: %s", ErrUnexpectedResponse, resp.Status)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	content, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("unable to marshal request: %w", err)
	}

	req, err := c.request(ctx, http.MethodPost, path, bytes.NewReader(content))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) request(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return nil, fmt.Errorf("unable to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", fmt.Sprintf("dbconsole/%s", version.Version()))

	return req, nil
}

// do sends the request and decodes a JSON reply. The reply is decoded
// whatever the status code, since nodes report failures in the body; a body
// that is not JSON is an error.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("unable to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("unable to read response body: %w", err)
	}

	d := json.NewDecoder(bytes.NewReader(body))
	d.UseNumber()
	if err := d.Decode(out); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return fmt.Errorf("%w: %s: %s", ErrUnexpectedResponse, resp.Status, strings.TrimSpace(string(body)))
		}
		return fmt.Errorf("unable to unmarshal response: %w", err)
	}

	return nil
}
