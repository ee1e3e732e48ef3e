// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/canonical/pelada-admin/internal/backend"
	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
)

const (
	restPath = "/rest/v1"
	// execFunction is the RPC the tenant project exposes to run schema statements
	execFunction = "exec_sql"

	maxErrorBody = 4096
)

// NewHTTPClient returns a traced client for tenant backends.
func NewHTTPClient() *http.Client {
	return &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
}

// Client speaks the PostgREST dialect exposed by hosted Postgres projects.
type Client struct {
	baseURL *url.URL
	key     string

	httpClient *http.Client

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (c *Client) Select(ctx context.Context, table string, q backend.Query) ([]backend.Row, error) {
	ctx, span := c.tracer.Start(ctx, "rest.Client.Select")
	defer span.End()

	columns := []string{table}
	for _, f := range q.Filters {
		columns = append(columns, f.Column)
	}
	if err := backend.ValidateIdentifiers(columns...); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("select", "*")
	for _, f := range q.Filters {
		params.Add(f.Column, fmt.Sprintf("eq.%v", f.Value))
	}
	if q.Limit > 0 {
		params.Set("limit", fmt.Sprint(q.Limit))
	}

	resp, err := c.do(ctx, http.MethodGet, c.endpoint(table, params), nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	rows := make([]backend.Row, 0)
	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode rows from %s: %v", table, err)
	}

	return rows, nil
}

func (c *Client) Insert(ctx context.Context, table string, rows ...backend.Row) error {
	ctx, span := c.tracer.Start(ctx, "rest.Client.Insert")
	defer span.End()

	return c.write(ctx, table, "", rows)
}

func (c *Client) Upsert(ctx context.Context, table, onConflict string, rows ...backend.Row) error {
	ctx, span := c.tracer.Start(ctx, "rest.Client.Upsert")
	defer span.End()

	if err := backend.ValidateIdentifiers(onConflict); err != nil {
		return err
	}

	return c.write(ctx, table, onConflict, rows)
}

func (c *Client) write(ctx context.Context, table, onConflict string, rows []backend.Row) error {
	if len(rows) == 0 {
		return nil
	}

	if err := backend.ValidateIdentifiers(table); err != nil {
		return err
	}

	body, err := json.Marshal(rows)
	if err != nil {
		return err
	}

	params := url.Values{}
	prefer := []string{"return=minimal"}
	if onConflict != "" {
		params.Set("on_conflict", onConflict)
		prefer = append(prefer, "resolution=merge-duplicates")
	}

	headers := http.Header{}
	headers.Set("Prefer", strings.Join(prefer, ","))

	resp, err := c.do(ctx, http.MethodPost, c.endpoint(table, params), headers, body)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()

	return nil
}

func (c *Client) Exec(ctx context.Context, statement string) error {
	ctx, span := c.tracer.Start(ctx, "rest.Client.Exec")
	defer span.End()

	body, err := json.Marshal(map[string]string{"query": statement})
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, http.MethodPost, c.endpoint("rpc/"+execFunction, nil), nil, body)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()

	return nil
}

// Close is a no-op, the transport is shared.
func (c *Client) Close() {}

func (c *Client) endpoint(resource string, params url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + restPath + "/" + resource
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}
	return u.String()
}

func (c *Client) do(ctx context.Context, method, target string, headers http.Header, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}

	for k, v := range headers {
		req.Header[k] = v
	}
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debugf("tenant backend %s unreachable: %v", c.baseURL.Host, err)
		_ = c.monitor.SetDependencyAvailability(map[string]string{"component": "tenant_backend"}, 0)
		return nil, fmt.Errorf("%w: %v", backend.ErrUnreachable, err)
	}
	_ = c.monitor.SetDependencyAvailability(map[string]string{"component": "tenant_backend"}, 1)

	if resp.StatusCode < http.StatusBadRequest {
		return resp, nil
	}

	defer resp.Body.Close()
	return nil, c.statusError(resp)
}

func (c *Client) statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	apiErr := new(apiError)
	if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(raw))
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", backend.ErrUnauthorized, apiErr.Message)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", backend.ErrNotFound, apiErr.Message)
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: status %d: %s", backend.ErrUnreachable, resp.StatusCode, apiErr.Message)
	}

	return fmt.Errorf("backend request failed with status %d: %s %s", resp.StatusCode, apiErr.Code, apiErr.Message)
}

// NewClient builds a handle for the project at rawURL authenticated with key.
func NewClient(rawURL, key string, httpClient *http.Client, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*Client, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %v", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend url scheme %q", u.Scheme)
	}

	if u.Host == "" {
		return nil, fmt.Errorf("invalid backend url: missing host")
	}

	if httpClient == nil {
		httpClient = NewHTTPClient()
	}

	c := new(Client)
	c.baseURL = u
	c.key = key
	c.httpClient = httpClient

	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c, nil
}
