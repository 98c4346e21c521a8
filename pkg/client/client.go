// Package client calls a remote valuation API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gregtusar/exotics/pkg/models"
)

type Client struct {
	baseURL    string
	auth       Authenticator
	httpClient *http.Client
}

// NewClient returns a client for the API at baseURL. auth may be nil.
func NewClient(baseURL string, auth Authenticator) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		auth:       auth,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func (c *Client) Value(ctx context.Context, req models.ValuationRequest) (*models.Report, error) {
	var report models.Report
	if err := c.do(ctx, http.MethodPost, "/api/valuations", req, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *Client) AddContract(ctx context.Context, spec models.ContractSpec) (*models.ContractSpec, error) {
	var created models.ContractSpec
	if err := c.do(ctx, http.MethodPost, "/api/contracts", spec, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) Contracts(ctx context.Context) ([]models.ContractSpec, error) {
	var specs []models.ContractSpec
	if err := c.do(ctx, http.MethodGet, "/api/contracts", nil, &specs); err != nil {
		return nil, err
	}
	return specs, nil
}

func (c *Client) RemoveContract(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, "/api/contracts?name="+url.QueryEscape(name), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.auth != nil {
		if err := c.auth.AddAuthHeaders(req); err != nil {
			return err
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var apiErr models.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Error == "" {
			apiErr.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
