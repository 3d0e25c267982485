// Package client is the HTTP counterpart of the plan API: the same
// save/get/delete surface the storage backends offer, spoken over REST.
// The TUI uses it to edit plans held by a remote engage server.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/julianstephens/engage/internal/models"
	"github.com/julianstephens/engage/internal/storage"
)

type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the plan API at baseURL (e.g.
// "http://127.0.0.1:8787").
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type statusResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// GetAllPlans fetches every plan, newest-created first.
func (c *Client) GetAllPlans() ([]models.Plan, error) {
	var plans []models.Plan
	if err := c.do(http.MethodGet, "/plans", nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// GetPlan fetches one plan by id. A 404 maps to storage.ErrNotFound.
func (c *Client) GetPlan(id string) (models.Plan, error) {
	var plan models.Plan
	if err := c.do(http.MethodGet, "/plans/"+id, nil, &plan); err != nil {
		return models.Plan{}, err
	}
	return plan, nil
}

// SavePlan replaces the plan wholesale. The server upserts on PUT, so
// this covers both first and subsequent writes.
func (c *Client) SavePlan(plan models.Plan) error {
	var status statusResponse
	return c.do(http.MethodPut, "/plans/"+plan.ID, plan, &status)
}

// CreatePlan explicitly POSTs a new plan.
func (c *Client) CreatePlan(plan models.Plan) error {
	var status statusResponse
	return c.do(http.MethodPost, "/plans", plan, &status)
}

// DeletePlan removes a plan and all its steps.
func (c *Client) DeletePlan(id string) error {
	var status statusResponse
	return c.do(http.MethodDelete, "/plans/"+id, nil, &status)
}

// Health checks server reachability.
func (c *Client) Health() error {
	return c.do(http.MethodGet, "/health", nil, nil)
}

func (c *Client) do(method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("plan API unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, path)
	}
	if resp.StatusCode >= 400 {
		var apiErr errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("plan API error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("plan API error: %s", resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
