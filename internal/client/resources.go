package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jengzang/indicators-dashboard-go/internal/models"
)

// FiltersPrefix is the path prefix of the indicator query endpoints
const FiltersPrefix = "filters/"

// GetAll fetches a catalog-style list wrapped in a {data, countData} envelope
func GetAll[T any](ctx context.Context, c *Client, endpoint string) (models.Envelope[T], error) {
	var env models.Envelope[T]

	data, err := c.Do(ctx, Request{Method: http.MethodGet, Endpoint: endpoint})
	if err != nil {
		return env, err
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return env, fmt.Errorf("failed to decode %s list: %w", endpoint, err)
	}
	return env, nil
}

// Get fetches one resource and decodes it into T
func Get[T any](ctx context.Context, c *Client, endpoint, id, query string) (T, error) {
	var out T

	data, err := c.Do(ctx, Request{Method: http.MethodGet, Endpoint: endpoint, ID: id, Query: query})
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("failed to decode %s: %w", endpoint, err)
	}
	return out, nil
}

// QueryIndicator runs an indicator query against filters/<endpoint>
func (c *Client) QueryIndicator(ctx context.Context, endpoint, query string) ([]models.ResultRow, error) {
	rows, err := Get[[]models.ResultRow](ctx, c, FiltersPrefix+endpoint, "", query)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.ResultRow{}
	}
	return rows, nil
}

// Create POSTs body as JSON
func (c *Client) Create(ctx context.Context, endpoint string, body any) ([]byte, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Endpoint: endpoint, Body: body})
}

// CreateMultipart POSTs fields as multipart/form-data
func (c *Client) CreateMultipart(ctx context.Context, endpoint string, fields map[string]any) ([]byte, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Endpoint: endpoint, Body: fields, Multipart: true})
}

// Update PATCHes the resource identified by id
func (c *Client) Update(ctx context.Context, endpoint, id string, body any) error {
	_, err := c.Do(ctx, Request{Method: http.MethodPatch, Endpoint: endpoint, ID: id, Body: body})
	return err
}

// Delete removes the resource identified by id
func (c *Client) Delete(ctx context.Context, endpoint, id string) error {
	_, err := c.Do(ctx, Request{Method: http.MethodDelete, Endpoint: endpoint, ID: id})
	return err
}
