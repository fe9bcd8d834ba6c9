package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spec-kit/onboarding-service/internal/domain"
	apperrors "github.com/spec-kit/onboarding-service/pkg/errorutil"
)

// Client is a typed HTTP client for the directory, identity and details
// services. Every request carries a client-enforced timeout; failures are
// classified as timeout, HTTP-status error or generic network failure.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

// New builds a client rooted at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		timeout: timeout,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return apperrors.NewRequestTimeout(err)
		}
		return apperrors.NewNetworkError(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return apperrors.NewHTTPError(resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// Departments fetches the full department list.
func (c *Client) Departments(ctx context.Context) ([]domain.Department, error) {
	var items []domain.Department
	if err := c.do(ctx, http.MethodGet, "/departments", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Locations fetches the full location list.
func (c *Client) Locations(ctx context.Context) ([]domain.Location, error) {
	var items []domain.Location
	if err := c.do(ctx, http.MethodGet, "/locations", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SearchDepartments filters departments case-insensitively on substring
// containment. An empty query returns the full list.
func (c *Client) SearchDepartments(ctx context.Context, query string) ([]domain.Department, error) {
	items, err := c.Departments(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterLookup(items, query), nil
}

// SearchLocations filters locations like SearchDepartments.
func (c *Client) SearchLocations(ctx context.Context, query string) ([]domain.Location, error) {
	items, err := c.Locations(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterLookup(items, query), nil
}

type submitBasicInfoResponse struct {
	ID string `json:"id"`
}

// SubmitBasicInfo posts the step-1 payload to the identity service and
// returns the newly minted identifier.
func (c *Client) SubmitBasicInfo(ctx context.Context, info domain.BasicInfo) (string, error) {
	var resp submitBasicInfoResponse
	if err := c.do(ctx, http.MethodPost, "/basicInfo", info, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

type submitDetailsRequest struct {
	domain.Details
	BasicInfoID string `json:"basicInfoId"`
}

// SubmitDetails posts the step-2 payload augmented with the identifier from
// the basic-info phase. The response body is not meaningful.
func (c *Client) SubmitDetails(ctx context.Context, details domain.Details, basicInfoID string) error {
	return c.do(ctx, http.MethodPost, "/details", submitDetailsRequest{
		Details:     details,
		BasicInfoID: basicInfoID,
	}, nil)
}
