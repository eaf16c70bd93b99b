package wildtrails

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/preston-bernstein/permit-availability/internal/domain/reports"
	"github.com/preston-bernstein/permit-availability/internal/domain/trailheads"
	"github.com/preston-bernstein/permit-availability/internal/providers"
)

var (
	errUnexpectedHTTPStatus = errors.New("unexpected http status")
	errMissingResponse      = errors.New("missing response")
	errMissingValues        = errors.New("missing values")
)

// Config controls how the wildtrails client reaches the upstream API.
type Config struct {
	BaseURL    string
	Cookie     string
	HTTPClient *http.Client
}

// Client fetches the trailhead directory and per-region reports from the
// wildtrails query endpoint. It is safe for concurrent use.
type Client struct {
	baseURL    string
	headers    http.Header
	httpClient httpDoer
}

// NewClient constructs a wildtrails client with the provided configuration.
// The header set, including the session cookie, is fixed for the client's lifetime.
func NewClient(cfg Config) *Client {
	baseURL := normalizeBaseURL(cfg.BaseURL)
	return &Client{
		baseURL:    baseURL,
		headers:    commonHeaders(baseURL, cfg.Cookie),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
	}
}

// Name identifies the source in logs and metrics.
func (c *Client) Name() string { return sourceName }

// FetchDirectory retrieves the trailhead directory snapshot.
func (c *Client) FetchDirectory(ctx context.Context) (trailheads.Directory, error) {
	raw, err := c.query(ctx, providers.ResourceTrailheads, "")
	if err != nil {
		return trailheads.Directory{}, err
	}

	var payload trailheadsResponse
	if err := decodePayload(raw, &payload); err != nil {
		return trailheads.Directory{}, &providers.TransportError{
			Resource: providers.ResourceTrailheads,
			Err:      fmt.Errorf("decode trailheads: %w", err),
		}
	}
	if payload.Values == nil {
		return trailheads.Directory{}, &providers.TransportError{
			Resource: providers.ResourceTrailheads,
			Err:      fmt.Errorf("decode trailheads: %w", errMissingValues),
		}
	}
	return mapDirectory(payload), nil
}

// FetchReport retrieves and normalizes the daily occupancy report for region.
func (c *Client) FetchReport(ctx context.Context, region string) ([]reports.ReportDate, error) {
	raw, err := c.query(ctx, providers.ResourceReport, region)
	if err != nil {
		return nil, err
	}

	var payload reportResponse
	if err := decodePayload(raw, &payload); err != nil {
		return nil, &providers.TransportError{
			Resource: providers.ResourceReport,
			Region:   region,
			Err:      fmt.Errorf("decode report: %w", err),
		}
	}
	if payload.Values == nil {
		return nil, &providers.TransportError{
			Resource: providers.ResourceReport,
			Region:   region,
			Err:      fmt.Errorf("decode report: %w", errMissingValues),
		}
	}
	return normalizeReport(region, payload)
}

// query performs the GET, checks the envelope status, and returns the raw response payload.
func (c *Client) query(ctx context.Context, resource, region string) (json.RawMessage, error) {
	req, err := c.buildRequest(ctx, resource, region)
	if err != nil {
		return nil, &providers.TransportError{Resource: resource, Region: region, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &providers.TransportError{Resource: resource, Region: region, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &providers.TransportError{Resource: resource, Region: region, StatusCode: resp.StatusCode, Err: err}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		tErr := &providers.TransportError{Resource: resource, Region: region, Err: fmt.Errorf("decode envelope: %w", err)}
		if !isSuccess(resp.StatusCode) {
			tErr.StatusCode = resp.StatusCode
		}
		return nil, tErr
	}

	if env.Status.Type != statusMessage {
		return nil, &providers.UnexpectedResponseError{
			Resource: resource,
			Region:   region,
			Type:     env.Status.Type,
			Value:    env.Status.Value,
		}
	}

	if !isSuccess(resp.StatusCode) {
		return nil, &providers.TransportError{
			Resource:   resource,
			Region:     region,
			StatusCode: resp.StatusCode,
			Err:        errUnexpectedHTTPStatus,
		}
	}

	return env.Response, nil
}

func (c *Client) buildRequest(ctx context.Context, resource, region string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("resource", resource)
	if region != "" {
		q.Set("region", region)
	}
	req.URL.RawQuery = q.Encode()
	req.Header = c.headers.Clone()

	return req, nil
}

// decodePayload rejects an absent or null response before decoding it into dest.
func decodePayload(raw json.RawMessage, dest any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return errMissingResponse
	}
	return json.Unmarshal(trimmed, dest)
}

func isSuccess(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}
