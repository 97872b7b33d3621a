// Package client talks to the talentmatch HTTP API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/okian/talentmatch/internal/domain/matching"
	"github.com/okian/talentmatch/internal/domain/model"
	"github.com/okian/talentmatch/pkg/logger"
)

// Client is a thin typed wrapper over the JSON envelope API.
type Client struct {
	http    *resty.Client
	timeout time.Duration
	retries int
	workers int
	logger  logger.Logger
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		timeout: DefaultTimeout,
		workers: DefaultWorkers,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.http = resty.New().
		SetBaseURL(baseURL).
		SetTimeout(c.timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(c.retries).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		})
	return c
}

// Matches is the result of a ranking call.
type Matches struct {
	RequestID string
	Total     int
	Matches   []matching.Match
}

// Health checks that the server answers /healthz.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Get("/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	if resp.StatusCode() != http.StatusOK || gjson.Get(resp.String(), "status").String() != "ok" {
		return fmt.Errorf("%w: healthz returned %d", ErrUnexpectedStatus, resp.StatusCode())
	}
	return nil
}

// CreateRequest posts a client request and returns the stored record.
func (c *Client) CreateRequest(ctx context.Context, r model.Request) (model.Request, error) {
	var out model.Request
	err := c.do(ctx, http.MethodPost, "/api/clients/requests", r, nil, "data", &out)
	return out, err
}

// CreateTalent posts a talent and returns the stored record.
func (c *Client) CreateTalent(ctx context.Context, t model.Talent) (model.Talent, error) {
	var out model.Talent
	err := c.do(ctx, http.MethodPost, "/api/talents", t, nil, "data", &out)
	return out, err
}

// GetRequest fetches one client request.
func (c *Client) GetRequest(ctx context.Context, id string) (model.Request, error) {
	var out model.Request
	err := c.do(ctx, http.MethodGet, "/api/clients/requests/"+id, nil, nil, "data", &out)
	return out, err
}

// ListRequests fetches every client request, newest first.
func (c *Client) ListRequests(ctx context.Context) ([]model.Request, error) {
	var out []model.Request
	err := c.do(ctx, http.MethodGet, "/api/clients/requests", nil, nil, "data", &out)
	return out, err
}

// FindMatches ranks talents against request id. limit < 1 leaves the choice to the server.
func (c *Client) FindMatches(ctx context.Context, id string, limit int) (Matches, error) {
	var query map[string]string
	if limit > 0 {
		query = map[string]string{"limit": strconv.Itoa(limit)}
	}
	body, err := c.call(ctx, http.MethodGet, "/api/clients/requests/"+id+"/matches", nil, query)
	if err != nil {
		return Matches{}, err
	}
	matches, err := DecodeMatches(body, "data.matches")
	if err != nil {
		return Matches{}, err
	}
	return Matches{
		RequestID: gjson.Get(body, "data.requestId").String(),
		Total:     int(gjson.Get(body, "data.totalMatches").Int()),
		Matches:   matches,
	}, nil
}

// FindTopMatches returns the server's top matches for request id.
func (c *Client) FindTopMatches(ctx context.Context, id string) ([]matching.Match, error) {
	body, err := c.call(ctx, http.MethodGet, "/api/clients/requests/"+id+"/top-matches", nil, nil)
	if err != nil {
		return nil, err
	}
	return DecodeMatches(body, "data.topMatches")
}

// DecodeMatches reads the match list at path of a JSON document.
func DecodeMatches(body, path string) ([]matching.Match, error) {
	res := gjson.Get(body, path)
	if !res.Exists() {
		return nil, fmt.Errorf("%w: missing %s", ErrUnexpectedStatus, path)
	}
	var out []matching.Match
	if err := json.Unmarshal([]byte(res.Raw), &out); err != nil {
		return nil, fmt.Errorf("decode matches: %w", err)
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, url string, in any, query map[string]string, path string, out any) error {
	body, err := c.call(ctx, method, url, in, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(gjson.Get(body, path).Raw), out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, url, err)
	}
	return nil
}

// call sends one request and returns the raw body of a successful envelope.
func (c *Client) call(ctx context.Context, method, url string, in any, query map[string]string) (string, error) {
	req := c.http.R().SetContext(ctx)
	if in != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(in)
	}
	if query != nil {
		req.SetQueryParams(query)
	}

	resp, err := req.Execute(method, url)
	if err != nil {
		return "", fmt.Errorf("%w: %s %s: %w", ErrRequestFailed, method, url, err)
	}

	body := resp.String()
	if resp.IsError() || !gjson.Get(body, "success").Bool() {
		err := statusError(resp.StatusCode(), body)
		c.logger.Debug(ctx, "api call failed",
			logger.String("method", method),
			logger.String("url", url),
			logger.Int("status", resp.StatusCode()),
			logger.Error(err),
		)
		return "", err
	}
	return body, nil
}

// statusError maps an error response onto the package sentinels.
func statusError(status int, body string) error {
	msg := gjson.Get(body, "message").String()
	if detail := gjson.Get(body, "error").String(); detail != "" {
		msg += ": " + detail
	}

	var sentinel error
	switch status {
	case http.StatusNotFound:
		sentinel = ErrNotFound
	case http.StatusConflict:
		sentinel = ErrConflict
	case http.StatusTooManyRequests:
		sentinel = ErrRateLimited
	default:
		sentinel = ErrUnexpectedStatus
	}
	return fmt.Errorf("%w: status %d: %s", sentinel, status, msg)
}
