package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"golang.org/x/time/rate"
	"opencsg.com/csghub-release/common/errorx"
	"opencsg.com/csghub-release/common/utils/common"
)

const maxErrorBodyLen = 2048

func NewHttpClient(endpoint string, opts ...RequestOption) *HttpClient {
	return &HttpClient{
		endpoint: endpoint,
		hc:       http.DefaultClient,
		authOpts: opts,
		retry:    1,
		delay:    200 * time.Millisecond,
		logger:   slog.Default(),
	}
}

type HttpClient struct {
	endpoint string
	hc       *http.Client
	authOpts []RequestOption
	// total attempts of an idempotent request, including the first one
	retry   uint
	delay   time.Duration
	limiter *rate.Limiter
	logger  *slog.Logger
}

// WithHTTPClient replaces http.DefaultClient, e.g. with an authenticating one.
func (c *HttpClient) WithHTTPClient(hc *http.Client) *HttpClient {
	if hc != nil {
		c.hc = hc
	}
	return c
}

// WithRateLimit makes every request wait for a token from limiter. Clients
// sharing a limiter share its budget.
func (c *HttpClient) WithRateLimit(limiter *rate.Limiter) *HttpClient {
	c.limiter = limiter
	return c
}

func (c *HttpClient) WithRetry(attempts uint) *HttpClient {
	if attempts == 0 {
		attempts = 1
	}
	c.retry = attempts
	return c
}

func (c *HttpClient) WithDelay(delay time.Duration) *HttpClient {
	c.delay = delay
	return c
}

func (c *HttpClient) WithLogger(logger *slog.Logger) *HttpClient {
	if logger != nil {
		c.logger = logger
	}
	return c
}

func (c *HttpClient) Get(ctx context.Context, path string, outObj interface{}) error {
	_, err := c.Do(ctx, http.MethodGet, path, nil, outObj, http.StatusOK)
	return err
}

func (c *HttpClient) Post(ctx context.Context, path string, data interface{}, outObj interface{}) error {
	_, err := c.Do(ctx, http.MethodPost, path, data, outObj, http.StatusOK, http.StatusCreated)
	return err
}

func (c *HttpClient) Delete(ctx context.Context, path string) error {
	_, err := c.Do(ctx, http.MethodDelete, path, nil, nil, http.StatusOK, http.StatusNoContent)
	return err
}

// Do sends a JSON request and decodes a JSON response into outObj.
// A status outside okCodes is returned as *errorx.HTTPError. GET, HEAD and
// DELETE are retried on transport errors and 5xx responses.
func (c *HttpClient) Do(ctx context.Context, method, path string, data interface{}, outObj interface{}, okCodes ...int) (http.Header, error) {
	body, err := marshalBody(data)
	if err != nil {
		return nil, err
	}

	attempts := uint(1)
	if isIdempotent(method) {
		attempts = c.retry
	}

	var header http.Header
	err = retry.Do(
		func() error {
			h, err := c.do(ctx, method, path, body, outObj, okCodes...)
			header = h
			return err
		},
		retry.Attempts(attempts),
		retry.Delay(c.delay),
		retry.MaxDelay(2*time.Second),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return false
			}
			var httpErr *errorx.HTTPError
			if errors.As(err, &httpErr) {
				return httpErr.StatusCode >= http.StatusInternalServerError
			}
			return true
		}),
		retry.OnRetry(func(n uint, err error) {
			c.logger.WarnContext(ctx, "http request failed, retrying",
				slog.String("method", method),
				slog.String("path", path),
				slog.Uint64("attempt", uint64(n+1)),
				slog.Uint64("max_attempts", uint64(attempts)),
				slog.Any("error", err),
			)
		}),
	)
	return header, err
}

func (c *HttpClient) do(ctx context.Context, method, path string, body []byte, outObj interface{}, okCodes ...int) (http.Header, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	resp, err := c.send(req)
	if err != nil {
		return nil, fmt.Errorf("failed to do http request, path:%s, err:%w", path, err)
	}
	defer resp.Body.Close()

	if !statusAllowed(resp.StatusCode, okCodes...) {
		respBody, _ := io.ReadAll(resp.Body)
		bodyText := common.TruncString(string(respBody), maxErrorBodyLen)
		c.logger.DebugContext(ctx, "http request returned unexpected status",
			slog.String("method", method),
			slog.String("url", req.URL.String()),
			slog.Int("status", resp.StatusCode),
			slog.String("body", bodyText),
		)
		return resp.Header, fmt.Errorf("unexpected response status, path:%s: %w", path,
			&errorx.HTTPError{StatusCode: resp.StatusCode, Message: bodyText})
	}

	if outObj == nil {
		return resp.Header, nil
	}
	if buf, ok := outObj.(*bytes.Buffer); ok {
		_, err = buf.ReadFrom(resp.Body)
		return resp.Header, err
	}
	if err := json.NewDecoder(resp.Body).Decode(outObj); err != nil && !errors.Is(err, io.EOF) {
		return resp.Header, fmt.Errorf("failed to decode response, path:%s, err:%w", path, err)
	}
	return resp.Header, nil
}

func (c *HttpClient) send(req *http.Request) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}
	return c.hc.Do(req)
}

func (c *HttpClient) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	fullPath := fmt.Sprintf("%s%s", c.endpoint, path)
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullPath, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range c.authOpts {
		opt.Set(req)
	}
	return req, nil
}

func marshalBody(data interface{}) ([]byte, error) {
	if data == nil {
		return nil, nil
	}
	body, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return body, nil
}

func isIdempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		return true
	}
	return false
}

func statusAllowed(status int, okCodes ...int) bool {
	if len(okCodes) == 0 {
		return status >= 200 && status < 300
	}
	for _, code := range okCodes {
		if status == code {
			return true
		}
	}
	return false
}
