package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/Astemirdum/library-view/pkg/circuit_breaker"
	"github.com/Astemirdum/library-view/pkg/validate"
	"github.com/Astemirdum/library-view/view/config"
	"github.com/Astemirdum/library-view/view/internal/errs"
	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// profilePath has its own application level cache and is never cache-busted.
const profilePath = "/profile"

// TokenSource yields the bearer token of the current session, "" when anonymous.
type TokenSource interface {
	Token() string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

func WithBreaker(cb circuit_breaker.CircuitBreaker) Option {
	return func(c *Client) {
		c.cb = cb
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// Client is the only way out to the backend. Every call goes through do,
// which attaches credentials, defeats caches and reacts to 401 answers.
type Client struct {
	log     *zap.Logger
	client  *http.Client
	baseURL *url.URL
	tokens  TokenSource
	cb      circuit_breaker.CircuitBreaker
	now     func() time.Time

	onUnauthorized atomic.Pointer[func()]
}

func NewClient(log *zap.Logger, cfg config.API, tokens TokenSource, opts ...Option) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse API_BASE_URL")
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.Errorf("invalid API_BASE_URL %q", cfg.BaseURL)
	}
	c := &Client{
		log: log.Named("api"),
		// no client side timeout: the backend owns it, callers bound requests by context
		client:  &http.Client{},
		baseURL: base,
		tokens:  tokens,
		now:     time.Now,
	}
	if cfg.CircuitBreaker {
		c.cb = circuit_breaker.New(100, time.Second, 0.2, 2)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// OnUnauthorized installs the hook run on every 401 answer.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized.Store(&fn)
}

// CB is nil unless the breaker is enabled.
func (c *Client) CB() circuit_breaker.CircuitBreaker {
	return c.cb
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var payload []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "marshal request")
		}
		payload = b
	}
	if c.cb == nil {
		return c.roundTrip(ctx, method, path, query, payload, out)
	}
	return c.cb.Call(func() error {
		err := c.roundTrip(ctx, method, path, query, payload, out)
		var apiErr *errs.APIError
		if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
			return circuit_breaker.Ignore{Err: err}
		}
		return err
	})
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, payload []byte, out any) error {
	u := c.baseURL.JoinPath(path)
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	bust := method == http.MethodGet && path != profilePath
	if bust {
		q.Set("_t", strconv.FormatInt(c.now().UnixMilli(), 10))
	}
	u.RawQuery = q.Encode()

	var body io.Reader = http.NoBody
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return errors.Wrap(err, "new request")
	}
	reqID := uuid.NewString()
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderXRequestID, reqID)
	if payload != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		}
	}
	if bust {
		req.Header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
		req.Header.Set("Pragma", "no-cache")
		req.Header.Set("Expires", "0")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "read %s %s", method, path)
	}
	c.log.Debug("backend call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", reqID),
	)

	if resp.StatusCode == http.StatusUnauthorized {
		if fn := c.onUnauthorized.Load(); fn != nil {
			(*fn)()
		}
		return errs.NewAPIError(resp.StatusCode, data)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errs.NewAPIError(resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "decode %s %s", method, path)
	}
	return nil
}

func listQuery(q model.Query) url.Values {
	v := url.Values{}
	v.Set("skip", strconv.Itoa(q.Skip))
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

func validateRequest(req any) error {
	return errs.FromValidator(validate.Struct(req))
}
