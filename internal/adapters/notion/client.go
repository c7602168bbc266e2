package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	perr "replyhub/internal/platform/errors"
	"replyhub/internal/platform/logger"
)

const (
	baseURLDefault   = "https://api.notion.com"
	apiVersion       = "2022-06-28"
	defaultTimeout   = 15 * time.Second
	defaultUA        = "replyhub"
	defaultMaxRetry  = 5
	defaultRetryBase = 500 * time.Millisecond
)

// TokenSource yields the bearer token for the next request.
// Implementations may rotate OAuth grants or fall back to a static key
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource backed by a fixed integration key
type StaticToken string

// Token returns the fixed key
func (s StaticToken) Token(context.Context) (string, error) { return string(s), nil }

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Retry config for transient and rate limited responses
	MaxRetries int
	RetryBase  time.Duration
}

// Client is a minimal Notion REST client with retries and rate limit handling
type Client struct {
	http  *http.Client
	opts  Options
	tok   TokenSource
	log   logger.Logger
	now   func() time.Time
	sleep func(time.Duration)
}

// NewClient creates a new Client with sane defaults
func NewClient(tok TokenSource, o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		tok:   tok,
		log:   *logger.Named("notion"),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// Do issues a request with auth and version headers, retries, and rate limit handling
func (c *Client) Do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	url := c.opts.BaseURL + path
	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		var rdr io.Reader
		if body != nil {
			rdr = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, rdr)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "notion new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Notion-Version", apiVersion)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		tok, err := c.tok.Token(ctx)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnauthorized, "notion token source failed")
		}
		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			if !c.shouldRetry(attempts) {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "notion do failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("notion transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		c.log.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("notion http response")

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated, http.StatusAccepted:
			return resp, nil
		case http.StatusTooManyRequests:
			wait := retryAfter(resp.Header)
			if wait <= 0 {
				wait = c.backoff(attempts)
			}
			if !c.shouldRetry(attempts) {
				_ = drainAndClose(resp.Body)
				return nil, perr.Newf(perr.ErrorCodeTooManyRequests, "notion rate limited")
			}
			c.log.Warn().Dur("sleep", wait).Msg("notion rate limited backing off")
			_ = drainAndClose(resp.Body)
			c.sleep(wait)
			attempts++
			continue
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			if !c.shouldRetry(attempts) {
				_ = drainAndClose(resp.Body)
				return nil, perr.Newf(perr.ErrorCodeUnavailable, "notion transient server error")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("notion transient error retrying")
			_ = drainAndClose(resp.Body)
			c.sleep(back)
			attempts++
			continue
		case http.StatusUnauthorized:
			_ = drainAndClose(resp.Body)
			return nil, perr.Newf(perr.ErrorCodeUnauthorized, "notion unauthorized")
		case http.StatusNotFound:
			_ = drainAndClose(resp.Body)
			return nil, perr.NotFoundf("notion resource not found")
		default:
			tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return nil, perr.Remotef("notion unexpected status %d body %s", resp.StatusCode, string(tail))
		}
	}
}

// RetrieveDatabase fetches a database schema by id
func (c *Client) RetrieveDatabase(ctx context.Context, databaseID string) (Database, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/v1/databases/"+databaseID, nil)
	if err != nil {
		return Database{}, err
	}
	defer c.closeBody(resp, "databases/"+databaseID)

	var out Database
	if err := decodeBody(resp.Body, &out); err != nil {
		return Database{}, perr.Wrapf(err, perr.ErrorCodeRemote, "notion database decode failed")
	}
	return out, nil
}

// queryBody is the query endpoint request shape
type queryBody struct {
	PageSize    int    `json:"page_size"`
	StartCursor string `json:"start_cursor,omitempty"`
}

// QueryDatabase fetches one page of rows. startCursor is empty for the first page
func (c *Client) QueryDatabase(ctx context.Context, databaseID, startCursor string, pageSize int) (QueryPage, error) {
	body, err := json.Marshal(queryBody{PageSize: pageSize, StartCursor: startCursor})
	if err != nil {
		return QueryPage{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "notion query marshal failed")
	}
	resp, err := c.Do(ctx, http.MethodPost, "/v1/databases/"+databaseID+"/query", body)
	if err != nil {
		return QueryPage{}, err
	}
	defer c.closeBody(resp, "databases/"+databaseID+"/query")

	var out QueryPage
	if err := decodeBody(resp.Body, &out); err != nil {
		return QueryPage{}, perr.Wrapf(err, perr.ErrorCodeRemote, "notion query decode failed")
	}
	return out, nil
}

// UpdatePageProperties patches page properties with the given write payloads
func (c *Client) UpdatePageProperties(ctx context.Context, pageID string, props map[string]PropertyWrite) error {
	body, err := json.Marshal(struct {
		Properties map[string]PropertyWrite `json:"properties"`
	}{Properties: props})
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "notion update marshal failed")
	}
	resp, err := c.Do(ctx, http.MethodPatch, "/v1/pages/"+pageID, body)
	if err != nil {
		return err
	}
	defer c.closeBody(resp, "pages/"+pageID)
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
	return nil
}

func (c *Client) closeBody(resp *http.Response, path string) {
	if cerr := resp.Body.Close(); cerr != nil {
		c.log.Error().Err(cerr).Str("path", path).Msg("notion close body failed")
	}
}

func decodeBody(r io.Reader, out any) error {
	b, err := io.ReadAll(io.LimitReader(r, 4<<20))
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func retryAfter(h http.Header) time.Duration {
	s := h.Get("Retry-After")
	if s == "" {
		return 0
	}
	sec, _ := strconv.Atoi(s)
	if sec <= 0 {
		return 0
	}
	return time.Duration(sec) * time.Second
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase
	// simple exponential with cap
	ms := int64(d / time.Millisecond)
	ms = ms << uint(attempt)
	max := int64(30 * time.Second / time.Millisecond)
	if ms > max {
		ms = max
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}
