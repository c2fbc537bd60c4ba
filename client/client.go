package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// --------------------------------------------------------------------
// debugTransport – optional HTTP round-trip logger
// --------------------------------------------------------------------

type debugTransport struct{ base http.RoundTripper }

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqDump, err := httputil.DumpRequestOut(req, true)
	if err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_id", req.Header.Get("X-Request-Id")).Str("request_dump", string(reqDump)).Msg("HTTP request")
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	respDump, err := httputil.DumpResponse(resp, true)
	if err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client talks to the school-registry HTTP API. It holds no session
// state; the bearer token is supplied per call by the caller.
type Client struct {
	baseURL string
	http    *http.Client
}

// New constructs a Client with optional functional arguments.
func New(base string, opts ...Option) *Client {
	c := &Client{
		baseURL: base,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			panic(err)
		}
	}
	return c
}

// newRequest builds an API request with a fresh X-Request-Id so that
// round trips can be correlated in debug output.
func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	return req, nil
}
