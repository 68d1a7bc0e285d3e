// Package network provides the HTTP client connectors share, with per-domain rate limiting.
package network

import (
	"net/http"
	"time"

	"github.com/anisan-cli/anifetch/constant"
)

// Client is shared by every connector so connection pools and rate limits apply across sessions.
var Client = &http.Client{
	Timeout: time.Minute,
	Transport: &limitedTransport{
		base:    newTransport(),
		limiter: Limiter,
	},
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}

// limitedTransport waits for the request's domain before sending it
// and fills in the user agent when the caller did not.
type limitedTransport struct {
	base    http.RoundTripper
	limiter func() *DomainLimiter
}

func (t *limitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter().Wait(req.Context(), req.URL.Hostname()); err != nil {
		return nil, err
	}

	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", constant.UserAgent)
	}

	return t.base.RoundTrip(req)
}
