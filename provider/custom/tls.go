package custom

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/anisan-cli/anifetch/constant"
	"github.com/anisan-cli/anifetch/network"
	"github.com/anisan-cli/anifetch/util"
	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

const tlsTimeout = 30 * time.Second

// fingerprintClient sends requests with a Chrome TLS fingerprint.
// HTTP/2 is tried first; when it fails the request is retried over HTTP/1.1.
type fingerprintClient struct {
	once sync.Once
	h2   *http.Client
	h1   *http.Client
}

var tlsClient = &fingerprintClient{}

func (c *fingerprintClient) init() {
	c.once.Do(func() {
		c.h2 = &http.Client{
			Timeout: tlsTimeout,
			Transport: &http2.Transport{
				DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
					return dialFingerprinted(ctx, network, addr, nil)
				},
			},
		}
		c.h1 = &http.Client{
			Timeout: tlsTimeout,
			Transport: &http.Transport{
				DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
					return dialFingerprinted(ctx, network, addr, []string{"http/1.1"})
				},
			},
		}
	})
}

type tlsResponse struct {
	Status  int               `json:"status"`
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers"`
}

// Do waits for the host's rate limit and sends the request.
func (c *fingerprintClient) Do(ctx context.Context, r tlsRequest) (tlsResponse, error) {
	c.init()

	build := func() (*http.Request, error) {
		var body io.Reader
		if r.Body != "" {
			body = strings.NewReader(r.Body)
		}

		req, err := http.NewRequestWithContext(ctx, r.Method, r.URL, body)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		req.Header.Set("User-Agent", constant.UserAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.5")
		for k, v := range r.Headers {
			req.Header.Set(k, v)
		}
		return req, nil
	}

	req, err := build()
	if err != nil {
		return tlsResponse{}, err
	}

	if err := network.Limiter().Wait(ctx, req.URL.Hostname()); err != nil {
		return tlsResponse{}, err
	}

	resp, err := c.h2.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return tlsResponse{}, ctx.Err()
		}

		if req, err = build(); err != nil {
			return tlsResponse{}, err
		}

		if resp, err = c.h1.Do(req); err != nil {
			return tlsResponse{}, fmt.Errorf("request failed: %w", err)
		}
	}
	defer util.Ignore(resp.Body.Close)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return tlsResponse{}, fmt.Errorf("read body: %w", err)
	}

	headers := make(map[string]string, len(resp.Header))
	for k := range resp.Header {
		headers[strings.ToLower(k)] = resp.Header.Get(k)
	}

	return tlsResponse{Status: resp.StatusCode, Body: string(body), Headers: headers}, nil
}

// dialFingerprinted performs a uTLS handshake. Nil protos advertises h2 and http/1.1 like Chrome.
func dialFingerprinted(ctx context.Context, network, addr string, protos []string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	conn, err := (&net.Dialer{Timeout: tlsTimeout}).DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
		NextProtos: protos,
	}, utls.HelloChrome_120)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}
