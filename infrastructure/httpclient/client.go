// Package httpclient implements ports.HTTPClient on top of net/http.
package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	stdErrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gh0stintheshe11/Web-Client/domain/entities"
	"github.com/gh0stintheshe11/Web-Client/domain/errors"
	"github.com/gh0stintheshe11/Web-Client/domain/ports"
)

// Option is a functional option for configuring the client.
type Option func(*clientConfig)

type clientConfig struct {
	tlsConfig      *tls.Config
	userAgent      string
	timeout        time.Duration
	connectTimeout time.Duration
	maxBodySize    int64
	maxRedirects   int
}

func defaultClientConfig() clientConfig {
	return clientConfig{
		timeout:        30 * time.Second,
		connectTimeout: 10 * time.Second,
		maxRedirects:   10,
		maxBodySize:    10 * 1024 * 1024, // 10MB
	}
}

// WithTimeout sets the overall request timeout, body read included.
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithConnectTimeout sets the dial timeout.
func WithConnectTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		if d > 0 {
			c.connectTimeout = d
		}
	}
}

// WithMaxRedirects sets the maximum number of redirects to follow.
// Zero disables redirect following; the 3xx response is returned as is.
func WithMaxRedirects(n int) Option {
	return func(c *clientConfig) {
		if n >= 0 {
			c.maxRedirects = n
		}
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) Option {
	return func(c *clientConfig) {
		if size > 0 {
			c.maxBodySize = size
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// WithTLSConfig sets the TLS configuration used for https targets.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(c *clientConfig) {
		c.tlsConfig = cfg
	}
}

// FromSettings translates loaded settings into client options.
func FromSettings(s *entities.Settings) []Option {
	if s == nil {
		return nil
	}
	return []Option{
		WithTimeout(s.Timeout),
		WithConnectTimeout(s.ConnectTimeout),
		WithMaxRedirects(s.MaxRedirects),
		WithMaxBodySize(s.MaxBodyBytes),
		WithUserAgent(s.UserAgent),
	}
}

// Client is a net/http backed ports.HTTPClient.
type Client struct {
	http *http.Client
	cfg  clientConfig
}

// Compile-time interface check
var _ ports.HTTPClient = (*Client)(nil)

// New creates a Client.
func New(opts ...Option) *Client {
	cfg := defaultClientConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Client{
		http: createHTTPClient(cfg),
		cfg:  cfg,
	}
}

// Get implements ports.HTTPClient.
func (c *Client) Get(ctx context.Context, url string) (*ports.HTTPResponse, error) {
	return c.do(ctx, http.MethodGet, url, nil, nil)
}

// Post implements ports.HTTPClient.
func (c *Client) Post(ctx context.Context, url string, headers map[string]string, body []byte) (*ports.HTTPResponse, error) {
	return c.do(ctx, http.MethodPost, url, headers, body)
}

func (c *Client) do(ctx context.Context, method, url string, headers map[string]string, body []byte) (*ports.HTTPResponse, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, &errors.NetworkError{Operation: errors.OpRequest, Target: url, Err: err}
	}

	if c.cfg.userAgent != "" {
		req.Header.Set("User-Agent", c.cfg.userAgent)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		op := errors.OpRequest
		if isConnectError(err) {
			op = errors.OpConnect
		}
		return nil, &errors.NetworkError{Operation: op, Target: req.URL.Host, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	return readResponse(resp, c.cfg.maxBodySize)
}

// createHTTPClient creates an HTTP client with the configured timeouts and
// redirect policy.
func createHTTPClient(cfg clientConfig) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.connectTimeout,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		TLSClientConfig:       cfg.tlsConfig,
	}

	client := &http.Client{
		Timeout:   cfg.timeout,
		Transport: transport,
	}

	if cfg.maxRedirects == 0 {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	} else {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			if len(via) >= cfg.maxRedirects {
				return fmt.Errorf("stopped after %d redirects", cfg.maxRedirects)
			}
			return nil
		}
	}

	return client
}

// isConnectError reports whether the server was never reached.
// Name resolution, dial and TLS handshake failures all count.
func isConnectError(err error) bool {
	var dnsErr *net.DNSError
	if stdErrors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	if stdErrors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}

	var certErr *tls.CertificateVerificationError
	if stdErrors.As(err, &certErr) {
		return true
	}

	var recordErr tls.RecordHeaderError
	if stdErrors.As(err, &recordErr) {
		return true
	}

	var authErr x509.UnknownAuthorityError
	var hostErr x509.HostnameError
	return stdErrors.As(err, &authErr) || stdErrors.As(err, &hostErr)
}

// readResponse reads the response body with size limiting. On a read failure
// the status and headers are still returned alongside the error.
func readResponse(resp *http.Response, maxBodySize int64) (*ports.HTTPResponse, error) {
	out := &ports.HTTPResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Proto:      resp.Proto,
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return out, &errors.NetworkError{Operation: errors.OpReadBody, Target: resp.Request.URL.Host, Err: err}
	}

	if int64(len(body)) > maxBodySize {
		body = body[:maxBodySize]
		out.BodyTruncated = true
	}
	out.Body = body
	return out, nil
}
