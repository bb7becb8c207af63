// Package fetch retrieves catalog documents over HTTP and turns book detail
// pages into records.
package fetch

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
)

const defaultTimeout = 15 * time.Second

// Response is one fetched document.
type Response struct {
	URL        string
	StatusCode int
	Body       []byte
	Duration   time.Duration
}

// Getter issues a single HTTP GET. Implementations must honor ctx.
type Getter interface {
	Get(ctx context.Context, url string, headers http.Header) (Response, error)
}

// Options control collector behavior.
type Options struct {
	UserAgent     string
	Timeout       time.Duration
	RespectRobots bool
	// Delay paces requests per domain; zero disables pacing.
	Delay time.Duration
}

// Client is a colly-backed Getter. Every Get clones the base collector so
// hooks never leak between requests; the transport and limit rules are
// shared across clones.
type Client struct {
	opts Options
	base *colly.Collector
}

// NewClient builds a Client with a pooled transport. Revisits are allowed
// because the same book URL can appear under several categories.
func NewClient(opts Options) *Client {
	c := colly.NewCollector(colly.Async(false), colly.AllowURLRevisit())
	c.WithTransport(newHTTPTransport())
	if opts.Delay > 0 {
		_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Delay: opts.Delay})
	}
	return &Client{opts: opts, base: c}
}

// Get executes a single HTTP GET. Non-2xx responses surface as errors.
func (c *Client) Get(ctx context.Context, rawURL string, headers http.Header) (Response, error) {
	var (
		resp     Response
		fetchErr error
	)
	start := time.Now()

	collector := c.base.Clone()
	if c.opts.UserAgent != "" {
		collector.UserAgent = c.opts.UserAgent
	}
	collector.IgnoreRobotsTxt = !c.opts.RespectRobots
	timeout := c.opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	collector.SetRequestTimeout(timeout)

	collector.OnRequest(func(r *colly.Request) {
		for key, values := range headers {
			for _, v := range values {
				r.Headers.Add(key, v)
			}
		}
	})
	collector.OnResponse(func(r *colly.Response) {
		resp = Response{
			URL:        r.Request.URL.String(),
			StatusCode: r.StatusCode,
			Body:       append([]byte(nil), r.Body...),
			Duration:   time.Since(start),
		}
	})
	collector.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(rawURL)
	}()

	select {
	case <-ctx.Done():
		return Response{}, fmt.Errorf("fetch canceled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return Response{}, fmt.Errorf("visit %s: %w", rawURL, err)
		}
		if fetchErr != nil {
			return Response{}, fmt.Errorf("fetch %s: %w", rawURL, fetchErr)
		}
		return resp, nil
	}
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
	}
}
