package dataset

import (
	"context"
	"net/http"
	"net/url"
	"path"

	"github.com/sony/gobreaker"

	"github.com/i474232898/air-quality-dashboard/internal/airquality"
)

// HTTPSource downloads the dataset from an HTTP(S) URL.
type HTTPSource struct {
	url     string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewHTTPSource creates an HTTPSource. A nil client falls back to
// http.DefaultClient.
func NewHTTPSource(rawURL string, client *http.Client, backoff BackoffConfig) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{
		url: rawURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: backoff,
		},
		circuit: newCircuitBreaker("dataset-http"),
	}
}

func (s *HTTPSource) Name() string {
	if u, err := url.Parse(s.url); err == nil {
		return u.Redacted()
	}
	return s.url
}

func (s *HTTPSource) Load(ctx context.Context) (airquality.Table, error) {
	buildRequest := func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, s.url, nil)
	}

	resp, err := doRequestWithResilience(ctx, s.httpCfg, s.circuit, buildRequest)
	if err != nil {
		return airquality.Table{}, err
	}
	defer resp.Body.Close()

	return ReadTable(resp.Body, fileNameOf(s.url))
}

// fileNameOf returns the last path element of a URL, used for format detection.
func fileNameOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return path.Base(rawURL)
	}
	return path.Base(u.Path)
}
