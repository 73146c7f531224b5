package backend

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nguyentantai21042004/meeting-secretary/internal/logger"
)

type implClient struct {
	base       *url.URL
	origin     *url.URL
	httpClient *http.Client
	logger     logger.Logger
}

// New creates a Client for baseURL. A zero timeout means requests are never cut short.
func New(baseURL string, timeout time.Duration, log logger.Logger) (Client, error) {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout}, log)
}

// NewWithHTTPClient creates a Client using hc for all requests.
func NewWithHTTPClient(baseURL string, hc *http.Client, log logger.Logger) (Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url must be absolute: %q", baseURL)
	}

	if u.Path == "" {
		u.Path = "/"
	}

	origin := &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}

	return &implClient{
		base:       u,
		origin:     origin,
		httpClient: hc,
		logger:     log,
	}, nil
}
