// Package steam talks to the Steam store, community, and Web API surfaces:
// tag-filtered search, app-page scraping, the appreviews endpoint, and the
// player-data API used by the signal sync.
package steam

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/codeGROOVE-dev/sfcache"
	"github.com/codeGROOVE-dev/sfcache/pkg/store/null"

	"game_mate/config"
	"game_mate/logger"
)

// UserAgent is the browser User-Agent sent with every store request.
const UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:146.0) Gecko/20100101 Firefox/146.0"

// Age-check bypass cookies for app pages behind the birthday wall.
const (
	birthtimeCookie    = "568022401"
	lastAgeCheckCookie = "1-January-1990"
)

// HTTPError is a non-2xx response from any Steam surface.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d fetching %s", e.StatusCode, e.URL)
}

// Client handles all Steam requests.
type Client struct {
	httpClient    *http.Client
	storeBase     string
	communityBase string
	apiBase       string
	apiKey        string

	tagCache *sfcache.TieredCache[string, []string]
	tagTTL   time.Duration
}

// New creates a Steam client from the configuration.
func New(cfg *config.Config) (*Client, error) {
	tc, err := sfcache.NewTiered[string, []string](null.New[string, []string]())
	if err != nil {
		return nil, fmt.Errorf("create tag cache: %w", err)
	}

	return &Client{
		httpClient:    &http.Client{Timeout: time.Duration(cfg.Steam.RequestTimeout) * time.Second},
		storeBase:     cfg.Steam.StoreBaseURL,
		communityBase: cfg.Steam.CommunityBaseURL,
		apiBase:       cfg.Steam.WebAPIBaseURL,
		apiKey:        cfg.Steam.APIKey,
		tagCache:      tc,
		tagTTL:        time.Duration(cfg.Steam.TagCacheTTLMin) * time.Minute,
	}, nil
}

// fetch performs a GET with retry on transient failures. Age-check bypass
// cookies are attached for app pages.
func (c *Client) fetch(ctx context.Context, url string, ageBypass bool) ([]byte, error) {
	return retry.DoWithData(
		func() ([]byte, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
			if err != nil {
				return nil, err
			}
			req.Header.Set("User-Agent", UserAgent)
			if ageBypass {
				req.AddCookie(&http.Cookie{Name: "birthtime", Value: birthtimeCookie})
				req.AddCookie(&http.Cookie{Name: "lastagecheckage", Value: lastAgeCheckCookie})
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return nil, err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return nil, &HTTPError{StatusCode: resp.StatusCode, URL: url}
			}
			return io.ReadAll(resp.Body)
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(300*time.Millisecond),
		retry.MaxJitter(200*time.Millisecond),
		retry.RetryIf(isRetryableError),
		retry.OnRetry(func(n uint, err error) {
			logger.Debug("retrying steam request", "attempt", n+1, "url", url, "error", err)
		}),
	)
}

// isRetryableError reports whether a failure is transient.
func isRetryableError(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}
	// Network errors and timeouts are retryable.
	return true
}
