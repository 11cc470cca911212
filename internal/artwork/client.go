package artwork

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"
)

// Client defaults.
const (
	DefaultBaseURL   = "https://api.artic.edu/api/v1"
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "artgrid"

	// SupportedAPIVersions is the semver constraint the response decoder was written against.
	SupportedAPIVersions = ">= 1.0.0, < 2.0.0"

	artworksPath = "/artworks"

	// maxErrorBodyBytes bounds how much of a failed response body is kept in the error.
	maxErrorBodyBytes = 512
)

// errUnexpectedStatus is wrapped into a TransportError for non-2xx responses.
var errUnexpectedStatus = errors.New("unexpected response status")

// listResponse is the artworks listing envelope.
type listResponse struct {
	Pagination struct {
		Total       int `json:"total"`
		Limit       int `json:"limit"`
		CurrentPage int `json:"current_page"`
	} `json:"pagination"`
	Data []Artwork `json:"data"`
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
}

// Client fetches artwork pages over HTTP.
// It is safe for concurrent use.
type Client struct {
	// BaseURL is the API root, e.g. "https://api.artic.edu/api/v1".
	BaseURL string

	// HTTPClient performs requests. Tests swap in httptest clients.
	HTTPClient *http.Client

	// UserAgent is sent with every request.
	UserAgent string

	logger      zerolog.Logger
	timeout     time.Duration
	constraint  *semver.Constraints
	versionOnce sync.Once
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.HTTPClient = hc
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua != "" {
			c.UserAgent = ua
		}
	}
}

// WithTimeout sets the per-request timeout. It applies to a copy of the
// HTTP client, so a client passed to WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a Client for baseURL. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q must use http or https", baseURL)
	}

	constraint, err := semver.NewConstraint(SupportedAPIVersions)
	if err != nil {
		return nil, fmt.Errorf("parsing API version constraint: %w", err)
	}

	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		UserAgent:  DefaultUserAgent,
		logger:     zerolog.Nop(),
		constraint: constraint,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.HTTPClient
		hc.Timeout = c.timeout
		c.HTTPClient = &hc
	}
	return c, nil
}

// FetchPage implements Fetcher.
func (c *Client) FetchPage(ctx context.Context, pageIndex, pageSize int) (*Page, error) {
	if err := ValidatePageRequest(pageIndex, pageSize); err != nil {
		return nil, err
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.pageURL(pageIndex, pageSize), nil)
	if err != nil {
		return nil, &TransportError{Page: pageIndex, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &TransportError{Page: pageIndex, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &TransportError{
			Page:       pageIndex,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: %s", errUnexpectedStatus, strings.TrimSpace(string(body))),
		}
	}

	var decoded listResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&decoded); decodeErr != nil {
		return nil, &TransportError{
			Page:       pageIndex,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("decoding response: %w", decodeErr),
		}
	}

	records := decoded.Data
	if len(records) > pageSize {
		c.logger.Warn().
			Int("page", pageIndex).
			Int("page_size", pageSize).
			Int("returned", len(records)).
			Msg("source returned more records than requested, truncating")
		records = records[:pageSize]
	}
	if records == nil {
		records = []Artwork{}
	}

	c.checkVersion(decoded.Info.Version)

	c.logger.Debug().
		Int("page", pageIndex).
		Int("page_size", pageSize).
		Int("records", len(records)).
		Int("total", decoded.Pagination.Total).
		Dur("elapsed", time.Since(start)).
		Msg("page fetched")

	return &Page{
		Index:        pageIndex,
		Size:         pageSize,
		Records:      records,
		TotalRecords: decoded.Pagination.Total,
		APIVersion:   decoded.Info.Version,
	}, nil
}

// pageURL builds the listing URL for one page.
func (c *Client) pageURL(pageIndex, pageSize int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(pageIndex))
	q.Set("limit", strconv.Itoa(pageSize))
	q.Set("fields", strings.Join(Fields, ","))
	return c.BaseURL + artworksPath + "?" + q.Encode()
}

// checkVersion logs a single warning when the reported API version falls outside
// SupportedAPIVersions. Unparseable or empty versions are ignored.
func (c *Client) checkVersion(reported string) {
	if reported == "" {
		return
	}
	if _, err := semver.NewVersion(reported); err != nil {
		return
	}
	if c.supportsVersion(reported) {
		return
	}
	c.versionOnce.Do(func() {
		c.logger.Warn().
			Str("api_version", reported).
			Str("supported", SupportedAPIVersions).
			Msg("artworks API version is outside the supported range")
	})
}

// supportsVersion reports whether reported satisfies SupportedAPIVersions.
func (c *Client) supportsVersion(reported string) bool {
	v, err := semver.NewVersion(reported)
	if err != nil {
		return false
	}
	return c.constraint.Check(v)
}
