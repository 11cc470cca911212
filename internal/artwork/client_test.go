package artwork

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func artworksHandler(t *testing.T, total int, version string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/artworks" {
			http.NotFound(w, r)
			return
		}
		var page, limit int
		fmt.Sscanf(r.URL.Query().Get("page"), "%d", &page)
		fmt.Sscanf(r.URL.Query().Get("limit"), "%d", &limit)

		data := []map[string]any{}
		for id := (page-1)*limit + 1; id <= page*limit && id <= total; id++ {
			data = append(data, map[string]any{
				"id":             id,
				"title":          fmt.Sprintf("Artwork %d", id),
				"artist_display": "Unknown",
				"date_start":     1900,
				"date_end":       1901,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"pagination": map[string]any{"total": total, "limit": limit, "current_page": page},
			"data":       data,
			"info":       map[string]any{"version": version},
		})
	}
}

func TestClient_FetchPage(t *testing.T) {
	server := httptest.NewServer(artworksHandler(t, 30, "1.13"))
	defer server.Close()

	client, err := NewClient(server.URL, WithHTTPClient(server.Client()))
	require.NoError(t, err)

	t.Run("full page", func(t *testing.T) {
		page, fetchErr := client.FetchPage(context.Background(), 2, 12)
		require.NoError(t, fetchErr)
		assert.Equal(t, 2, page.Index)
		assert.Equal(t, 12, page.Size)
		assert.Equal(t, 30, page.TotalRecords)
		assert.Equal(t, "1.13", page.APIVersion)
		require.Len(t, page.Records, 12)
		assert.Equal(t, 13, page.Records[0].ID)
		assert.Equal(t, "Artwork 13", page.Records[0].Title)
		assert.Equal(t, "1900-1901", page.Records[0].DateRange())
		assert.False(t, page.IsShort())
	})

	t.Run("short last page", func(t *testing.T) {
		page, fetchErr := client.FetchPage(context.Background(), 3, 12)
		require.NoError(t, fetchErr)
		assert.Len(t, page.Records, 6)
		assert.True(t, page.IsShort())
	})

	t.Run("past the end", func(t *testing.T) {
		page, fetchErr := client.FetchPage(context.Background(), 9, 12)
		require.NoError(t, fetchErr)
		assert.NotNil(t, page.Records)
		assert.Empty(t, page.Records)
	})
}

func TestClient_RequestShape(t *testing.T) {
	var gotQuery, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{"pagination":{"total":0},"data":[]}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL+"/", WithHTTPClient(server.Client()), WithUserAgent("artgrid-test"))
	require.NoError(t, err)

	_, err = client.FetchPage(context.Background(), 4, 25)
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "page=4")
	assert.Contains(t, gotQuery, "limit=25")
	assert.Contains(t, gotQuery, "fields="+strings.ReplaceAll(strings.Join(Fields, ","), ",", "%2C"))
	assert.Equal(t, "artgrid-test", gotUA)
}

func TestClient_TruncatesOversizedPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"pagination":{"total":3},"data":[{"id":1},{"id":2},{"id":3}]}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, WithHTTPClient(server.Client()))
	require.NoError(t, err)

	page, err := client.FetchPage(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, IDs(page.Records))
}

func TestClient_TransportErrors(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "upstream unavailable", http.StatusServiceUnavailable)
			},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			wantStatus: http.StatusTooManyRequests,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"data": [`))
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client, err := NewClient(server.URL, WithHTTPClient(server.Client()))
			require.NoError(t, err)

			page, err := client.FetchPage(context.Background(), 2, 12)
			require.Error(t, err)
			assert.Nil(t, page)

			var te *TransportError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, 2, te.Page)
			assert.Equal(t, tt.wantStatus, te.StatusCode)
			assert.True(t, IsTransportError(err))
		})
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := NewClient(url)
	require.NoError(t, err)

	_, err = client.FetchPage(context.Background(), 1, 12)
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 0, te.StatusCode)
}

func TestClient_InvalidRequestMakesNoCall(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, WithHTTPClient(server.Client()))
	require.NoError(t, err)

	_, err = client.FetchPage(context.Background(), 0, 12)
	require.ErrorIs(t, err, ErrInvalidPageRequest)
	assert.False(t, IsTransportError(err))

	_, err = client.FetchPage(context.Background(), 1, 0)
	require.ErrorIs(t, err, ErrInvalidPageRequest)
	assert.Equal(t, int32(0), calls.Load())
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	_, err := NewClient("ftp://example.com")
	require.Error(t, err)

	c, err := NewClient("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL)
}

func TestClient_SupportsVersion(t *testing.T) {
	c, err := NewClient("")
	require.NoError(t, err)

	tests := []struct {
		version string
		want    bool
	}{
		{version: "1.13", want: true},
		{version: "1.0.0", want: true},
		{version: "2.1", want: false},
		{version: "latest", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			assert.Equal(t, tt.want, c.supportsVersion(tt.version))
		})
	}
}

func TestNewClient_TimeoutLeavesSharedClientUntouched(t *testing.T) {
	tests := []struct {
		name  string
		order func(shared *http.Client) []ClientOption
	}{
		{
			name: "timeout after http client",
			order: func(shared *http.Client) []ClientOption {
				return []ClientOption{WithHTTPClient(shared), WithTimeout(3 * time.Second)}
			},
		},
		{
			name: "timeout before http client",
			order: func(shared *http.Client) []ClientOption {
				return []ClientOption{WithTimeout(3 * time.Second), WithHTTPClient(shared)}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shared := &http.Client{Timeout: 45 * time.Second}

			c, err := NewClient("", tt.order(shared)...)
			require.NoError(t, err)

			assert.Equal(t, 45*time.Second, shared.Timeout)
			assert.Equal(t, 3*time.Second, c.HTTPClient.Timeout)
			assert.NotSame(t, shared, c.HTTPClient)
		})
	}
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	c, err := NewClient("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, c.HTTPClient.Timeout)

	shared := &http.Client{}
	c, err = NewClient("", WithHTTPClient(shared))
	require.NoError(t, err)
	assert.Same(t, shared, c.HTTPClient)
}

func TestTransportError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("walk: %w", &TransportError{Page: 3, Err: cause})

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "fetching page 3")
}

func TestClient_UnsupportedVersionWarnsOnce(t *testing.T) {
	server := httptest.NewServer(artworksHandler(t, 30, "2.1.0"))
	defer server.Close()

	var logs bytes.Buffer
	client, err := NewClient(server.URL, WithLogger(zerolog.New(&logs)))
	require.NoError(t, err)

	for page := 1; page <= 3; page++ {
		_, err = client.FetchPage(context.Background(), page, 12)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, strings.Count(logs.String(), "outside the supported range"))
	assert.Contains(t, logs.String(), `"api_version":"2.1.0"`)
}
