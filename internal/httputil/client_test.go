// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/film-aggregator/pkg/types"
)

func testClient() *Client {
	return NewClient(types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "test/0.1"}, nil)
}

func TestEncodeQueryKeepsOrder(t *testing.T) {
	got := EncodeQuery([]Param{
		{"api_key", "k"},
		{"language", "pt-BR"},
		{"query", "となりのトトロ"},
		{"page", "1"},
	})
	assert.Equal(t, "api_key=k&language=pt-BR&query=%E3%81%A8%E3%81%AA%E3%82%8A%E3%81%AE%E3%83%88%E3%83%88%E3%83%AD&page=1", got)
	assert.Equal(t, "", EncodeQuery(nil))
}

func TestClientGet(t *testing.T) {
	var rawQuery, ua, custom string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		ua = r.Header.Get("User-Agent")
		custom = r.Header.Get("X-Test")
		fmt.Fprint(w, "hello")
	}))
	defer ts.Close()

	body, hdr, err := testClient().Get(context.Background(), ts.URL+"/x",
		[]Param{{"b", "2"}, {"a", "1"}}, map[string]string{"X-Test": "yes"})
	require.NoError(t, err)

	assert.Equal(t, "hello", string(body))
	assert.NotNil(t, hdr)
	assert.Equal(t, "b=2&a=1", rawQuery)
	assert.Equal(t, "test/0.1", ua)
	assert.Equal(t, "yes", custom)
}

func TestClientGetAppendsToExistingQuery(t *testing.T) {
	var rawQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
	}))
	defer ts.Close()

	_, _, err := testClient().Get(context.Background(), ts.URL+"/x?fixed=1", []Param{{"k", "v"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "fixed=1&k=v", rawQuery)
}

func TestClientGetStatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	_, _, err := testClient().Get(context.Background(), ts.URL+"/missing", []Param{{"api_key", "secret"}}, nil)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.NotContains(t, err.Error(), "secret", "query string must not leak into errors")
}

func TestClientGetNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, _, err := testClient().Get(context.Background(), url, nil, nil)
	require.Error(t, err)
	var se *StatusError
	assert.False(t, errors.As(err, &se))
}

func TestClientGetHonorsCancelledContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "late")
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := testClient().Get(ctx, ts.URL, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewClientRateLimit(t *testing.T) {
	c := NewClient(types.HTTPConfig{RequestsPerSecond: 4}, nil)
	assert.InDelta(t, 4.0, float64(c.Limiter.Limit()), 1e-9)

	unlimited := NewClient(types.HTTPConfig{}, nil)
	assert.True(t, unlimited.Limiter.Limit() > 1e300)
}
