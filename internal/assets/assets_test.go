// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/film-aggregator/internal/httputil"
	"github.com/pdiddy/film-aggregator/pkg/types"
)

func imageServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Fetcher, func()) {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(handler))
	client := httputil.NewClient(types.HTTPConfig{Timeout: 5 * time.Second}, nil)
	return &Fetcher{Getter: client, BaseURL: ts.URL + "/t/p/original"}, ts.Close
}

func TestFetcherURL(t *testing.T) {
	f := &Fetcher{BaseURL: "https://image.tmdb.org/t/p/original/"}
	assert.Equal(t, "https://image.tmdb.org/t/p/original/abc.jpg", f.URL("/abc.jpg"))
	assert.Equal(t, "https://image.tmdb.org/t/p/original/abc.jpg", f.URL("abc.jpg"))
}

func TestFetchBoth(t *testing.T) {
	f, done := imageServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("img:" + strings.TrimPrefix(r.URL.Path, "/t/p/original/")))
	})
	defer done()

	pair, err := f.Fetch(context.Background(), "/poster.jpg", "/banner.jpg")
	require.NoError(t, err)
	assert.Equal(t, "img:poster.jpg", string(pair.Poster))
	assert.Equal(t, "img:banner.jpg", string(pair.Banner))
}

func TestFetchRunsConcurrently(t *testing.T) {
	// Each handler blocks until both requests have arrived; a sequential
	// fetcher would never release the first one.
	var arrived sync.WaitGroup
	arrived.Add(2)
	f, done := imageServer(t, func(w http.ResponseWriter, _ *http.Request) {
		arrived.Done()
		arrived.Wait()
		w.Write([]byte("ok"))
	})
	defer done()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := f.Fetch(ctx, "/a.jpg", "/b.jpg")
	require.NoError(t, err)
}

func TestFetchFailures(t *testing.T) {
	tests := []struct {
		name     string
		failPath string
		wantIn   string
	}{
		{"poster fails", "/t/p/original/a.jpg", "poster"},
		{"backdrop fails", "/t/p/original/b.jpg", "backdrop"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, done := imageServer(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == tt.failPath {
					w.WriteHeader(http.StatusNotFound)
					return
				}
				w.Write([]byte("ok"))
			})
			defer done()

			pair, err := f.Fetch(context.Background(), "/a.jpg", "/b.jpg")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantIn)
			assert.Nil(t, pair.Poster)
			assert.Nil(t, pair.Banner)

			var se *httputil.StatusError
			assert.True(t, errors.As(err, &se))
		})
	}
}

func TestFetchEmptyPath(t *testing.T) {
	f := &Fetcher{BaseURL: "http://unused"}

	_, err := f.Fetch(context.Background(), "", "/b.jpg")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = f.Fetch(context.Background(), "/a.jpg", "")
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestFetchFailureCancelsSibling(t *testing.T) {
	release := make(chan struct{})
	f, done := imageServer(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "a.jpg") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer done()
	defer close(release)

	start := time.Now()
	_, err := f.Fetch(context.Background(), "/a.jpg", "/b.jpg")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}
