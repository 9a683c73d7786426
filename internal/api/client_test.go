package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snipstash/snipstash/internal/apperrors"
)

func TestClient_AttachesAuthHeaders(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		_ = json.NewEncoder(w).Encode(Page{Page: 1, PageSize: 1})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok-123", nil)
	_, err := c.ListPage(context.Background(), 1, 1)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClient_TrimsTrailingSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(Page{})
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "tok", nil)
	_, err := c.ListPage(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "/snippets", gotPath)
}

func TestClient_ListPageQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		assert.Equal(t, "25", r.URL.Query().Get("page_size"))
		_ = json.NewEncoder(w).Encode(Page{Page: 3, PageSize: 25, Total: 100})
	}))
	defer srv.Close()

	p, err := New(srv.URL, "tok", nil).ListPage(context.Background(), 3, 25)
	require.NoError(t, err)
	assert.Equal(t, 100, p.Total)
}

func TestClient_CreateSnippetMultipart(t *testing.T) {
	type part struct {
		field    string
		filename string
		ctype    string
		value    string
	}
	var parts []part

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/snippets", r.URL.Path)

		mr, err := r.MultipartReader()
		require.NoError(t, err)
		for {
			p, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			raw, err := io.ReadAll(p)
			require.NoError(t, err)
			parts = append(parts, part{
				field:    p.FormName(),
				filename: p.FileName(),
				ctype:    p.Header.Get("Content-Type"),
				value:    string(raw),
			})
		}

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Snippet{ID: "snp_1", Title: "t"})
	}))
	defer srv.Close()

	in := SnippetInput{
		Title:       "t",
		Description: "d",
		Visibility:  VisibilityPrivate,
		Categories:  []string{"go", "cli"},
		Files: []SnippetFile{
			{Filename: "main.go", Content: "package main"},
			{Filename: "notes", Content: "plain"},
		},
	}
	s, err := New(srv.URL, "tok", nil).CreateSnippet(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "snp_1", s.ID)

	require.Len(t, parts, 7)
	assert.Equal(t, part{field: "title", value: "t"}, parts[0])
	assert.Equal(t, part{field: "description", value: "d"}, parts[1])
	assert.Equal(t, part{field: "visibility", value: "private"}, parts[2])
	assert.Equal(t, part{field: "categories", value: "go"}, parts[3])
	assert.Equal(t, part{field: "categories", value: "cli"}, parts[4])

	// File parts follow in caller order with filename and content type.
	assert.Equal(t, "files", parts[5].field)
	assert.Equal(t, "main.go", parts[5].filename)
	assert.Equal(t, "package main", parts[5].value)
	assert.NotEmpty(t, parts[5].ctype)

	assert.Equal(t, "files", parts[6].field)
	assert.Equal(t, "notes", parts[6].filename)
	assert.Equal(t, "application/octet-stream", parts[6].ctype)
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		headers  map[string]string
		body     string
		wantKind apperrors.Kind
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantKind: apperrors.KindUnauthorized},
		{name: "not found", status: http.StatusNotFound, wantKind: apperrors.KindNotFound},
		{name: "rate limited", status: http.StatusTooManyRequests,
			headers: map[string]string{"Retry-After": "7"}, wantKind: apperrors.KindRateLimited},
		{name: "server error", status: http.StatusInternalServerError,
			body: "db down", wantKind: apperrors.KindServer},
		{name: "bad gateway", status: http.StatusBadGateway, wantKind: apperrors.KindServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for k, v := range tt.headers {
					w.Header().Set(k, v)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, "tok", nil).GetSnippet(context.Background(), "snp_1")
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, apperrors.KindOf(err))
		})
	}
}

func TestClient_RateLimitCarriesRetryHint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "tok", nil).GetSnippet(context.Background(), "snp_1")
	var apiErr *apperrors.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 7*time.Second, apiErr.RetryAfter)
	assert.Contains(t, apiErr.Message, "7")
}

func TestClient_ServerErrorCarriesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	err := New(srv.URL, "tok", nil).DeleteSnippet(context.Background(), "snp_1")
	var apiErr *apperrors.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	assert.Equal(t, "upstream unavailable", apiErr.Body)
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	_, err := New(srv.URL, "tok", nil).GetSnippet(context.Background(), "snp_1")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNetwork, apperrors.KindOf(err))
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", nil, WithTimeout(20*time.Millisecond))
	_, err := c.GetSnippet(context.Background(), "snp_1")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNetwork, apperrors.KindOf(err))
}

func TestClient_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not-a-json"))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "tok", nil).GetSnippet(context.Background(), "snp_1")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindServer, apperrors.KindOf(err))
}

func TestClient_SearchQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/snippets/search", r.URL.Path)
		assert.Equal(t, "tls handshake", r.URL.Query().Get("q"))
		assert.Equal(t, "alpha-asc", r.URL.Query().Get("sort"))
		assert.Equal(t, "true", r.URL.Query().Get("search_code"))
		_ = json.NewEncoder(w).Encode([]Snippet{{ID: "snp_1"}})
	}))
	defer srv.Close()

	matches, err := New(srv.URL, "tok", nil).Search(context.Background(), SearchQuery{
		Text: "tls handshake", Sort: SortAlphaAsc, SearchCode: true,
	})
	require.NoError(t, err)
	require.Len(t, matches, 1)
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, 7*time.Second, parseRetryAfter("7"))
	assert.Equal(t, time.Duration(0), parseRetryAfter(""))
	assert.Equal(t, time.Duration(0), parseRetryAfter("garbage"))

	future := time.Now().Add(30 * time.Second).UTC().Format(http.TimeFormat)
	got := parseRetryAfter(future)
	assert.Greater(t, got, 20*time.Second)
	assert.LessOrEqual(t, got, 30*time.Second)
}
