package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var authHeaderNames = []string{HeaderAPIKey, HeaderAPIUsername, HeaderUserAPIKey, HeaderUserAPIClientID}

// records which auth headers were received on the most recent request
type headerRecorder struct {
	lk   sync.Mutex
	seen map[string]string
}

func (hr *headerRecorder) last() map[string]string {
	hr.lk.Lock()
	defer hr.lk.Unlock()
	return hr.seen
}

func authEchoServer(t *testing.T) (*httptest.Server, *headerRecorder) {
	hr := &headerRecorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen := map[string]string{}
		for _, name := range authHeaderNames {
			if v := r.Header.Get(name); v != "" {
				seen[name] = v
			}
		}
		hr.lk.Lock()
		hr.seen = seen
		hr.lk.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(srv.Close)
	return srv, hr
}

func TestAuthHeaders(t *testing.T) {
	srv, hr := authEchoServer(t)
	ctx := context.Background()

	testCases := []struct {
		name   string
		client *APIClient
		expect map[string]string
	}{
		{
			name:   "none",
			client: NewAPIClient(srv.URL),
			expect: map[string]string{},
		},
		{
			name:   "admin key",
			client: NewAdminClient(srv.URL, "key123", "system"),
			expect: map[string]string{
				HeaderAPIKey:      "key123",
				HeaderAPIUsername: "system",
			},
		},
		{
			name:   "user key",
			client: NewUserClient(srv.URL, "userkey", ""),
			expect: map[string]string{
				HeaderUserAPIKey: "userkey",
			},
		},
		{
			name:   "user key with client id",
			client: NewUserClient(srv.URL, "userkey", "client-1"),
			expect: map[string]string{
				HeaderUserAPIKey:      "userkey",
				HeaderUserAPIClientID: "client-1",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, tc.client.Get(ctx, "test.get", "/latest.json", nil, nil))
			assert.Equal(t, tc.expect, hr.last())

			// same headers on a write request
			require.NoError(t, tc.client.Post(ctx, "test.post", "/posts.json", map[string]string{"raw": "x"}, nil))
			assert.Equal(t, tc.expect, hr.last())
		})
	}
}

func TestAuthorizeRequestOnlySetsHeaders(t *testing.T) {
	assert := assert.New(t)

	req, err := http.NewRequest(http.MethodGet, "https://forum.example.com/latest.json", nil)
	require.NoError(t, err)

	a := &AdminAuth{APIKey: "k", APIUsername: "u"}
	a.AuthorizeRequest(req)
	assert.Equal("https://forum.example.com/latest.json", req.URL.String())
	assert.Len(req.Header, 2)

	// applying twice does not duplicate values
	a.AuthorizeRequest(req)
	assert.Equal([]string{"k"}, req.Header.Values(HeaderAPIKey))
}

func TestCredentialHeadersOnlyFromAuth(t *testing.T) {
	srv, hr := authEchoServer(t)
	ctx := context.Background()

	c := NewUserClient(srv.URL, "userkey", "").WithHeader("api-key", "smuggled").WithHeader(HeaderAPIUsername, "system")
	assert.Empty(t, c.Headers.Get(HeaderAPIKey))
	assert.False(t, IsAuthHeader("X-Extra"))
	assert.True(t, IsAuthHeader("user-api-client-id"))

	require.NoError(t, c.Get(ctx, "test.get", "/latest.json", nil, nil))
	assert.Equal(t, map[string]string{HeaderUserAPIKey: "userkey"}, hr.last())

	// request-level headers and hand-built clients cannot add a second credential either
	anon := NewAPIClient(srv.URL)
	anon.Headers.Set(HeaderUserAPIKey, "direct")
	req := NewAPIRequest(http.MethodGet, "test.raw", "/latest.json", nil)
	req.Headers.Set(HeaderAPIKey, "per-request")
	resp, err := anon.Do(ctx, req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, map[string]string{}, hr.last())
}
