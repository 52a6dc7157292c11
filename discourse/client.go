package discourse

import (
	"log/slog"
	"net/http"

	"github.com/forumkit/discourse-go/client"
)

// Typed client for one Discourse forum.
//
// The auth mode is chosen by constructor and cannot be changed afterwards. A Client holds no mutable state and is safe for concurrent use.
type Client struct {
	api *client.APIClient
}

// Creates an anonymous client. Only public endpoints will succeed.
func New(baseURL string) *Client {
	return &Client{api: client.NewAPIClient(baseURL)}
}

// Creates a client authenticated with an admin API key, acting as `apiUsername`.
func NewWithAPIKey(baseURL, apiKey, apiUsername string) *Client {
	return &Client{api: client.NewAdminClient(baseURL, apiKey, apiUsername)}
}

// Creates a client authenticated with a User API Key.
func NewWithUserAPIKey(baseURL, userAPIKey string) *Client {
	return &Client{api: client.NewUserClient(baseURL, userAPIKey, "")}
}

// Creates a client authenticated with a User API Key and the client id it was issued to.
func NewWithUserAPIKeyAndClientID(baseURL, userAPIKey, clientID string) *Client {
	return &Client{api: client.NewUserClient(baseURL, userAPIKey, clientID)}
}

// Returns a copy of the client which sends requests through `httpClient`. Auth mode and base URL are unchanged.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	return &Client{api: c.api.WithHTTPClient(httpClient)}
}

// Returns a copy of the client which logs through `logger`.
func (c *Client) WithLogger(logger *slog.Logger) *Client {
	return &Client{api: c.api.WithLogger(logger)}
}

// Returns a copy of the client which adds a fixed header to every request, such as a custom User-Agent. Credential headers are ignored, so the auth mode chosen at construction stays the only one.
func (c *Client) WithHeader(key, value string) *Client {
	return &Client{api: c.api.WithHeader(key, value)}
}

func (c *Client) BaseURL() string {
	return c.api.Host
}
