package client

import (
	"net/http"
)

// Interface for auth implementations which can be used with [APIClient].
//
// Implementations only attach credential headers to the outgoing request. They must not perform network I/O, read the response, or retry.
type AuthMethod interface {
	AuthorizeRequest(req *http.Request)
}

const (
	HeaderAPIKey          = "Api-Key"
	HeaderAPIUsername     = "Api-Username"
	HeaderUserAPIKey      = "User-Api-Key"
	HeaderUserAPIClientID = "User-Api-Client-Id"
)

var authHeaders = []string{HeaderAPIKey, HeaderAPIUsername, HeaderUserAPIKey, HeaderUserAPIClientID}

// Reports whether `name` is one of the Discourse credential headers. These are only sent by an [AuthMethod], never as client-level or request-level headers.
func IsAuthHeader(name string) bool {
	name = http.CanonicalHeaderKey(name)
	for _, h := range authHeaders {
		if name == h {
			return true
		}
	}
	return false
}

// [AuthMethod] for Discourse admin API keys. The key is issued by a forum administrator, and every request acts as the given username.
type AdminAuth struct {
	APIKey      string
	APIUsername string
}

func (a *AdminAuth) AuthorizeRequest(req *http.Request) {
	req.Header.Set(HeaderAPIKey, a.APIKey)
	req.Header.Set(HeaderAPIUsername, a.APIUsername)
}

// [AuthMethod] for Discourse "User API Keys", which are per-user tokens obtained through the user API key authorization flow.
//
// ClientID is optional; the header is only sent when it is non-empty.
type UserAuth struct {
	UserAPIKey string
	ClientID   string
}

func (a *UserAuth) AuthorizeRequest(req *http.Request) {
	req.Header.Set(HeaderUserAPIKey, a.UserAPIKey)
	if a.ClientID != "" {
		req.Header.Set(HeaderUserAPIClientID, a.ClientID)
	}
}

// Creates an [APIClient] using [AdminAuth].
func NewAdminClient(host, apiKey, apiUsername string) *APIClient {
	c := NewAPIClient(host)
	c.Auth = &AdminAuth{APIKey: apiKey, APIUsername: apiUsername}
	return c
}

// Creates an [APIClient] using [UserAuth]. `clientID` may be empty.
func NewUserClient(host, userAPIKey, clientID string) *APIClient {
	c := NewAPIClient(host)
	c.Auth = &UserAuth{UserAPIKey: userAPIKey, ClientID: clientID}
	return c
}
