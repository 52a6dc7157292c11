/*
General-purpose client for Discourse forum HTTP API endpoints.

[APIClient] wraps an [http.Client] and provides a JSON-oriented interface for GET, POST, PUT and DELETE endpoints relative to a single forum base URL. The [APIRequest] struct represents a generic API request, and helps with conversion to an [http.Request]. Typed endpoint bindings live in the sibling discourse package.

Every call is one round trip. There is no retry, rate limiting, caching, or automatic pagination; a cancelled context aborts the in-flight request and nothing else.

Responses are classified uniformly:

- 2xx: the body is decoded in to the caller's result. A body which does not parse is an error wrapping [ErrMalformedResponse].
- non-2xx with a Discourse error payload ({"errors": [...], "error_type": "..."}): an [*APIError] whose Message is the errors joined with ", ".
- any other non-2xx: an [*APIError] carrying only the HTTP status code.
- no response at all: an error wrapping [ErrTransport] and the underlying network error.

The [AuthMethod] interface attaches credentials to outgoing requests. Two methods are included, and a nil Auth means anonymous access:

- [AdminAuth] sends the admin "Api-Key" and "Api-Username" headers.
- [UserAuth] sends a per-user "User-Api-Key", and "User-Api-Client-Id" when set.

Auth methods only ever set headers. They do not see responses, so they cannot refresh or retry.

Request counts, latencies and failures are recorded with Prometheus collectors registered on the default registry. Serving them is up to the calling program.
*/
package client
