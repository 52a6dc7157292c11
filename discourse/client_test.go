package discourse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/forumkit/discourse-go/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// single request as seen by the mock forum
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   map[string]any
}

// mock forum: replies with a canned status and body, and records every request
type mockForum struct {
	lk       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
}

func newMockForum(t *testing.T, status int, body string) (*mockForum, *httptest.Server) {
	mf := &mockForum{status: status, body: body}
	srv := httptest.NewServer(http.HandlerFunc(mf.serve))
	t.Cleanup(srv.Close)
	return mf, srv
}

func (mf *mockForum) serve(w http.ResponseWriter, r *http.Request) {
	rr := recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Header: r.Header.Clone(),
	}
	b, _ := io.ReadAll(r.Body)
	if len(b) > 0 {
		if err := json.Unmarshal(b, &rr.Body); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
	}
	mf.lk.Lock()
	mf.requests = append(mf.requests, rr)
	mf.lk.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(mf.status)
	fmt.Fprint(w, mf.body)
}

func (mf *mockForum) last(t *testing.T) recordedRequest {
	mf.lk.Lock()
	defer mf.lk.Unlock()
	require.NotEmpty(t, mf.requests)
	return mf.requests[len(mf.requests)-1]
}

func (mf *mockForum) count() int {
	mf.lk.Lock()
	defer mf.lk.Unlock()
	return len(mf.requests)
}

func TestGetCategoriesScenario(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	mf, srv := newMockForum(t, http.StatusOK, `{"category_list":{"categories":[{"id":1,"name":"General","color":"0088CC","text_color":"FFFFFF","slug":"general","topic_count":5}]}}`)

	cats, err := New(srv.URL).GetCategories(ctx)
	require.NoError(err)
	require.Len(cats, 1)
	assert.Equal("General", cats[0].Name)
	assert.Equal(5, cats[0].TopicCount)
	assert.Equal(uint64(1), cats[0].ID)
	assert.Equal("0088CC", cats[0].Color)
	assert.Nil(cats[0].ParentCategoryID)
	assert.Nil(cats[0].Description)

	req := mf.last(t)
	assert.Equal(http.MethodGet, req.Method)
	assert.Equal("/categories.json", req.Path)
}

func TestCreatePostScenario(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	mf, srv := newMockForum(t, http.StatusOK, `{"id":99,"name":null,"username":"alice","avatar_template":"/user_avatar/forum/alice/{size}/1.png","created_at":"2024-01-01T00:00:00.000Z","cooked":"<p>hello</p>","post_number":2,"post_type":1,"updated_at":"2024-01-01T00:00:00.000Z","reply_count":0,"reply_to_post_number":null,"quote_count":0,"topic_id":42,"topic_slug":"welcome"}`)

	c := NewWithAPIKey(srv.URL, "key", "alice")
	post, err := c.CreatePost(ctx, &CreatePostInput{Raw: "hello", TopicID: 42})
	require.NoError(err)
	assert.Equal(uint64(99), post.ID)
	assert.Equal(uint64(42), post.TopicID)
	assert.Equal(2, post.PostNumber)
	assert.Nil(post.Name)
	assert.Nil(post.ReplyToPostNumber)

	req := mf.last(t)
	assert.Equal(http.MethodPost, req.Method)
	assert.Equal("/posts.json", req.Path)
	assert.Equal(map[string]any{"raw": "hello", "topic_id": float64(42)}, req.Body)
	assert.Equal("application/json", req.Header.Get("Content-Type"))
}

func TestEndpointRequests(t *testing.T) {
	ctx := context.Background()
	cat := uint64(7)
	replyTo := 3

	testCases := []struct {
		name   string
		call   func(c *Client) error
		method string
		path   string
		query  string
		body   map[string]any
	}{
		{
			name:   "latest",
			call:   func(c *Client) error { _, err := c.GetLatest(ctx); return err },
			method: http.MethodGet,
			path:   "/latest.json",
		},
		{
			name:   "categories",
			call:   func(c *Client) error { _, err := c.GetCategories(ctx); return err },
			method: http.MethodGet,
			path:   "/categories.json",
		},
		{
			name:   "topic",
			call:   func(c *Client) error { _, err := c.GetTopic(ctx, 15); return err },
			method: http.MethodGet,
			path:   "/t/15.json",
			query:  "include_raw=1",
		},
		{
			name:   "post",
			call:   func(c *Client) error { _, err := c.GetPost(ctx, 21); return err },
			method: http.MethodGet,
			path:   "/posts/21.json",
		},
		{
			name:   "category topics",
			call:   func(c *Client) error { _, err := c.GetCategoryTopics(ctx, 7); return err },
			method: http.MethodGet,
			path:   "/c/7/l/latest.json",
		},
		{
			name: "create topic",
			call: func(c *Client) error {
				_, err := c.CreateTopic(ctx, &CreateTopicInput{Title: "A new topic title", Raw: "body text", CategoryID: &cat})
				return err
			},
			method: http.MethodPost,
			path:   "/posts.json",
			body:   map[string]any{"title": "A new topic title", "raw": "body text", "category_id": float64(7)},
		},
		{
			name: "create topic without category",
			call: func(c *Client) error {
				_, err := c.CreateTopic(ctx, &CreateTopicInput{Title: "A new topic title", Raw: "body text"})
				return err
			},
			method: http.MethodPost,
			path:   "/posts.json",
			body:   map[string]any{"title": "A new topic title", "raw": "body text"},
		},
		{
			name: "reply",
			call: func(c *Client) error {
				_, err := c.CreatePost(ctx, &CreatePostInput{Raw: "reply", TopicID: 15, ReplyToPostNumber: &replyTo})
				return err
			},
			method: http.MethodPost,
			path:   "/posts.json",
			body:   map[string]any{"raw": "reply", "topic_id": float64(15), "reply_to_post_number": float64(3)},
		},
		{
			name:   "update post",
			call:   func(c *Client) error { return c.UpdatePost(ctx, 21, "edited") },
			method: http.MethodPut,
			path:   "/posts/21.json",
			body:   map[string]any{"raw": "edited"},
		},
		{
			name:   "like",
			call:   func(c *Client) error { return c.LikePost(ctx, 21) },
			method: http.MethodPost,
			path:   "/post_actions.json",
			body:   map[string]any{"id": float64(21), "post_action_type_id": float64(2)},
		},
		{
			name:   "unlike",
			call:   func(c *Client) error { return c.UnlikePost(ctx, 21) },
			method: http.MethodDelete,
			path:   "/post_actions/21.json",
			query:  "post_action_type_id=2",
		},
		{
			name:   "delete post",
			call:   func(c *Client) error { return c.DeletePost(ctx, 21) },
			method: http.MethodDelete,
			path:   "/posts/21.json",
		},
		{
			name:   "user channels",
			call:   func(c *Client) error { _, err := c.GetUserChannels(ctx); return err },
			method: http.MethodGet,
			path:   "/chat/api/me/channels",
		},
		{
			name:   "channel messages",
			call:   func(c *Client) error { _, err := c.GetChannelMessages(ctx, 4, nil); return err },
			method: http.MethodGet,
			path:   "/chat/api/channels/4/messages",
		},
		{
			name: "channel messages with paging",
			call: func(c *Client) error {
				_, err := c.GetChannelMessages(ctx, 4, &ChannelMessagesParams{PageSize: 50, TargetMessageID: 900, Direction: DirectionPast})
				return err
			},
			method: http.MethodGet,
			path:   "/chat/api/channels/4/messages",
			query:  "direction=past&page_size=50&target_message_id=900",
		},
		{
			name:   "send chat message",
			call:   func(c *Client) error { _, err := c.SendChatMessage(ctx, 4, "hi there"); return err },
			method: http.MethodPost,
			path:   "/chat/4",
			body:   map[string]any{"message": "hi there"},
		},
		{
			name:   "notifications",
			call:   func(c *Client) error { _, err := c.GetNotifications(ctx); return err },
			method: http.MethodGet,
			path:   "/notifications.json",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// "{}" decodes in to every result type
			mf, srv := newMockForum(t, http.StatusOK, `{}`)
			c := NewWithAPIKey(srv.URL, "key", "system")

			require.NoError(t, tc.call(c))
			assert.Equal(t, 1, mf.count())

			req := mf.last(t)
			assert.Equal(t, tc.method, req.Method)
			assert.Equal(t, tc.path, req.Path)
			assert.Equal(t, tc.query, req.Query)
			assert.Equal(t, tc.body, req.Body)
		})
	}
}

func TestAuthModes(t *testing.T) {
	ctx := context.Background()
	authHeaders := []string{client.HeaderAPIKey, client.HeaderAPIUsername, client.HeaderUserAPIKey, client.HeaderUserAPIClientID}

	testCases := []struct {
		name   string
		build  func(url string) *Client
		expect map[string]string
	}{
		{
			name:   "none",
			build:  func(url string) *Client { return New(url) },
			expect: map[string]string{},
		},
		{
			name:  "admin key",
			build: func(url string) *Client { return NewWithAPIKey(url, "adminkey", "system") },
			expect: map[string]string{
				"Api-Key":      "adminkey",
				"Api-Username": "system",
			},
		},
		{
			name:  "user key",
			build: func(url string) *Client { return NewWithUserAPIKey(url, "userkey") },
			expect: map[string]string{
				"User-Api-Key": "userkey",
			},
		},
		{
			name:  "user key and client id",
			build: func(url string) *Client { return NewWithUserAPIKeyAndClientID(url, "userkey", "cid") },
			expect: map[string]string{
				"User-Api-Key":       "userkey",
				"User-Api-Client-Id": "cid",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mf, srv := newMockForum(t, http.StatusOK, `{"notifications":[]}`)
			c := tc.build(srv.URL)

			_, err := c.GetNotifications(ctx)
			require.NoError(t, err)
			require.NoError(t, c.LikePost(ctx, 1))

			mf.lk.Lock()
			defer mf.lk.Unlock()
			for _, req := range mf.requests {
				seen := map[string]string{}
				for _, name := range authHeaders {
					if v := req.Header.Get(name); v != "" {
						seen[name] = v
					}
				}
				assert.Equal(t, tc.expect, seen)
			}
		})
	}
}

func TestErrorPassthrough(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	_, srv := newMockForum(t, http.StatusForbidden, `{"errors": ["a", "b"]}`)
	c := NewWithUserAPIKey(srv.URL, "userkey")

	post, err := c.GetPost(ctx, 1)
	assert.Nil(post)
	var apierr *client.APIError
	if assert.ErrorAs(err, &apierr) {
		assert.Equal("a, b", apierr.Message)
		assert.Equal(http.StatusForbidden, apierr.StatusCode)
	}

	// write operations classify the same way
	err = c.DeletePost(ctx, 1)
	if assert.ErrorAs(err, &apierr) {
		assert.Equal("a, b", apierr.Message)
	}

	_, srv2 := newMockForum(t, http.StatusServiceUnavailable, `<html>maintenance</html>`)
	_, err = New(srv2.URL).GetLatest(ctx)
	if assert.ErrorAs(err, &apierr) {
		assert.Equal(http.StatusServiceUnavailable, apierr.StatusCode)
		assert.False(apierr.Structured())
		assert.Contains(err.Error(), "503")
	}

	_, srv3 := newMockForum(t, http.StatusOK, `{"category_list": {"categories": "nope"}}`)
	cats, err := New(srv3.URL).GetCategories(ctx)
	assert.Nil(cats)
	assert.ErrorIs(err, client.ErrMalformedResponse)
}

func TestConcurrentCalls(t *testing.T) {
	ctx := context.Background()

	mf, srv := newMockForum(t, http.StatusOK, `{"topic_list":{"topics":[{"id":1,"title":"Welcome","slug":"welcome","posts_count":1,"reply_count":0,"views":3,"like_count":0,"created_at":"2024-01-01T00:00:00.000Z","pinned":true,"visible":true,"closed":false,"archived":false,"has_summary":false,"category_id":1,"posters":[]}]},"users":[]}`)
	c := NewWithUserAPIKey(srv.URL, "userkey")

	var eg errgroup.Group
	for i := 0; i < 16; i++ {
		eg.Go(func() error {
			resp, err := c.GetLatest(ctx)
			if err != nil {
				return err
			}
			if len(resp.TopicList.Topics) != 1 || resp.TopicList.Topics[0].Title != "Welcome" {
				return fmt.Errorf("unexpected topics: %+v", resp.TopicList.Topics)
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())
	assert.Equal(t, 16, mf.count())
}

func TestWithHelpers(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	mf, srv := newMockForum(t, http.StatusOK, `{}`)
	orig := NewWithAPIKey(srv.URL, "key", "system")
	c := orig.WithHTTPClient(srv.Client()).WithHeader("User-Agent", "my-bot/1.0")

	_, err := c.GetLatest(ctx)
	assert.NoError(err)
	req := mf.last(t)
	assert.Equal("my-bot/1.0", req.Header.Get("User-Agent"))
	assert.Equal("key", req.Header.Get("Api-Key"))

	_, err = orig.GetLatest(ctx)
	assert.NoError(err)
	assert.Equal(client.UserAgent(), mf.last(t).Header.Get("User-Agent"))
	assert.Equal(srv.URL, orig.BaseURL())
}
