package discourse

import (
	"context"
	"fmt"
)

// Discourse post action type for likes.
const postActionTypeLike = 2

type Post struct {
	ID         uint64  `json:"id"`
	Username   string  `json:"username"`
	CreatedAt  string  `json:"created_at"`
	Cooked     string  `json:"cooked"`
	Raw        *string `json:"raw,omitempty"`
	PostNumber int     `json:"post_number"`
	PostType   int     `json:"post_type"`
	ReplyCount int     `json:"reply_count"`
	QuoteCount int     `json:"quote_count"`
	Reads      int     `json:"reads"`
	Score      float64 `json:"score"`
	TopicID    uint64  `json:"topic_id"`
}

// Post record returned when creating a topic or a reply.
type CreatedPost struct {
	ID                uint64  `json:"id"`
	Name              *string `json:"name,omitempty"`
	Username          string  `json:"username"`
	AvatarTemplate    string  `json:"avatar_template"`
	CreatedAt         string  `json:"created_at"`
	Cooked            string  `json:"cooked"`
	PostNumber        int     `json:"post_number"`
	PostType          int     `json:"post_type"`
	UpdatedAt         string  `json:"updated_at"`
	ReplyCount        int     `json:"reply_count"`
	ReplyToPostNumber *int    `json:"reply_to_post_number,omitempty"`
	QuoteCount        int     `json:"quote_count"`
	TopicID           uint64  `json:"topic_id"`
	TopicSlug         string  `json:"topic_slug"`
}

// Request body for replying in an existing topic.
type CreatePostInput struct {
	Raw               string `json:"raw"`
	TopicID           uint64 `json:"topic_id"`
	ReplyToPostNumber *int   `json:"reply_to_post_number,omitempty"`
}

type updatePostInput struct {
	Raw string `json:"raw"`
}

type postActionInput struct {
	ID               uint64 `json:"id"`
	PostActionTypeID int    `json:"post_action_type_id"`
}

type postActionParams struct {
	PostActionTypeID int `url:"post_action_type_id"`
}

func (c *Client) GetPost(ctx context.Context, postID uint64) (*Post, error) {
	var out Post
	if err := c.api.Get(ctx, "posts.get", fmt.Sprintf("/posts/%d.json", postID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Creates a reply in an existing topic.
func (c *Client) CreatePost(ctx context.Context, input *CreatePostInput) (*CreatedPost, error) {
	var out CreatedPost
	if err := c.api.Post(ctx, "posts.create", "/posts.json", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Replaces the raw markdown of a post.
func (c *Client) UpdatePost(ctx context.Context, postID uint64, raw string) error {
	return c.api.Put(ctx, "posts.update", fmt.Sprintf("/posts/%d.json", postID), &updatePostInput{Raw: raw}, nil)
}

// Deletes a post. Deleting the first post of a topic deletes the topic.
func (c *Client) DeletePost(ctx context.Context, postID uint64) error {
	return c.api.Delete(ctx, "posts.delete", fmt.Sprintf("/posts/%d.json", postID), nil, nil)
}

func (c *Client) LikePost(ctx context.Context, postID uint64) error {
	body := postActionInput{
		ID:               postID,
		PostActionTypeID: postActionTypeLike,
	}
	return c.api.Post(ctx, "posts.like", "/post_actions.json", &body, nil)
}

func (c *Client) UnlikePost(ctx context.Context, postID uint64) error {
	params := postActionParams{PostActionTypeID: postActionTypeLike}
	return c.api.Delete(ctx, "posts.unlike", fmt.Sprintf("/post_actions/%d.json", postID), &params, nil)
}
