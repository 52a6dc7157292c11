package discourse

import (
	"context"
	"fmt"
)

// Summary of a topic, as returned in topic lists.
type Topic struct {
	ID           uint64   `json:"id"`
	Title        string   `json:"title"`
	Slug         string   `json:"slug"`
	PostsCount   int      `json:"posts_count"`
	ReplyCount   int      `json:"reply_count"`
	Views        int      `json:"views"`
	LikeCount    int      `json:"like_count"`
	CreatedAt    string   `json:"created_at"`
	LastPostedAt *string  `json:"last_posted_at,omitempty"`
	Pinned       bool     `json:"pinned"`
	Visible      bool     `json:"visible"`
	Closed       bool     `json:"closed"`
	Archived     bool     `json:"archived"`
	HasSummary   bool     `json:"has_summary"`
	CategoryID   *uint64  `json:"category_id,omitempty"`
	Posters      []Poster `json:"posters"`
}

// Participant reference in a topic list entry. UserID points in to the accompanying users list.
type Poster struct {
	UserID         int64   `json:"user_id"`
	Description    *string `json:"description,omitempty"`
	Extras         *string `json:"extras,omitempty"`
	PrimaryGroupID *uint64 `json:"primary_group_id,omitempty"`
	FlairGroupID   *uint64 `json:"flair_group_id,omitempty"`
}

type TopicList struct {
	Topics []Topic `json:"topics"`
	// Relative URL of the next page, when there is one. Not followed by this package.
	MoreTopicsURL *string `json:"more_topics_url,omitempty"`
}

// Response of the latest topic list endpoints, both site-wide and per-category.
type LatestResponse struct {
	TopicList TopicList `json:"topic_list"`
	Users     []User    `json:"users"`
}

// Full topic, including the loaded chunk of its posts.
type TopicResponse struct {
	ID         uint64     `json:"id"`
	Title      *string    `json:"title,omitempty"`
	PostsCount *int       `json:"posts_count,omitempty"`
	CategoryID *uint64    `json:"category_id,omitempty"`
	PostStream PostStream `json:"post_stream"`
}

type PostStream struct {
	Posts []Post `json:"posts"`
	// IDs of every post in the topic, including those not loaded in Posts.
	Stream []uint64 `json:"stream"`
}

// Request body for creating a topic. The topic body is the first post's Raw.
type CreateTopicInput struct {
	Title      string  `json:"title"`
	Raw        string  `json:"raw"`
	CategoryID *uint64 `json:"category_id,omitempty"`
}

// Fetches the site-wide latest topics list.
func (c *Client) GetLatest(ctx context.Context) (*LatestResponse, error) {
	var out LatestResponse
	if err := c.api.Get(ctx, "topics.latest", "/latest.json", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Fetches the latest topics of a single category.
func (c *Client) GetCategoryTopics(ctx context.Context, categoryID uint64) (*LatestResponse, error) {
	var out LatestResponse
	if err := c.api.Get(ctx, "categories.topics", fmt.Sprintf("/c/%d/l/latest.json", categoryID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Fetches a topic with its post stream. Posts include their raw markdown.
func (c *Client) GetTopic(ctx context.Context, topicID uint64) (*TopicResponse, error) {
	params := map[string]any{
		"include_raw": 1,
	}
	var out TopicResponse
	if err := c.api.Get(ctx, "topics.get", fmt.Sprintf("/t/%d.json", topicID), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Creates a new topic. The returned record is the topic's first post; its TopicID identifies the new topic.
func (c *Client) CreateTopic(ctx context.Context, input *CreateTopicInput) (*CreatedPost, error) {
	var out CreatedPost
	if err := c.api.Post(ctx, "topics.create", "/posts.json", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
