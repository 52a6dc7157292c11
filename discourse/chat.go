package discourse

import (
	"context"
	"encoding/json"
	"fmt"
)

// Chat channel. Most attributes are omitted by some Discourse versions or channel kinds (eg, direct messages have no title), so they are optional.
type ChatChannel struct {
	ID                       uint64          `json:"id"`
	Title                    *string         `json:"title,omitempty"`
	Slug                     *string         `json:"slug,omitempty"`
	Description              *string         `json:"description,omitempty"`
	ChatableID               *uint64         `json:"chatable_id,omitempty"`
	ChatableType             *string         `json:"chatable_type,omitempty"`
	MembershipsCount         *int            `json:"memberships_count,omitempty"`
	Status                   *string         `json:"status,omitempty"`
	AllowChannelWideMentions *bool           `json:"allow_channel_wide_mentions,omitempty"`
	Chatable                 json.RawMessage `json:"chatable,omitempty"`
	ChatableURL              *string         `json:"chatable_url,omitempty"`
	CurrentUserMembership    json.RawMessage `json:"current_user_membership,omitempty"`
	IconUploadURL            *string         `json:"icon_upload_url,omitempty"`
	LastMessage              json.RawMessage `json:"last_message,omitempty"`
	Meta                     json.RawMessage `json:"meta,omitempty"`
	ThreadingEnabled         *bool           `json:"threading_enabled,omitempty"`
	UnicodeTitle             *string         `json:"unicode_title,omitempty"`
}

type ChatChannelsResponse struct {
	PublicChannels             []ChatChannel   `json:"public_channels"`
	DirectMessageChannels      []ChatChannel   `json:"direct_message_channels"`
	Channels                   []ChatChannel   `json:"channels"`
	Meta                       json.RawMessage `json:"meta,omitempty"`
	Tracking                   json.RawMessage `json:"tracking,omitempty"`
	GlobalPresenceChannelState json.RawMessage `json:"global_presence_channel_state,omitempty"`
	UnreadThreadOverview       json.RawMessage `json:"unread_thread_overview,omitempty"`
}

type ChatMessage struct {
	ID            uint64  `json:"id"`
	Message       string  `json:"message"`
	Cooked        string  `json:"cooked"`
	CreatedAt     string  `json:"created_at"`
	User          User    `json:"user"`
	ChatChannelID uint64  `json:"chat_channel_id"`
	DeletedAt     *string `json:"deleted_at,omitempty"`
	Excerpt       *string `json:"excerpt,omitempty"`
}

type ChatMessagesResponse struct {
	Messages []ChatMessage    `json:"messages"`
	Meta     ChatMessagesMeta `json:"meta"`
}

// Paging hints. This package never requests further pages by itself.
type ChatMessagesMeta struct {
	CanLoadMorePast   *bool `json:"can_load_more_past,omitempty"`
	CanLoadMoreFuture *bool `json:"can_load_more_future,omitempty"`
}

const (
	DirectionPast   = "past"
	DirectionFuture = "future"
)

// Optional query parameters for [Client.GetChannelMessages]. Zero values are not sent.
type ChannelMessagesParams struct {
	PageSize        int    `url:"page_size,omitempty"`
	TargetMessageID uint64 `url:"target_message_id,omitempty"`
	// DirectionPast or DirectionFuture, relative to TargetMessageID
	Direction string `url:"direction,omitempty"`
}

type CreateMessageResponse struct {
	Success   string `json:"success"`
	MessageID uint64 `json:"message_id"`
}

type sendMessageInput struct {
	Message string `json:"message"`
}

// Fetches the chat channels the authenticated user can see or is a member of.
func (c *Client) GetUserChannels(ctx context.Context) (*ChatChannelsResponse, error) {
	var out ChatChannelsResponse
	if err := c.api.Get(ctx, "chat.channels", "/chat/api/me/channels", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Fetches one page of messages from a chat channel. `params` may be nil.
func (c *Client) GetChannelMessages(ctx context.Context, channelID uint64, params *ChannelMessagesParams) (*ChatMessagesResponse, error) {
	var qp any
	if params != nil {
		qp = params
	}
	var out ChatMessagesResponse
	if err := c.api.Get(ctx, "chat.messages", fmt.Sprintf("/chat/api/channels/%d/messages", channelID), qp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SendChatMessage(ctx context.Context, channelID uint64, message string) (*CreateMessageResponse, error) {
	var out CreateMessageResponse
	if err := c.api.Post(ctx, "chat.send", fmt.Sprintf("/chat/%d", channelID), &sendMessageInput{Message: message}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
