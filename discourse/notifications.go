package discourse

import (
	"context"
)

// Numeric notification kinds used by Discourse. Not exhaustive; plugins register their own.
const (
	NotificationMentioned      = 1
	NotificationReplied        = 2
	NotificationQuoted         = 3
	NotificationEdited         = 4
	NotificationLiked          = 5
	NotificationPrivateMessage = 6
	NotificationPosted         = 9
	NotificationGrantedBadge   = 12
	NotificationChatMention    = 29
	NotificationChatMessage    = 30
)

type Notification struct {
	ID                       uint64           `json:"id"`
	UserID                   uint64           `json:"user_id"`
	NotificationType         int              `json:"notification_type"`
	Read                     bool             `json:"read"`
	HighPriority             bool             `json:"high_priority"`
	CreatedAt                string           `json:"created_at"`
	PostNumber               *int             `json:"post_number,omitempty"`
	TopicID                  *uint64          `json:"topic_id,omitempty"`
	Slug                     *string          `json:"slug,omitempty"`
	FancyTitle               *string          `json:"fancy_title,omitempty"`
	Data                     NotificationData `json:"data"`
	ActingUserAvatarTemplate *string          `json:"acting_user_avatar_template,omitempty"`
	ActingUserName           *string          `json:"acting_user_name,omitempty"`
}

type NotificationData struct {
	TopicTitle       *string `json:"topic_title,omitempty"`
	OriginalUsername *string `json:"original_username,omitempty"`
	DisplayUsername  *string `json:"display_username,omitempty"`
	DisplayName      *string `json:"display_name,omitempty"`
}

type NotificationsResponse struct {
	Notifications          []Notification `json:"notifications"`
	TotalRowsNotifications *int           `json:"total_rows_notifications,omitempty"`
	SeenNotificationID     *uint64        `json:"seen_notification_id,omitempty"`
	// Relative URL of the next page, when there is one. Not followed by this package.
	LoadMoreNotifications *string `json:"load_more_notifications,omitempty"`
}

// Fetches the authenticated user's notifications.
func (c *Client) GetNotifications(ctx context.Context) (*NotificationsResponse, error) {
	var out NotificationsResponse
	if err := c.api.Get(ctx, "notifications.list", "/notifications.json", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Counts notifications not yet marked read.
func (nr *NotificationsResponse) Unread() int {
	n := 0
	for _, notif := range nr.Notifications {
		if !notif.Read {
			n++
		}
	}
	return n
}
