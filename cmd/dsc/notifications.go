package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/forumkit/discourse-go/discourse"

	"github.com/araddon/dateparse"
	"github.com/urfave/cli/v2"
)

var cmdNotifications = &cli.Command{
	Name:  "notifications",
	Usage: "list the authenticated user's notifications",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "unread",
			Usage: "only show unread notifications",
		},
		&cli.StringFlag{
			Name:  "since",
			Usage: "only show notifications created after this date (most common formats accepted)",
		},
	},
	Action: runNotifications,
}

func notificationKind(t int) string {
	switch t {
	case discourse.NotificationMentioned:
		return "mentioned"
	case discourse.NotificationReplied:
		return "replied"
	case discourse.NotificationQuoted:
		return "quoted"
	case discourse.NotificationEdited:
		return "edited"
	case discourse.NotificationLiked:
		return "liked"
	case discourse.NotificationPrivateMessage:
		return "private_message"
	case discourse.NotificationPosted:
		return "posted"
	case discourse.NotificationGrantedBadge:
		return "granted_badge"
	case discourse.NotificationChatMention:
		return "chat_mention"
	case discourse.NotificationChatMessage:
		return "chat_message"
	default:
		return fmt.Sprintf("type-%d", t)
	}
}

// Filters notifications by read state and creation time. A zero `since` disables the time filter.
func filterNotifications(notifs []discourse.Notification, unreadOnly bool, since time.Time) []discourse.Notification {
	var out []discourse.Notification
	for _, n := range notifs {
		if unreadOnly && n.Read {
			continue
		}
		if !since.IsZero() {
			createdAt, err := dateparse.ParseAny(n.CreatedAt)
			if err != nil {
				slog.Warn("unparseable notification timestamp", "id", n.ID, "created_at", n.CreatedAt, "err", err)
			} else if !createdAt.After(since) {
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

func runNotifications(cctx *cli.Context) error {
	ctx := cctx.Context
	var since time.Time
	if s := cctx.String("since"); s != "" {
		t, err := dateparse.ParseAny(s)
		if err != nil {
			return fmt.Errorf("invalid --since date %q: %w", s, err)
		}
		since = t
	}
	c, err := loadClient(cctx)
	if err != nil {
		return err
	}

	resp, err := c.GetNotifications(ctx)
	if err != nil {
		return err
	}
	for _, n := range filterNotifications(resp.Notifications, cctx.Bool("unread"), since) {
		title := ""
		if n.FancyTitle != nil {
			title = *n.FancyTitle
		} else if n.Data.TopicTitle != nil {
			title = *n.Data.TopicTitle
		}
		fmt.Printf("%d\t%s\t%s\t%s\n", n.ID, n.CreatedAt, notificationKind(n.NotificationType), title)
	}
	fmt.Printf("unread: %d\n", resp.Unread())
	return nil
}
