package main

import (
	"fmt"

	"github.com/forumkit/discourse-go/discourse"

	"github.com/urfave/cli/v2"
)

var cmdChat = &cli.Command{
	Name:  "chat",
	Usage: "sub-commands for the chat plugin",
	Subcommands: []*cli.Command{
		&cli.Command{
			Name:   "channels",
			Usage:  "list the current user's chat channels",
			Action: runChatChannels,
		},
		&cli.Command{
			Name:      "messages",
			Usage:     "fetch one page of messages from a channel",
			ArgsUsage: `<channel-id>`,
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "page-size",
					Usage: "number of messages to request",
				},
				&cli.Uint64Flag{
					Name:  "target",
					Usage: "message id to page from",
				},
				&cli.StringFlag{
					Name:  "direction",
					Usage: "paging direction relative to --target (past or future)",
				},
			},
			Action: runChatMessages,
		},
		&cli.Command{
			Name:      "send",
			Usage:     "send a message to a channel",
			ArgsUsage: `<channel-id> <message | ->`,
			Action:    runChatSend,
		},
	},
}

func runChatChannels(cctx *cli.Context) error {
	ctx := cctx.Context
	c, err := loadClient(cctx)
	if err != nil {
		return err
	}

	resp, err := c.GetUserChannels(ctx)
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func runChatMessages(cctx *cli.Context) error {
	ctx := cctx.Context
	channelID, err := idArg(cctx, 0, "channel id")
	if err != nil {
		return err
	}
	dir := cctx.String("direction")
	if dir != "" && dir != discourse.DirectionPast && dir != discourse.DirectionFuture {
		return fmt.Errorf("invalid direction %q (expected %s or %s)", dir, discourse.DirectionPast, discourse.DirectionFuture)
	}
	c, err := loadClient(cctx)
	if err != nil {
		return err
	}

	params := discourse.ChannelMessagesParams{
		PageSize:        cctx.Int("page-size"),
		TargetMessageID: cctx.Uint64("target"),
		Direction:       dir,
	}
	resp, err := c.GetChannelMessages(ctx, channelID, &params)
	if err != nil {
		return err
	}
	for _, msg := range resp.Messages {
		fmt.Printf("%d\t%s\t%s: %s\n", msg.ID, msg.CreatedAt, msg.User.Username, msg.Message)
	}
	if resp.Meta.CanLoadMorePast != nil && *resp.Meta.CanLoadMorePast && len(resp.Messages) > 0 {
		fmt.Printf("older messages available: --target %d --direction past\n", resp.Messages[0].ID)
	}
	return nil
}

func runChatSend(cctx *cli.Context) error {
	ctx := cctx.Context
	channelID, err := idArg(cctx, 0, "channel id")
	if err != nil {
		return err
	}
	msg, err := textArg(cctx, 1, "message")
	if err != nil {
		return err
	}
	c, err := loadClient(cctx)
	if err != nil {
		return err
	}

	resp, err := c.SendChatMessage(ctx, channelID, msg)
	if err != nil {
		return err
	}
	fmt.Printf("sent message %d\n", resp.MessageID)
	return nil
}
