package main

import (
	"fmt"

	"github.com/forumkit/discourse-go/discourse"

	"github.com/urfave/cli/v2"
)

var cmdPost = &cli.Command{
	Name:      "post",
	Usage:     "fetch a single post",
	ArgsUsage: `<post-id>`,
	Action:    runPost,
}

var cmdCreateTopic = &cli.Command{
	Name:      "create-topic",
	Usage:     "create a new topic",
	ArgsUsage: `<raw-markdown | ->`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "title",
			Required: true,
			Usage:    "topic title",
		},
		&cli.Uint64Flag{
			Name:  "category",
			Usage: "category id (default: uncategorized)",
		},
	},
	Action: runCreateTopic,
}

var cmdReply = &cli.Command{
	Name:      "reply",
	Usage:     "reply in an existing topic",
	ArgsUsage: `<raw-markdown | ->`,
	Flags: []cli.Flag{
		&cli.Uint64Flag{
			Name:     "topic",
			Required: true,
			Usage:    "topic id",
		},
		&cli.IntFlag{
			Name:  "reply-to",
			Usage: "post number being replied to",
		},
	},
	Action: runReply,
}

var cmdEditPost = &cli.Command{
	Name:      "edit-post",
	Usage:     "replace the markdown of a post",
	ArgsUsage: `<post-id> <raw-markdown | ->`,
	Action:    runEditPost,
}

var cmdLike = &cli.Command{
	Name:      "like",
	Usage:     "like a post",
	ArgsUsage: `<post-id>`,
	Action:    runLike,
}

var cmdUnlike = &cli.Command{
	Name:      "unlike",
	Usage:     "remove a like from a post",
	ArgsUsage: `<post-id>`,
	Action:    runUnlike,
}

var cmdDeletePost = &cli.Command{
	Name:      "delete-post",
	Usage:     "delete a post (deleting the first post deletes the topic)",
	ArgsUsage: `<post-id>`,
	Action:    runDeletePost,
}

func runPost(cctx *cli.Context) error {
	ctx := cctx.Context
	postID, err := idArg(cctx, 0, "post id")
	if err != nil {
		return err
	}
	c, err := loadClient(cctx)
	if err != nil {
		return err
	}

	post, err := c.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	return printJSON(post)
}

func runCreateTopic(cctx *cli.Context) error {
	ctx := cctx.Context
	raw, err := textArg(cctx, 0, "topic body")
	if err != nil {
		return err
	}
	c, err := loadClient(cctx)
	if err != nil {
		return err
	}

	input := discourse.CreateTopicInput{
		Title: cctx.String("title"),
		Raw:   raw,
	}
	if cctx.IsSet("category") {
		cat := cctx.Uint64("category")
		input.CategoryID = &cat
	}
	post, err := c.CreateTopic(ctx, &input)
	if err != nil {
		return err
	}
	fmt.Printf("created topic %d (first post %d)\n", post.TopicID, post.ID)
	return nil
}

func runReply(cctx *cli.Context) error {
	ctx := cctx.Context
	raw, err := textArg(cctx, 0, "reply body")
	if err != nil {
		return err
	}
	c, err := loadClient(cctx)
	if err != nil {
		return err
	}

	input := discourse.CreatePostInput{
		Raw:     raw,
		TopicID: cctx.Uint64("topic"),
	}
	if cctx.IsSet("reply-to") {
		n := cctx.Int("reply-to")
		input.ReplyToPostNumber = &n
	}
	post, err := c.CreatePost(ctx, &input)
	if err != nil {
		return err
	}
	fmt.Printf("created post %d (#%d in topic %d)\n", post.ID, post.PostNumber, post.TopicID)
	return nil
}

func runEditPost(cctx *cli.Context) error {
	ctx := cctx.Context
	postID, err := idArg(cctx, 0, "post id")
	if err != nil {
		return err
	}
	raw, err := textArg(cctx, 1, "post body")
	if err != nil {
		return err
	}
	c, err := loadClient(cctx)
	if err != nil {
		return err
	}

	return c.UpdatePost(ctx, postID, raw)
}

func runLike(cctx *cli.Context) error {
	ctx := cctx.Context
	postID, err := idArg(cctx, 0, "post id")
	if err != nil {
		return err
	}
	c, err := loadClient(cctx)
	if err != nil {
		return err
	}

	return c.LikePost(ctx, postID)
}

func runUnlike(cctx *cli.Context) error {
	ctx := cctx.Context
	postID, err := idArg(cctx, 0, "post id")
	if err != nil {
		return err
	}
	c, err := loadClient(cctx)
	if err != nil {
		return err
	}

	return c.UnlikePost(ctx, postID)
}

func runDeletePost(cctx *cli.Context) error {
	ctx := cctx.Context
	postID, err := idArg(cctx, 0, "post id")
	if err != nil {
		return err
	}
	c, err := loadClient(cctx)
	if err != nil {
		return err
	}

	return c.DeletePost(ctx, postID)
}
