package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/forumkit/discourse-go/discourse"

	"github.com/brianvoe/gofakeit/v6"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/urfave/cli/v2"
)

var cmdSmokeTest = &cli.Command{
	Name:  "smoke-test",
	Usage: "exercise the write endpoints against a live forum, cleaning up afterwards",
	Description: "Creates a topic with generated content, replies to it, edits and likes the reply,\n" +
		"then deletes everything it created. Requires credentials with posting rights.",
	Flags: []cli.Flag{
		&cli.Uint64Flag{
			Name:  "category",
			Usage: "category id to create the topic in",
		},
		&cli.Int64Flag{
			Name:  "seed",
			Usage: "random seed for generated content (0 for random)",
		},
	},
	Action: runSmokeTest,
}

const smokeCleanupTimeout = 30 * time.Second

type smokeContent struct {
	Title  string
	Body   string
	Reply  string
	Edited string
}

func generateSmokeContent(seed int64) smokeContent {
	faker := gofakeit.New(seed)
	return smokeContent{
		Title:  fmt.Sprintf("dsc smoke test: %s", faker.HackerPhrase()),
		Body:   faker.Paragraph(2, 3, 12, "\n\n"),
		Reply:  faker.Paragraph(1, 3, 10, "\n\n"),
		Edited: faker.Paragraph(1, 2, 10, "\n\n") + "\n\n(edited)",
	}
}

func runSmokeTest(cctx *cli.Context) error {
	c, err := loadClient(cctx)
	if err != nil {
		return err
	}
	content := generateSmokeContent(cctx.Int64("seed"))
	// tag makes concurrent runs distinguishable in the forum UI, and avoids duplicate title rejection
	content.Title = fmt.Sprintf("%s [%s]", content.Title, petname.Generate(2, "-"))

	var category *uint64
	if cctx.IsSet("category") {
		cat := cctx.Uint64("category")
		category = &cat
	}
	topicID, err := smokeTest(cctx.Context, c, content, category)
	if err != nil {
		return err
	}
	fmt.Printf("smoke test passed against %s (topic %d)\n", c.BaseURL(), topicID)
	return nil
}

// Runs the write round trip, returning the id of the (deleted) topic. The topic is deleted even when `ctx` is cancelled part way.
func smokeTest(ctx context.Context, c *discourse.Client, content smokeContent, category *uint64) (uint64, error) {
	topicInput := discourse.CreateTopicInput{
		Title:      content.Title,
		Raw:        content.Body,
		CategoryID: category,
	}
	first, err := c.CreateTopic(ctx, &topicInput)
	if err != nil {
		return 0, fmt.Errorf("creating topic: %w", err)
	}
	slog.Info("created topic", "topic", first.TopicID, "post", first.ID, "title", content.Title)

	// deleting the first post removes the whole topic
	defer func() {
		// the run's own context may already be cancelled
		cleanupCtx, cancel := context.WithTimeout(context.Background(), smokeCleanupTimeout)
		defer cancel()
		if err := c.DeletePost(cleanupCtx, first.ID); err != nil {
			slog.Warn("failed to clean up topic", "topic", first.TopicID, "err", err)
			return
		}
		slog.Info("deleted topic", "topic", first.TopicID)
	}()

	replyTo := first.PostNumber
	reply, err := c.CreatePost(ctx, &discourse.CreatePostInput{
		Raw:               content.Reply,
		TopicID:           first.TopicID,
		ReplyToPostNumber: &replyTo,
	})
	if err != nil {
		return 0, fmt.Errorf("creating reply: %w", err)
	}
	slog.Info("created reply", "post", reply.ID)

	if err := c.UpdatePost(ctx, reply.ID, content.Edited); err != nil {
		return 0, fmt.Errorf("editing reply: %w", err)
	}
	post, err := c.GetPost(ctx, reply.ID)
	if err != nil {
		return 0, fmt.Errorf("fetching reply: %w", err)
	}
	if post.Raw != nil && *post.Raw != content.Edited {
		return 0, fmt.Errorf("edited reply %d does not have the new content", reply.ID)
	}

	// liking your own post is refused by Discourse, so only a different acting user gets this far
	if err := c.LikePost(ctx, reply.ID); err != nil {
		slog.Warn("like failed", "post", reply.ID, "err", err)
	} else if err := c.UnlikePost(ctx, reply.ID); err != nil {
		return 0, fmt.Errorf("unliking reply: %w", err)
	}

	topic, err := c.GetTopic(ctx, first.TopicID)
	if err != nil {
		return 0, fmt.Errorf("fetching topic: %w", err)
	}
	if len(topic.PostStream.Stream) < 2 {
		return 0, fmt.Errorf("topic %d has %d posts, expected at least 2", first.TopicID, len(topic.PostStream.Stream))
	}

	if err := c.DeletePost(ctx, reply.ID); err != nil {
		return 0, fmt.Errorf("deleting reply: %w", err)
	}
	return first.TopicID, nil
}
