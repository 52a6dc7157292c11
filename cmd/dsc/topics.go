package main

import (
	"fmt"

	"github.com/forumkit/discourse-go/discourse"

	"github.com/urfave/cli/v2"
	"github.com/xlab/treeprint"
)

var cmdLatest = &cli.Command{
	Name:  "latest",
	Usage: "list latest topics",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "print the full JSON response",
		},
	},
	Action: runLatest,
}

var cmdCategories = &cli.Command{
	Name:  "categories",
	Usage: "list categories",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "tree",
			Usage: "print as a parent/child tree instead of JSON",
		},
	},
	Action: runCategories,
}

var cmdCategoryTopics = &cli.Command{
	Name:      "category-topics",
	Usage:     "list latest topics of a category",
	ArgsUsage: `<category-id>`,
	Action:    runCategoryTopics,
}

var cmdTopic = &cli.Command{
	Name:      "topic",
	Usage:     "fetch a topic with its posts",
	ArgsUsage: `<topic-id>`,
	Action:    runTopic,
}

func printTopicList(resp *discourse.LatestResponse) {
	for _, t := range resp.TopicList.Topics {
		fmt.Printf("%d\t%s\treplies=%d views=%d likes=%d\n", t.ID, t.Title, t.ReplyCount, t.Views, t.LikeCount)
	}
	if resp.TopicList.MoreTopicsURL != nil {
		fmt.Printf("more: %s\n", *resp.TopicList.MoreTopicsURL)
	}
}

func runLatest(cctx *cli.Context) error {
	ctx := cctx.Context
	c, err := loadClient(cctx)
	if err != nil {
		return err
	}

	resp, err := c.GetLatest(ctx)
	if err != nil {
		return err
	}
	if cctx.Bool("json") {
		return printJSON(resp)
	}
	printTopicList(resp)
	return nil
}

func runCategories(cctx *cli.Context) error {
	ctx := cctx.Context
	c, err := loadClient(cctx)
	if err != nil {
		return err
	}

	cats, err := c.GetCategories(ctx)
	if err != nil {
		return err
	}
	if !cctx.Bool("tree") {
		return printJSON(cats)
	}

	tree := treeprint.NewWithRoot(c.BaseURL())
	for _, node := range discourse.CategoryTree(cats) {
		addCategoryBranch(tree, node)
	}
	fmt.Println(tree.String())
	return nil
}

func categoryLabel(cat discourse.Category) string {
	return fmt.Sprintf("%s (id=%d, topics=%d)", cat.Name, cat.ID, cat.TopicCount)
}

func addCategoryBranch(tree treeprint.Tree, node *discourse.CategoryNode) {
	if len(node.Children) == 0 {
		tree.AddNode(categoryLabel(node.Category))
		return
	}
	branch := tree.AddBranch(categoryLabel(node.Category))
	for _, child := range node.Children {
		addCategoryBranch(branch, child)
	}
}

func runCategoryTopics(cctx *cli.Context) error {
	ctx := cctx.Context
	categoryID, err := idArg(cctx, 0, "category id")
	if err != nil {
		return err
	}
	c, err := loadClient(cctx)
	if err != nil {
		return err
	}

	resp, err := c.GetCategoryTopics(ctx, categoryID)
	if err != nil {
		return err
	}
	printTopicList(resp)
	return nil
}

func runTopic(cctx *cli.Context) error {
	ctx := cctx.Context
	topicID, err := idArg(cctx, 0, "topic id")
	if err != nil {
		return err
	}
	c, err := loadClient(cctx)
	if err != nil {
		return err
	}

	topic, err := c.GetTopic(ctx, topicID)
	if err != nil {
		return err
	}
	return printJSON(topic)
}
