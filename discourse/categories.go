package discourse

import (
	"context"
)

type Category struct {
	ID               uint64  `json:"id"`
	Name             string  `json:"name"`
	Color            string  `json:"color"`
	TextColor        string  `json:"text_color"`
	Slug             string  `json:"slug"`
	TopicCount       int     `json:"topic_count"`
	Description      *string `json:"description,omitempty"`
	DescriptionText  *string `json:"description_text,omitempty"`
	HasChildren      *bool   `json:"has_children,omitempty"`
	ParentCategoryID *uint64 `json:"parent_category_id,omitempty"`
}

type categoryListResponse struct {
	CategoryList struct {
		Categories []Category `json:"categories"`
	} `json:"category_list"`
}

// Fetches the forum's categories, unwrapped from the "category_list" envelope.
func (c *Client) GetCategories(ctx context.Context) ([]Category, error) {
	var out categoryListResponse
	if err := c.api.Get(ctx, "categories.list", "/categories.json", nil, &out); err != nil {
		return nil, err
	}
	return out.CategoryList.Categories, nil
}

type CategoryNode struct {
	Category Category
	Children []*CategoryNode
}

// Arranges a flat category list by ParentCategoryID. Categories whose parent is not in the list are treated as top-level, as are categories whose parent links loop back to themselves. Input order is preserved among siblings.
func CategoryTree(categories []Category) []*CategoryNode {
	nodes := make(map[uint64]*CategoryNode, len(categories))
	parents := make(map[uint64]uint64, len(categories))
	for _, cat := range categories {
		nodes[cat.ID] = &CategoryNode{Category: cat}
		if cat.ParentCategoryID != nil {
			parents[cat.ID] = *cat.ParentCategoryID
		}
	}

	var roots []*CategoryNode
	for _, cat := range categories {
		node := nodes[cat.ID]
		if parentID, ok := parents[cat.ID]; ok && !inParentCycle(parents, cat.ID) {
			if parent, ok := nodes[parentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

// Reports whether following parent links from `id` leads back to `id`.
func inParentCycle(parents map[uint64]uint64, id uint64) bool {
	seen := map[uint64]bool{}
	cur := id
	for {
		next, ok := parents[cur]
		if !ok {
			return false
		}
		if next == id {
			return true
		}
		if seen[next] {
			// loop further up the chain, not through id
			return false
		}
		seen[next] = true
		cur = next
	}
}
