package service

import (
	"log/slog"
	"sort"

	"karmafeed/internal/middleware"
	"karmafeed/internal/models"
)

// CommentNode is one node of the assembled reply tree. It is a read-side
// projection only; nothing here is persisted. Nodes hold explicit child
// slices (an arena keyed by comment ID during assembly) instead of parent
// back-references, so arbitrarily deep threads need no recursion to build.
type CommentNode struct {
	*models.Comment
	Replies []*CommentNode `json:"replies"`
	// ReplyCount is the size of the node's full descendant subtree, not just
	// its direct children. Callers use it to decide whether to offer
	// "show replies".
	ReplyCount int `json:"reply_count"`
}

// BuildCommentTree assembles a nested reply forest from flat comment rows.
// Input order does not matter. Children are ordered by creation time
// ascending. A comment whose parent cannot be resolved within the same post
// is a data-integrity violation: it is degraded to a root and logged as a
// warning rather than failing the whole page.
func BuildCommentTree(comments []*models.Comment) []*CommentNode {
	if len(comments) == 0 {
		return []*CommentNode{}
	}

	nodes := make(map[uint]*CommentNode, len(comments))
	ordered := make([]*CommentNode, 0, len(comments))
	for _, c := range comments {
		n := &CommentNode{Comment: c, Replies: []*CommentNode{}}
		nodes[c.ID] = n
		ordered = append(ordered, n)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	roots := make([]*CommentNode, 0)
	parentOf := make(map[uint]*CommentNode, len(comments))
	for _, n := range ordered {
		if n.ParentID == nil {
			roots = append(roots, n)
			continue
		}
		parent, ok := nodes[*n.ParentID]
		if !ok || parent.PostID != n.PostID {
			middleware.Logger.Warn("comment parent not resolvable within post, degrading to root",
				slog.Any("comment_id", n.ID),
				slog.Any("parent_id", *n.ParentID),
				slog.Any("post_id", n.PostID),
			)
			middleware.TreeIntegrityWarnings.Inc()
			roots = append(roots, n)
			continue
		}
		parent.Replies = append(parent.Replies, n)
		parentOf[n.ID] = parent
	}

	// Children are created strictly after their parents, so walking the
	// creation order backwards counts every subtree before its parent.
	for i := len(ordered) - 1; i >= 0; i-- {
		n := ordered[i]
		if parent, ok := parentOf[n.ID]; ok {
			parent.ReplyCount += n.ReplyCount + 1
		}
	}

	return roots
}

// CountNodes returns the total number of nodes in the forest. Traversal is
// iterative with an explicit stack; reply depth is unbounded.
func CountNodes(roots []*CommentNode) int {
	total := 0
	stack := make([]*CommentNode, len(roots))
	copy(stack, roots)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		total++
		stack = append(stack, n.Replies...)
	}
	return total
}
