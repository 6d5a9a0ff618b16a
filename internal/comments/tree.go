// Package comments builds and mutates the display tree for an item's
// comment thread. Fetching and assembly are separate phases: first a
// breadth-first closure over child references pulls every reachable item
// into an ID-keyed map, then a recursive pass assembles the visible tree.
package comments

import (
	"context"

	"hn-reader/internal/hackernews"
	"hn-reader/internal/model"
)

// waveSize bounds the request burst of one BFS wave. The per-request
// concurrency ceiling applies within each wave.
const waveSize = 30

// Fetcher resolves IDs into items, dropping failures.
// *hackernews.Client satisfies it.
type Fetcher interface {
	FetchMany(ctx context.Context, ids []int, fresh hackernews.Freshness) []model.Item
}

// Node is one comment in the assembled tree. The tree is exclusively owned
// by its holder; collapse mutations happen in place and never refetch.
type Node struct {
	ID        int
	Item      model.Item
	Children  []*Node
	Collapsed bool
}

// Builder fetches and assembles comment trees.
type Builder struct {
	fetcher Fetcher
	fresh   hackernews.Freshness
}

func NewBuilder(f Fetcher, fresh hackernews.Freshness) *Builder {
	return &Builder{fetcher: f, fresh: fresh}
}

// Build fetches everything transitively reachable from rootKids and returns
// the assembled tree. Missing items (failed fetches, unknown IDs) and
// deleted items are omitted; an ID reachable through several paths appears
// at most once.
func (b *Builder) Build(ctx context.Context, rootKids []int) []*Node {
	if len(rootKids) == 0 {
		return nil
	}
	fetched := b.fetchAll(ctx, rootKids)
	seen := make(map[int]bool, len(fetched))
	return assemble(rootKids, fetched, seen)
}

// fetchAll walks the reference graph breadth-first in waves. IDs are marked
// visited at enqueue time so overlapping waves never enqueue the same ID
// twice, which also terminates cycles in pathological data.
func (b *Builder) fetchAll(ctx context.Context, ids []int) map[int]model.Item {
	fetched := make(map[int]model.Item)
	visited := make(map[int]bool, len(ids))
	queue := make([]int, 0, len(ids))
	for _, id := range ids {
		if visited[id] {
			continue
		}
		visited[id] = true
		queue = append(queue, id)
	}

	for len(queue) > 0 {
		n := len(queue)
		if n > waveSize {
			n = waveSize
		}
		wave := queue[:n]
		queue = queue[n:]

		for _, it := range b.fetcher.FetchMany(ctx, wave, b.fresh) {
			fetched[it.ID] = it
			for _, kid := range it.Kids {
				if visited[kid] {
					continue
				}
				visited[kid] = true
				queue = append(queue, kid)
			}
		}
	}
	return fetched
}

// assemble builds nodes for ids depth-first in input order. A node is
// emitted only when its item was fetched, is not deleted, and has not been
// emitted on another path already. Descendants of an omitted node still
// appear wherever a surviving path reaches them.
func assemble(ids []int, fetched map[int]model.Item, seen map[int]bool) []*Node {
	var nodes []*Node
	for _, id := range ids {
		if seen[id] {
			continue
		}
		it, ok := fetched[id]
		if !ok || it.Deleted {
			continue
		}
		seen[id] = true
		node := &Node{ID: id, Item: it}
		if len(it.Kids) > 0 {
			node.Children = assemble(it.Kids, fetched, seen)
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// Toggle flips the collapse flag of the first node matching id, searching
// each node before its children. Returns false when id is not in the tree.
func Toggle(nodes []*Node, id int) bool {
	for _, n := range nodes {
		if n.ID == id {
			n.Collapsed = !n.Collapsed
			return true
		}
		if Toggle(n.Children, id) {
			return true
		}
	}
	return false
}

// ExpandAll clears the collapse flag on every node at every depth.
func ExpandAll(nodes []*Node) {
	for _, n := range nodes {
		n.Collapsed = false
		ExpandAll(n.Children)
	}
}

// CollapseAll collapses only the top-level threads. Deeper flags are left
// as the user set them, so expanding a thread again restores its state.
func CollapseAll(nodes []*Node) {
	for _, n := range nodes {
		n.Collapsed = true
	}
}

// Count returns the number of nodes in the tree.
func Count(nodes []*Node) int {
	total := 0
	for _, n := range nodes {
		total += 1 + Count(n.Children)
	}
	return total
}
