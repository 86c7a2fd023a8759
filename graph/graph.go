// Package graph provides a small directed graph keyed by string.
//
// Nodes live in a key-indexed table and edges refer to nodes by key, so
// removing a node never leaves a dangling reference behind. The di package
// uses it to track the services currently under construction and to reject
// dependency cycles.
//
// Graph is not safe for concurrent use.
package graph

import (
	"sort"
	"strings"
)

// Node is a graph vertex holding caller data.
type Node[T any] struct {
	Data T

	key      string
	seq      uint64
	incoming map[string]struct{}
	outgoing map[string]struct{}
}

// Key returns the node key derived from Data.
func (n *Node[T]) Key() string { return n.key }

// Incoming returns the keys of nodes with an edge to n, sorted.
func (n *Node[T]) Incoming() []string { return sortedKeys(n.incoming) }

// Outgoing returns the keys of nodes n has an edge to, sorted.
func (n *Node[T]) Outgoing() []string { return sortedKeys(n.outgoing) }

// Graph is a directed graph whose nodes are identified by key(data).
type Graph[T any] struct {
	key   func(T) string
	nodes map[string]*Node[T]
	seq   uint64
}

// New returns an empty graph that derives node keys with key.
func New[T any](key func(T) string) *Graph[T] {
	return &Graph[T]{key: key, nodes: make(map[string]*Node[T])}
}

// Lookup returns the node for key, or nil.
func (g *Graph[T]) Lookup(key string) *Node[T] {
	return g.nodes[key]
}

// LookupOrInsertNode returns the node for data, inserting an edgeless one
// if it does not exist yet.
func (g *Graph[T]) LookupOrInsertNode(data T) *Node[T] {
	k := g.key(data)
	if n, ok := g.nodes[k]; ok {
		return n
	}
	g.seq++
	n := &Node[T]{
		Data:     data,
		key:      k,
		seq:      g.seq,
		incoming: make(map[string]struct{}),
		outgoing: make(map[string]struct{}),
	}
	g.nodes[k] = n
	return n
}

// InsertEdge records from -> to, inserting either node when missing.
func (g *Graph[T]) InsertEdge(from, to T) {
	f := g.LookupOrInsertNode(from)
	t := g.LookupOrInsertNode(to)
	f.outgoing[t.key] = struct{}{}
	t.incoming[f.key] = struct{}{}
}

// RemoveEdge deletes from -> to. Missing nodes or edges are ignored.
func (g *Graph[T]) RemoveEdge(from, to T) {
	f, t := g.nodes[g.key(from)], g.nodes[g.key(to)]
	if f == nil || t == nil {
		return
	}
	delete(f.outgoing, t.key)
	delete(t.incoming, f.key)
}

// RemoveNode deletes the node for data together with every edge touching it.
func (g *Graph[T]) RemoveNode(data T) {
	k := g.key(data)
	n, ok := g.nodes[k]
	if !ok {
		return
	}
	for other := range n.outgoing {
		delete(g.nodes[other].incoming, k)
	}
	for other := range n.incoming {
		delete(g.nodes[other].outgoing, k)
	}
	delete(g.nodes, k)
}

// IsEmpty reports whether the graph has no nodes.
func (g *Graph[T]) IsEmpty() bool { return len(g.nodes) == 0 }

// Len returns the number of nodes.
func (g *Graph[T]) Len() int { return len(g.nodes) }

// Roots returns the nodes without outgoing edges, in insertion order.
//
// For a dependency graph where an edge points from a consumer to what it
// needs, these are the nodes that can be built first. Nodes on a cycle are
// never roots.
func (g *Graph[T]) Roots() []*Node[T] {
	var out []*Node[T]
	for _, n := range g.nodes {
		if len(n.outgoing) == 0 {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// FindPath returns the keys along a path from -> ... -> to following
// outgoing edges, or nil if to is unreachable. A node always reaches itself.
func (g *Graph[T]) FindPath(from, to string) []string {
	if g.nodes[from] == nil || g.nodes[to] == nil {
		return nil
	}
	seen := map[string]bool{}
	var walk func(k string) []string
	walk = func(k string) []string {
		if k == to {
			return []string{k}
		}
		seen[k] = true
		for _, next := range sortedKeys(g.nodes[k].outgoing) {
			if seen[next] {
				continue
			}
			if rest := walk(next); rest != nil {
				return append([]string{k}, rest...)
			}
		}
		return nil
	}
	return walk(from)
}

// String renders every node with its outgoing edges, one per line, in
// insertion order:
//
//	a -> [b c]
//	b -> []
func (g *Graph[T]) String() string {
	all := make([]*Node[T], 0, len(g.nodes))
	for _, n := range g.nodes {
		all = append(all, n)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].seq < all[j].seq })

	var b strings.Builder
	for _, n := range all {
		b.WriteString(n.key)
		b.WriteString(" -> [")
		b.WriteString(strings.Join(n.Outgoing(), " "))
		b.WriteString("]\n")
	}
	return b.String()
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
