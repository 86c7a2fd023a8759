package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStringGraph() *Graph[string] {
	return New(func(s string) string { return s })
}

func rootKeys[T any](nodes []*Node[T]) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Key())
	}
	return out
}

//
// -----------------------------------------------------------------------------
// Nodes
// -----------------------------------------------------------------------------

// TestLookup_EmptyGraph verifies Lookup has no side effect and returns nil for unknown keys.
func TestLookup_EmptyGraph(t *testing.T) {
	t.Parallel()

	g := newStringGraph()
	assert.Nil(t, g.Lookup("z"))
	assert.True(t, g.IsEmpty())
}

// TestLookupOrInsertNode_InsertsOnce verifies a node is created once and then reused.
func TestLookupOrInsertNode_InsertsOnce(t *testing.T) {
	t.Parallel()

	g := newStringGraph()
	n := g.LookupOrInsertNode("z")
	require.NotNil(t, n)
	assert.Equal(t, "z", n.Data)
	assert.Equal(t, "z", n.Key())

	assert.Same(t, n, g.LookupOrInsertNode("z"))
	assert.Same(t, n, g.Lookup("z"))
	assert.Equal(t, 1, g.Len())
}

// TestRemoveNode_LeavesGraphEmpty verifies removing the only node empties the graph.
func TestRemoveNode_LeavesGraphEmpty(t *testing.T) {
	t.Parallel()

	g := newStringGraph()
	g.LookupOrInsertNode("z")
	g.RemoveNode("z")

	assert.True(t, g.IsEmpty())
	assert.Nil(t, g.Lookup("z"))

	// removing again is a no-op
	g.RemoveNode("z")
	assert.True(t, g.IsEmpty())
}

// TestRemoveNode_DropsEdges verifies removing a node detaches it from its neighbours.
func TestRemoveNode_DropsEdges(t *testing.T) {
	t.Parallel()

	g := newStringGraph()
	g.InsertEdge("a", "b")
	g.InsertEdge("b", "c")
	g.RemoveNode("b")

	require.Equal(t, 2, g.Len())
	assert.Empty(t, g.Lookup("a").Outgoing())
	assert.Empty(t, g.Lookup("c").Incoming())
}

// TestNode_CustomKey verifies nodes are keyed by the key function, not by data identity.
func TestNode_CustomKey(t *testing.T) {
	t.Parallel()

	type svc struct {
		name    string
		attempt int
	}
	g := New(func(s svc) string { return s.name })

	first := g.LookupOrInsertNode(svc{name: "storage", attempt: 1})
	again := g.LookupOrInsertNode(svc{name: "storage", attempt: 2})

	assert.Same(t, first, again)
	assert.Equal(t, 1, again.Data.attempt)
}

//
// -----------------------------------------------------------------------------
// Edges
// -----------------------------------------------------------------------------

// TestInsertEdge_CreatesEndpoints verifies InsertEdge inserts missing nodes and records both directions.
func TestInsertEdge_CreatesEndpoints(t *testing.T) {
	t.Parallel()

	g := newStringGraph()
	g.InsertEdge("1", "2")

	require.Equal(t, 2, g.Len())
	assert.Equal(t, []string{"2"}, g.Lookup("1").Outgoing())
	assert.Equal(t, []string{"1"}, g.Lookup("2").Incoming())
	assert.Empty(t, g.Lookup("1").Incoming())
}

// TestInsertEdge_Idempotent verifies inserting the same edge twice keeps one edge.
func TestInsertEdge_Idempotent(t *testing.T) {
	t.Parallel()

	g := newStringGraph()
	g.InsertEdge("1", "2")
	g.InsertEdge("1", "2")

	assert.Equal(t, []string{"2"}, g.Lookup("1").Outgoing())
}

// TestRemoveEdge verifies RemoveEdge keeps both nodes and ignores unknown endpoints.
func TestRemoveEdge(t *testing.T) {
	t.Parallel()

	g := newStringGraph()
	g.InsertEdge("1", "2")
	g.RemoveEdge("1", "2")
	g.RemoveEdge("1", "missing")

	require.Equal(t, 2, g.Len())
	assert.Empty(t, g.Lookup("1").Outgoing())
	assert.Empty(t, g.Lookup("2").Incoming())
}

//
// -----------------------------------------------------------------------------
// Roots
// -----------------------------------------------------------------------------

// TestRoots_SingleEdge verifies 1->2 yields the single root 2.
func TestRoots_SingleEdge(t *testing.T) {
	t.Parallel()

	g := newStringGraph()
	g.InsertEdge("1", "2")

	roots := g.Roots()
	require.Len(t, roots, 1)
	assert.Equal(t, "2", roots[0].Data)
}

// TestRoots_CycleHasNoRoots verifies closing 1->2->1 removes every root.
func TestRoots_CycleHasNoRoots(t *testing.T) {
	t.Parallel()

	g := newStringGraph()
	g.InsertEdge("1", "2")
	g.InsertEdge("2", "1")

	assert.Empty(t, g.Roots())
}

// TestRoots_Branching verifies 1->2, 1->3, 3->4 yields exactly {2, 4}.
func TestRoots_Branching(t *testing.T) {
	t.Parallel()

	g := newStringGraph()
	g.InsertEdge("1", "2")
	g.InsertEdge("1", "3")
	g.InsertEdge("3", "4")

	assert.ElementsMatch(t, []string{"2", "4"}, rootKeys(g.Roots()))
}

// TestRoots_InsertionOrder verifies roots come back in node insertion order.
func TestRoots_InsertionOrder(t *testing.T) {
	t.Parallel()

	g := newStringGraph()
	g.LookupOrInsertNode("c")
	g.LookupOrInsertNode("a")
	g.LookupOrInsertNode("b")

	assert.Equal(t, []string{"c", "a", "b"}, rootKeys(g.Roots()))
}

//
// -----------------------------------------------------------------------------
// FindPath / String
// -----------------------------------------------------------------------------

// TestFindPath verifies paths follow outgoing edges and unreachable targets yield nil.
func TestFindPath(t *testing.T) {
	t.Parallel()

	g := newStringGraph()
	g.InsertEdge("a", "b")
	g.InsertEdge("b", "c")
	g.InsertEdge("a", "d")

	assert.Equal(t, []string{"a", "b", "c"}, g.FindPath("a", "c"))
	assert.Equal(t, []string{"a"}, g.FindPath("a", "a"))
	assert.Nil(t, g.FindPath("c", "a"))
	assert.Nil(t, g.FindPath("a", "missing"))
}

// TestFindPath_Cycle verifies the walk terminates on cyclic graphs.
func TestFindPath_Cycle(t *testing.T) {
	t.Parallel()

	g := newStringGraph()
	g.InsertEdge("a", "b")
	g.InsertEdge("b", "a")
	g.LookupOrInsertNode("x")

	assert.Equal(t, []string{"b", "a"}, g.FindPath("b", "a"))
	assert.Nil(t, g.FindPath("a", "x"))
}

// TestString verifies the textual dump lists nodes in insertion order with sorted edges.
func TestString(t *testing.T) {
	t.Parallel()

	g := newStringGraph()
	g.InsertEdge("a", "c")
	g.InsertEdge("a", "b")

	assert.Equal(t, "a -> [b c]\nc -> []\nb -> []\n", g.String())
}
