// Package graph provides a generic directed graph with deterministic
// topological sorting.
//
// Nodes are kept in insertion order. An edge (from, to) means "to depends on
// from": TopologicalSort places from strictly before to. Sorting uses Kahn's
// algorithm with a FIFO ready queue, so nodes that become ready at the same
// time come out in the order they were first added. That tie-break is
// deterministic, but callers should only rely on the edge constraints.
//
// Directed is not safe for concurrent use.
package graph

import (
	"errors"
	"fmt"
)

// ErrCycle is returned (wrapped in a *CycleError) when the graph cannot be
// linearized.
var ErrCycle = errors.New("graph: dependency cycle")

// CycleError reports the nodes that could not be placed in a topological
// order. Every node on a cycle, and every node downstream of one, is listed
// in insertion order.
type CycleError[T comparable] struct {
	Remaining []T
}

// Error implements the error interface.
func (e *CycleError[T]) Error() string {
	return fmt.Sprintf("graph: dependency cycle among %d node(s): %v", len(e.Remaining), e.Remaining)
}

// Unwrap returns ErrCycle so callers can use errors.Is.
func (e *CycleError[T]) Unwrap() error { return ErrCycle }

// Edge is a directed edge between two nodes.
type Edge[T comparable] struct {
	From T
	To   T
}

// Directed is a directed graph over comparable node values.
type Directed[T comparable] struct {
	order    []T
	index    map[T]int
	succ     []map[int]struct{}
	succList [][]int // successor indices in edge insertion order
	inDegree []int
	edges    int
}

// New creates an empty graph.
func New[T comparable]() *Directed[T] {
	return &Directed[T]{index: make(map[T]int)}
}

// AddNode adds n to the graph. Adding an existing node is a no-op.
func (g *Directed[T]) AddNode(n T) {
	g.node(n)
}

func (g *Directed[T]) node(n T) int {
	if i, ok := g.index[n]; ok {
		return i
	}
	i := len(g.order)
	g.index[n] = i
	g.order = append(g.order, n)
	g.succ = append(g.succ, make(map[int]struct{}))
	g.succList = append(g.succList, nil)
	g.inDegree = append(g.inDegree, 0)
	return i
}

// AddEdge records that to depends on from. Both nodes are added if missing.
// Adding the same edge twice has no further effect.
func (g *Directed[T]) AddEdge(from, to T) {
	f := g.node(from)
	t := g.node(to)
	if _, ok := g.succ[f][t]; ok {
		return
	}
	g.succ[f][t] = struct{}{}
	g.succList[f] = append(g.succList[f], t)
	g.inDegree[t]++
	g.edges++
}

// HasNode reports whether n is in the graph.
func (g *Directed[T]) HasNode(n T) bool {
	_, ok := g.index[n]
	return ok
}

// HasEdge reports whether the edge (from, to) exists.
func (g *Directed[T]) HasEdge(from, to T) bool {
	f, ok := g.index[from]
	if !ok {
		return false
	}
	t, ok := g.index[to]
	if !ok {
		return false
	}
	_, ok = g.succ[f][t]
	return ok
}

// Len returns the number of nodes.
func (g *Directed[T]) Len() int { return len(g.order) }

// EdgeCount returns the number of distinct edges.
func (g *Directed[T]) EdgeCount() int { return g.edges }

// Nodes returns all nodes in insertion order.
func (g *Directed[T]) Nodes() []T {
	out := make([]T, len(g.order))
	copy(out, g.order)
	return out
}

// Successors returns the nodes that depend on n, in edge insertion order.
func (g *Directed[T]) Successors(n T) []T {
	i, ok := g.index[n]
	if !ok {
		return nil
	}
	out := make([]T, 0, len(g.succList[i]))
	for _, s := range g.succList[i] {
		out = append(out, g.order[s])
	}
	return out
}

// Predecessors returns the nodes n depends on, in insertion order.
func (g *Directed[T]) Predecessors(n T) []T {
	i, ok := g.index[n]
	if !ok {
		return nil
	}
	var out []T
	for p := range g.order {
		if _, ok := g.succ[p][i]; ok {
			out = append(out, g.order[p])
		}
	}
	return out
}

// InDegree returns the number of edges pointing at n.
func (g *Directed[T]) InDegree(n T) int {
	i, ok := g.index[n]
	if !ok {
		return 0
	}
	return g.inDegree[i]
}

// Edges returns every edge, grouped by source node in insertion order.
func (g *Directed[T]) Edges() []Edge[T] {
	out := make([]Edge[T], 0, g.edges)
	for f, list := range g.succList {
		for _, t := range list {
			out = append(out, Edge[T]{From: g.order[f], To: g.order[t]})
		}
	}
	return out
}

// TopologicalSort returns every node exactly once, ordered so that each
// edge points from an earlier node to a later one. If the graph has a cycle
// it returns a *CycleError and no ordering.
//
// The graph itself is not modified.
func (g *Directed[T]) TopologicalSort() ([]T, error) {
	n := len(g.order)
	degree := make([]int, n)
	copy(degree, g.inDegree)

	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if degree[i] == 0 {
			queue = append(queue, i)
		}
	}

	result := make([]T, 0, n)
	for head := 0; head < len(queue); head++ {
		i := queue[head]
		result = append(result, g.order[i])
		for _, s := range g.succList[i] {
			degree[s]--
			if degree[s] == 0 {
				queue = append(queue, s)
			}
		}
	}

	if len(result) < n {
		remaining := make([]T, 0, n-len(result))
		for i := 0; i < n; i++ {
			if degree[i] > 0 {
				remaining = append(remaining, g.order[i])
			}
		}
		return nil, &CycleError[T]{Remaining: remaining}
	}
	return result, nil
}
