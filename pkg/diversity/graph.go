// 13 Mar 2023
// The β matrix seen as a graph. The graph is complete and fully
// determined by the matrix, so it is built in one shot rather than
// grown edge by edge; anyone wanting to threshold or prune it for
// drawing does that downstream.

package diversity

// Edge is one unordered sample pair with its divergence. A comes
// before B in matrix order.
type Edge struct {
	A, B   string
	Weight float32
}

// Graph is a complete undirected weighted graph over the samples:
// n nodes, n(n-1)/2 edges, no self loops.
type Graph struct {
	Nodes []string
	Edges []Edge
}

// BuildGraph derives the graph from a β matrix. Edge weights are the
// upper-triangle entries, so with the default absolute-difference
// matrix they are all non-negative.
func BuildGraph(b *BetaMatrix) *Graph {
	n := b.N()
	g := &Graph{
		Nodes: append([]string(nil), b.names...),
		Edges: make([]Edge, 0, n*(n-1)/2),
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			g.Edges = append(g.Edges, Edge{
				A:      b.names[i],
				B:      b.names[j],
				Weight: b.At(i, j),
			})
		}
	}
	return g
}
