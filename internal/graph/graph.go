// Package graph computes overview statistics for the knowledge graph.
package graph

import (
	"math"
	"sort"

	"github.com/sophiakit/sophiakit/internal/artifact"
)

// NodeInput describes one declared concept node.
type NodeInput struct {
	ID    string
	Label string
}

// EdgeInput describes one directed relation between concepts.
type EdgeInput struct {
	Source   string
	Target   string
	Relation string
}

// Node is a computed graph node with degree and centrality metrics.
type Node struct {
	ID         string  `json:"id"`
	Label      string  `json:"label,omitempty"`
	InDegree   int     `json:"in_degree"`
	OutDegree  int     `json:"out_degree"`
	Centrality float64 `json:"centrality"`
}

// Degree is the total number of edges touching the node.
func (n Node) Degree() int {
	return n.InDegree + n.OutDegree
}

// RelationCount is the number of edges carrying one relation name.
type RelationCount struct {
	Relation string `json:"relation"`
	Count    int    `json:"count"`
}

// Overview is the complete computed graph summary.
type Overview struct {
	TotalNodes    int             `json:"total_nodes"`
	TotalEdges    int             `json:"total_edges"`
	Relations     []RelationCount `json:"relations,omitempty"`
	Hubs          []Node          `json:"hubs,omitempty"`
	Isolated      int             `json:"isolated"`
	DanglingEdges int             `json:"dangling_edges"`
}

// hubLimit caps how many top-degree nodes the overview carries.
const hubLimit = 5

// Build computes the overview from declared nodes and edges. Edges naming
// an undeclared node still contribute degree to their known end and are
// counted as dangling.
func Build(nodes []NodeInput, edges []EdgeInput) *Overview {
	nodeMap := buildNodeSet(nodes)
	dangling := computeDegrees(nodeMap, edges)
	computeCentrality(nodeMap, edges)

	computed := make([]Node, 0, len(nodeMap))
	isolated := 0
	for _, n := range nodeMap {
		if n.Degree() == 0 {
			isolated++
		}
		computed = append(computed, *n)
	}

	return &Overview{
		TotalNodes:    len(nodes),
		TotalEdges:    len(edges),
		Relations:     relationCounts(edges),
		Hubs:          pickHubs(computed),
		Isolated:      isolated,
		DanglingEdges: dangling,
	}
}

// FromArtifact computes the overview of a loaded knowledge graph.
func FromArtifact(g artifact.KnowledgeGraph) *Overview {
	nodes := make([]NodeInput, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes = append(nodes, NodeInput{ID: n.ID, Label: n.Label})
	}
	edges := make([]EdgeInput, 0, len(g.Edges))
	for _, e := range g.Edges {
		edges = append(edges, EdgeInput{Source: e.Source, Target: e.Target, Relation: e.Relation})
	}
	return Build(nodes, edges)
}

func buildNodeSet(nodes []NodeInput) map[string]*Node {
	nodeMap := make(map[string]*Node, len(nodes))
	for _, n := range nodes {
		nodeMap[n.ID] = &Node{
			ID:         n.ID,
			Label:      n.Label,
			Centrality: -1,
		}
	}
	return nodeMap
}

// computeDegrees sets in/out degree per node and returns the number of
// edges with at least one undeclared end.
func computeDegrees(nodeMap map[string]*Node, edges []EdgeInput) int {
	dangling := 0
	for _, e := range edges {
		src, srcOK := nodeMap[e.Source]
		dst, dstOK := nodeMap[e.Target]
		if srcOK {
			src.OutDegree++
		}
		if dstOK {
			dst.InDegree++
		}
		if !srcOK || !dstOK {
			dangling++
		}
	}
	return dangling
}

func relationCounts(edges []EdgeInput) []RelationCount {
	byName := make(map[string]int)
	for _, e := range edges {
		byName[e.Relation]++
	}
	counts := make([]RelationCount, 0, len(byName))
	for name, n := range byName {
		counts = append(counts, RelationCount{Relation: name, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Relation < counts[j].Relation
	})
	return counts
}

func pickHubs(nodes []Node) []Node {
	connected := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Degree() > 0 {
			connected = append(connected, n)
		}
	}
	sort.Slice(connected, func(i, j int) bool {
		if connected[i].Degree() != connected[j].Degree() {
			return connected[i].Degree() > connected[j].Degree()
		}
		return connected[i].ID < connected[j].ID
	})
	if len(connected) > hubLimit {
		connected = connected[:hubLimit]
	}
	return connected
}

const centralityNodeLimit = 50

// computeCentrality runs BFS-based betweenness centrality, skipping large
// graphs. Skipped nodes keep -1.
func computeCentrality(nodeMap map[string]*Node, edges []EdgeInput) {
	if len(nodeMap) >= centralityNodeLimit {
		return // all remain -1
	}

	// Build adjacency list
	names := make([]string, 0, len(nodeMap))
	idx := make(map[string]int)
	for name := range nodeMap {
		idx[name] = len(names)
		names = append(names, name)
	}

	n := len(names)
	adj := make([][]int, n)
	for i := range adj {
		adj[i] = []int{}
	}
	for _, e := range edges {
		si, sOK := idx[e.Source]
		ti, tOK := idx[e.Target]
		if sOK && tOK {
			adj[si] = append(adj[si], ti)
		}
	}

	// Brandes' algorithm
	cb := make([]float64, n)
	for s := range n {
		brandesBFS(s, n, adj, cb)
	}

	// Normalize: max possible is (n-1)*(n-2) for directed graphs
	maxVal := float64((n - 1) * (n - 2))
	for name, node := range nodeMap {
		if maxVal > 0 {
			node.Centrality = math.Round(cb[idx[name]]/maxVal*1000) / 1000
		} else {
			node.Centrality = 0
		}
	}
}

// brandesBFS runs one BFS pass of Brandes' algorithm from source s, accumulating into cb.
func brandesBFS(s, n int, adj [][]int, cb []float64) {
	stack := make([]int, 0, n)
	pred := make([][]int, n)
	sigma := make([]float64, n)
	sigma[s] = 1
	dist := make([]int, n)
	for i := range dist {
		dist[i] = -1
	}
	dist[s] = 0

	queue := []int{s}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		stack = append(stack, v)
		for _, w := range adj[v] {
			if dist[w] < 0 {
				queue = append(queue, w)
				dist[w] = dist[v] + 1
			}
			if dist[w] == dist[v]+1 {
				sigma[w] += sigma[v]
				pred[w] = append(pred[w], v)
			}
		}
	}

	delta := make([]float64, n)
	for len(stack) > 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, v := range pred[w] {
			delta[v] += (sigma[v] / sigma[w]) * (1 + delta[w])
		}
		if w != s {
			cb[w] += delta[w]
		}
	}
}
