// Package knowledge provides an in-memory knowledge graph shared by agents.
package knowledge

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Node is a typed entity in the graph.
type Node struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Edge is a directed, typed relation between two nodes.
type Edge struct {
	ID         string         `json:"id"`
	FromID     string         `json:"from_id"`
	ToID       string         `json:"to_id"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Graph is a mutex-guarded in-memory knowledge graph.
// Suitable for local development, testing, and small deployments.
type Graph struct {
	mu    sync.RWMutex
	nodes map[string]*Node
	edges map[string]*Edge
	// outEdges holds edge IDs leaving a node; inEdges those arriving.
	outEdges map[string][]string
	inEdges  map[string][]string
	logger   *zap.Logger
}

// NewGraph creates an empty graph.
func NewGraph(logger *zap.Logger) *Graph {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Graph{
		nodes:    make(map[string]*Node),
		edges:    make(map[string]*Edge),
		outEdges: make(map[string][]string),
		inEdges:  make(map[string][]string),
		logger:   logger.With(zap.String("component", "knowledge_graph")),
	}
}

// AddNode adds or replaces a node.
func (g *Graph) AddNode(ctx context.Context, node *Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if node == nil {
		return fmt.Errorf("node is nil")
	}
	if node.ID == "" {
		return fmt.Errorf("node id is required")
	}

	now := time.Now()
	if node.CreatedAt.IsZero() {
		node.CreatedAt = now
	}
	node.UpdatedAt = now

	g.mu.Lock()
	defer g.mu.Unlock()

	copied := *node
	g.nodes[node.ID] = &copied

	g.logger.Debug("node added",
		zap.String("id", node.ID),
		zap.String("type", node.Type))

	return nil
}

// AddEdge adds a directed relation. Both endpoints must already exist.
func (g *Graph) AddEdge(ctx context.Context, edge *Edge) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if edge == nil {
		return fmt.Errorf("edge is nil")
	}
	if edge.FromID == "" || edge.ToID == "" {
		return fmt.Errorf("edge from_id and to_id are required")
	}
	if edge.ID == "" {
		edge.ID = fmt.Sprintf("edge_%d", time.Now().UnixNano())
	}
	if edge.CreatedAt.IsZero() {
		edge.CreatedAt = time.Now()
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[edge.FromID]; !ok {
		return fmt.Errorf("node %q not found", edge.FromID)
	}
	if _, ok := g.nodes[edge.ToID]; !ok {
		return fmt.Errorf("node %q not found", edge.ToID)
	}

	copied := *edge
	g.edges[edge.ID] = &copied
	g.outEdges[edge.FromID] = append(g.outEdges[edge.FromID], edge.ID)
	g.inEdges[edge.ToID] = append(g.inEdges[edge.ToID], edge.ID)

	g.logger.Debug("edge added",
		zap.String("id", edge.ID),
		zap.String("from", edge.FromID),
		zap.String("to", edge.ToID),
		zap.String("type", edge.Type))

	return nil
}

// Node returns the node with the given id.
func (g *Graph) Node(ctx context.Context, id string) (*Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, fmt.Errorf("node id is required")
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	node, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node %q not found", id)
	}

	copied := *node
	return &copied, nil
}

// Edges returns the relations touching nodeID, in either direction.
// If edgeType is non-empty, only matching relations are returned.
func (g *Graph) Edges(ctx context.Context, nodeID string, edgeType string) ([]Edge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if nodeID == "" {
		return nil, fmt.Errorf("node id is required")
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	results := make([]Edge, 0)
	for _, edgeID := range g.outEdges[nodeID] {
		edge, ok := g.edges[edgeID]
		if !ok {
			continue
		}
		if edgeType != "" && edge.Type != edgeType {
			continue
		}
		results = append(results, *edge)
	}
	for _, edgeID := range g.inEdges[nodeID] {
		edge, ok := g.edges[edgeID]
		if !ok {
			continue
		}
		if edgeType != "" && edge.Type != edgeType {
			continue
		}
		results = append(results, *edge)
	}

	return results, nil
}

// FindPath searches for paths from fromID to toID, treating edges as
// bidirectional. maxDepth limits the search depth; each returned path is a
// node ID sequence starting at fromID.
func (g *Graph) FindPath(ctx context.Context, fromID, toID string, maxDepth int) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if fromID == "" || toID == "" {
		return nil, fmt.Errorf("from_id and to_id are required")
	}
	if maxDepth <= 0 {
		return nil, nil
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.nodes[fromID]; !ok {
		return nil, fmt.Errorf("node %q not found", fromID)
	}
	if _, ok := g.nodes[toID]; !ok {
		return nil, fmt.Errorf("node %q not found", toID)
	}

	var paths [][]string
	visited := make(map[string]bool)
	g.dfs(ctx, fromID, toID, maxDepth, visited, []string{fromID}, &paths)

	return paths, nil
}

// dfs walks the graph depth-first (read lock must be held).
func (g *Graph) dfs(ctx context.Context, current, target string, depth int, visited map[string]bool, path []string, paths *[][]string) {
	if ctx.Err() != nil {
		return
	}
	if current == target && len(path) > 1 {
		found := make([]string, len(path))
		copy(found, path)
		*paths = append(*paths, found)
		return
	}
	if depth <= 0 {
		return
	}

	visited[current] = true
	defer func() { visited[current] = false }()

	for _, edgeID := range g.outEdges[current] {
		edge, ok := g.edges[edgeID]
		if !ok {
			continue
		}
		next := edge.ToID
		if visited[next] {
			continue
		}
		g.dfs(ctx, next, target, depth-1, visited, append(path, next), paths)
	}

	for _, edgeID := range g.inEdges[current] {
		edge, ok := g.edges[edgeID]
		if !ok {
			continue
		}
		next := edge.FromID
		if visited[next] {
			continue
		}
		g.dfs(ctx, next, target, depth-1, visited, append(path, next), paths)
	}
}
