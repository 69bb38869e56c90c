package topic

import (
	"fmt"
	"slices"
	"sort"
)

// Graph holds the curriculum DAG with precomputed indices. The graph is
// authored (see seed.go), not learner-edited, so it is built once and
// treated as immutable; learner progress lives on the Topic values fed to
// Resolve, not here.
type Graph struct {
	topics     []Topic
	byID       map[string]*Topic
	roots      []string
	dependents map[string][]string
	topoOrder  []string
}

// NewGraph constructs a Graph from a slice of topics, building the id
// index, reverse edges, and a deterministic topological order (Kahn's
// algorithm). Returns an error if validation fails.
func NewGraph(topics []Topic) (*Graph, error) {
	if err := validateTopics(topics); err != nil {
		return nil, err
	}

	g := &Graph{
		topics:     topics,
		byID:       make(map[string]*Topic, len(topics)),
		dependents: make(map[string][]string),
	}

	for i := range g.topics {
		g.byID[g.topics[i].ID] = &g.topics[i]
	}

	for i := range g.topics {
		for _, prereqID := range g.topics[i].Prerequisites {
			g.dependents[prereqID] = append(g.dependents[prereqID], g.topics[i].ID)
		}
	}

	inDegree := make(map[string]int, len(topics))
	for i := range topics {
		inDegree[topics[i].ID] = len(topics[i].Prerequisites)
	}

	var queue []string
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	// Sort for deterministic ordering.
	sort.Strings(queue)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		g.topoOrder = append(g.topoOrder, id)

		deps := slices.Clone(g.dependents[id])
		sort.Strings(deps)
		for _, depID := range deps {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	for i := range g.topics {
		if len(g.topics[i].Prerequisites) == 0 {
			g.roots = append(g.roots, g.topics[i].ID)
		}
	}

	return g, nil
}

// Get returns a topic by id, or an error if not found.
func (g *Graph) Get(id string) (Topic, error) {
	t, ok := g.byID[id]
	if !ok {
		return Topic{}, fmt.Errorf("topic not found: %q", id)
	}
	return *t, nil
}

// All returns every topic in topological order.
func (g *Graph) All() []Topic {
	result := make([]Topic, 0, len(g.topoOrder))
	for _, id := range g.topoOrder {
		result = append(result, *g.byID[id])
	}
	return result
}

// Roots returns the ids of topics with no prerequisites.
func (g *Graph) Roots() []string {
	return slices.Clone(g.roots)
}

// Dependents returns the ids of topics that directly require the given
// topic as a prerequisite.
func (g *Graph) Dependents(id string) []string {
	return slices.Clone(g.dependents[id])
}

// Len returns the number of topics in the graph.
func (g *Graph) Len() int {
	return len(g.topics)
}
