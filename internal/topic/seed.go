package topic

// SeedTopics returns the built-in data-structures-and-algorithms curriculum
// with clean learner progress. Persisted progress overlays these on load.
func SeedTopics() []Topic {
	return []Topic{
		{
			ID:          "arrays",
			Name:        "Arrays",
			Description: "Contiguous storage, indexing, and traversal.",
		},
		{
			ID:            "loops",
			Name:          "Loops",
			Description:   "Iteration patterns over collections.",
			Prerequisites: []string{"arrays"},
		},
		{
			ID:            "strings",
			Name:          "Strings",
			Description:   "Character sequences and common manipulations.",
			Prerequisites: []string{"arrays", "loops"},
		},
		{
			ID:            "recursion",
			Name:          "Recursion",
			Description:   "Self-referential problem decomposition and base cases.",
			Prerequisites: []string{"loops"},
		},
		{
			ID:            "linked-lists",
			Name:          "Linked Lists",
			Description:   "Node-based sequences, pointers, and traversal.",
			Prerequisites: []string{"arrays"},
		},
		{
			ID:            "stacks",
			Name:          "Stacks",
			Description:   "LIFO access and call-stack intuition.",
			Prerequisites: []string{"linked-lists"},
		},
		{
			ID:            "queues",
			Name:          "Queues",
			Description:   "FIFO access and buffering.",
			Prerequisites: []string{"linked-lists"},
		},
		{
			ID:            "hash-tables",
			Name:          "Hash Tables",
			Description:   "Key-value lookup, hashing, and collisions.",
			Prerequisites: []string{"arrays", "strings"},
		},
		{
			ID:            "sorting",
			Name:          "Sorting",
			Description:   "Comparison sorts and their trade-offs.",
			Prerequisites: []string{"loops", "recursion"},
		},
		{
			ID:            "searching",
			Name:          "Searching",
			Description:   "Linear and binary search over ordered data.",
			Prerequisites: []string{"sorting"},
		},
		{
			ID:            "trees",
			Name:          "Trees",
			Description:   "Hierarchies, binary trees, and traversal orders.",
			Prerequisites: []string{"recursion", "linked-lists"},
		},
		{
			ID:            "graphs",
			Name:          "Graphs",
			Description:   "Vertices, edges, BFS, and DFS.",
			Prerequisites: []string{"trees", "queues"},
		},
		{
			ID:            "dynamic-programming",
			Name:          "Dynamic Programming",
			Description:   "Overlapping subproblems and memoization.",
			Prerequisites: []string{"recursion", "hash-tables"},
		},
	}
}

// NewSeedGraph builds the Graph for the built-in curriculum. The seed is
// validated by tests, so failure here means a broken build, not bad input.
func NewSeedGraph() *Graph {
	g, err := NewGraph(SeedTopics())
	if err != nil {
		panic(err)
	}
	return g
}
