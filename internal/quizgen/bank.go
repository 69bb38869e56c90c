package quizgen

import (
	"fmt"

	"github.com/abhisek/learntrack/internal/quiz"
)

// Bank is the built-in question bank covering the seed curriculum. It
// serves offline use and acts as the fallback when no LLM provider is
// configured or generation fails.
type Bank struct {
	byTopic map[string][]quiz.Question
}

// NewBank creates the built-in bank.
func NewBank() *Bank {
	b := &Bank{byTopic: make(map[string][]quiz.Question)}
	for topicID, entries := range bankEntries {
		questions := make([]quiz.Question, len(entries))
		for i, e := range entries {
			questions[i] = quiz.Question{
				ID:           fmt.Sprintf("bank-%s-%d", topicID, i+1),
				Prompt:       e.prompt,
				Options:      e.options,
				CorrectIndex: e.correct,
				Explanation:  e.explanation,
			}
		}
		b.byTopic[topicID] = questions
	}
	return b
}

// QuestionsFor returns the bank questions for a topic, or an error when
// the topic has no bank coverage.
func (b *Bank) QuestionsFor(topicID string) ([]quiz.Question, error) {
	questions, ok := b.byTopic[topicID]
	if !ok {
		return nil, fmt.Errorf("no bank questions for topic %q: %w", topicID, quiz.ErrNoQuestions)
	}
	out := make([]quiz.Question, len(questions))
	copy(out, questions)
	return out, nil
}

// Topics returns the ids the bank has coverage for.
func (b *Bank) Topics() []string {
	ids := make([]string, 0, len(b.byTopic))
	for id := range b.byTopic {
		ids = append(ids, id)
	}
	return ids
}

type bankEntry struct {
	prompt      string
	options     [quiz.OptionCount]string
	correct     int
	explanation string
}

var bankEntries = map[string][]bankEntry{
	"arrays": {
		{
			prompt:      "What is the time complexity of accessing an element in an array by index?",
			options:     [quiz.OptionCount]string{"O(1)", "O(log n)", "O(n)", "O(n^2)"},
			correct:     0,
			explanation: "Arrays store elements contiguously, so the address of any index is computed directly from the base address.",
		},
		{
			prompt:      "Inserting an element at the front of an array of n elements takes how long in the worst case?",
			options:     [quiz.OptionCount]string{"O(1)", "O(log n)", "O(n)", "O(n log n)"},
			correct:     2,
			explanation: "Every existing element must shift one position to the right to make room at index 0.",
		},
		{
			prompt:      "Which of these is true of a fixed-size array?",
			options:     [quiz.OptionCount]string{"It grows automatically when full", "Its capacity is set when it is created", "Elements may have different types", "Indexing starts at 1"},
			correct:     1,
			explanation: "A fixed-size array allocates its capacity up front; growing requires allocating a new array and copying.",
		},
	},
	"loops": {
		{
			prompt:      "How many times does a loop with header `for i = 0; i < 5; i++` execute its body?",
			options:     [quiz.OptionCount]string{"4", "6", "It depends on the body", "5"},
			correct:     3,
			explanation: "The body runs for i = 0, 1, 2, 3, 4, which is five iterations.",
		},
		{
			prompt:      "What is the usual result of a loop whose condition never becomes false?",
			options:     [quiz.OptionCount]string{"A compile error", "An infinite loop", "The loop runs once", "The loop is skipped"},
			correct:     1,
			explanation: "If the exit condition can never be met the loop body repeats forever unless broken out of.",
		},
		{
			prompt:      "Two nested loops that each run n times give what overall complexity?",
			options:     [quiz.OptionCount]string{"O(n^2)", "O(2n)", "O(n)", "O(n log n)"},
			correct:     0,
			explanation: "The inner loop's n iterations happen once per outer iteration, so the body runs n * n times.",
		},
	},
	"strings": {
		{
			prompt:      "What does it mean for strings to be immutable?",
			options:     [quiz.OptionCount]string{"They cannot be compared", "They cannot contain digits", "They are stored on the stack", "They cannot be changed after creation"},
			correct:     3,
			explanation: "Operations that appear to modify an immutable string actually produce a new string.",
		},
		{
			prompt:      "Concatenating n single characters one at a time onto an immutable string costs:",
			options:     [quiz.OptionCount]string{"O(n)", "O(log n)", "O(n^2)", "O(1)"},
			correct:     2,
			explanation: "Each concatenation copies the whole prefix, giving 1 + 2 + ... + n copies overall.",
		},
		{
			prompt:      "Which technique checks whether a string is a palindrome in O(n)?",
			options:     [quiz.OptionCount]string{"Sorting the characters", "Hashing every prefix", "Two pointers moving inward from both ends", "Binary search on the middle"},
			correct:     2,
			explanation: "Compare characters at mirrored positions while the pointers move toward the center.",
		},
	},
	"recursion": {
		{
			prompt:      "What must every correct recursive function have?",
			options:     [quiz.OptionCount]string{"A loop", "A base case", "A global variable", "Two parameters"},
			correct:     1,
			explanation: "Without a base case the recursion never stops and the call stack overflows.",
		},
		{
			prompt:      "What does naive recursive fib(n) compute fib(2) how many times for n = 5?",
			options:     [quiz.OptionCount]string{"3", "1", "2", "5"},
			correct:     0,
			explanation: "The call tree recomputes overlapping subproblems; fib(2) appears under fib(4), fib(3), and fib(3)'s sibling.",
		},
		{
			prompt:      "Which data structure implicitly backs recursive calls?",
			options:     [quiz.OptionCount]string{"A queue", "A heap ordered by depth", "A hash table", "The call stack"},
			correct:     3,
			explanation: "Each call pushes a frame with its locals; returning pops it.",
		},
	},
	"linked-lists": {
		{
			prompt:      "Inserting a node at the head of a singly linked list costs:",
			options:     [quiz.OptionCount]string{"O(n)", "O(1)", "O(log n)", "O(n^2)"},
			correct:     1,
			explanation: "Point the new node at the current head and move the head pointer; no traversal needed.",
		},
		{
			prompt:      "Which operation is slower on a linked list than on an array?",
			options:     [quiz.OptionCount]string{"Insert at head", "Delete at head", "Access by index", "Append with a tail pointer"},
			correct:     2,
			explanation: "Reaching index i requires following i links; arrays compute the address directly.",
		},
		{
			prompt:      "The fast/slow pointer technique detects what in a linked list?",
			options:     [quiz.OptionCount]string{"Duplicate values", "The largest element", "An unsorted region", "A cycle"},
			correct:     3,
			explanation: "If a cycle exists the fast pointer laps the slow one and they meet inside the cycle.",
		},
	},
	"stacks": {
		{
			prompt:      "A stack processes its elements in which order?",
			options:     [quiz.OptionCount]string{"Last in, first out", "First in, first out", "Smallest first", "Random order"},
			correct:     0,
			explanation: "Push and pop both operate on the same end, so the most recent element leaves first.",
		},
		{
			prompt:      "Which problem is a natural fit for a stack?",
			options:     [quiz.OptionCount]string{"Finding the shortest path", "Level-order tree traversal", "Matching balanced parentheses", "Merging sorted lists"},
			correct:     2,
			explanation: "Each opening bracket is pushed and must match the most recently opened one, which pop retrieves.",
		},
		{
			prompt:      "Popping from an empty stack is best treated as:",
			options:     [quiz.OptionCount]string{"Returning zero", "Returning the bottom element", "A no-op that always succeeds", "An error the caller must handle"},
			correct:     3,
			explanation: "There is no meaningful value to return, so the API should surface underflow explicitly.",
		},
	},
	"queues": {
		{
			prompt:      "A queue processes its elements in which order?",
			options:     [quiz.OptionCount]string{"Last in, first out", "First in, first out", "Largest first", "By priority"},
			correct:     1,
			explanation: "Elements enqueue at the back and dequeue from the front, preserving arrival order.",
		},
		{
			prompt:      "Why does a ring buffer implementation of a queue use modular arithmetic?",
			options:     [quiz.OptionCount]string{"To wrap the head and tail indices around the array", "To sort the elements", "To hash the elements", "To avoid integer overflow"},
			correct:     0,
			explanation: "Wrapping lets the queue reuse slots freed at the front without shifting elements.",
		},
		{
			prompt:      "Which traversal uses a queue?",
			options:     [quiz.OptionCount]string{"Depth-first search", "In-order traversal", "Backtracking", "Breadth-first search"},
			correct:     3,
			explanation: "BFS explores nodes in discovery order, which the queue's FIFO discipline provides.",
		},
	},
	"hash-tables": {
		{
			prompt:      "What is the average-case cost of a hash table lookup?",
			options:     [quiz.OptionCount]string{"O(log n)", "O(1)", "O(n)", "O(n log n)"},
			correct:     1,
			explanation: "A good hash function spreads keys across buckets so most lookups inspect a constant number of entries.",
		},
		{
			prompt:      "What is a hash collision?",
			options:     [quiz.OptionCount]string{"A key with no hash value", "A full table", "Two keys hashing to the same bucket", "Two tables sharing memory"},
			correct:     2,
			explanation: "Collisions are expected; chaining or open addressing resolves them.",
		},
		{
			prompt:      "Why does a hash table resize when its load factor grows?",
			options:     [quiz.OptionCount]string{"To keep bucket chains short and lookups fast", "To free memory", "To re-sort the keys", "To prevent collisions entirely"},
			correct:     0,
			explanation: "More buckets per key keeps the expected chain length constant; collisions can never be fully prevented.",
		},
	},
	"sorting": {
		{
			prompt:      "What is the average time complexity of quicksort?",
			options:     [quiz.OptionCount]string{"O(n^2)", "O(n log n)", "O(n)", "O(log n)"},
			correct:     1,
			explanation: "Random pivots split the input roughly in half, giving log n levels of O(n) partitioning.",
		},
		{
			prompt:      "A sorting algorithm is stable when it:",
			options:     [quiz.OptionCount]string{"Never exceeds O(n log n)", "Uses no extra memory", "Always picks the middle pivot", "Preserves the relative order of equal elements"},
			correct:     3,
			explanation: "Stability matters when records are sorted by one key after another.",
		},
		{
			prompt:      "Which algorithm sorts in O(n^2) worst case but O(n) on nearly-sorted input?",
			options:     [quiz.OptionCount]string{"Insertion sort", "Merge sort", "Heap sort", "Selection sort"},
			correct:     0,
			explanation: "Insertion sort shifts each element only past its out-of-order neighbors, which is cheap when few exist.",
		},
	},
	"searching": {
		{
			prompt:      "Binary search requires the input to be:",
			options:     [quiz.OptionCount]string{"Distinct", "Non-negative", "Sorted", "A power of two in length"},
			correct:     2,
			explanation: "The halving step relies on knowing which side of the midpoint the target must be on.",
		},
		{
			prompt:      "How many comparisons does binary search need for n = 1,000,000 elements, roughly?",
			options:     [quiz.OptionCount]string{"1000", "500000", "100", "20"},
			correct:     3,
			explanation: "log2 of one million is about 20; each comparison halves the remaining range.",
		},
		{
			prompt:      "Linear search is preferable to binary search when:",
			options:     [quiz.OptionCount]string{"The data is huge and sorted", "The target is near the middle", "The data is small or unsorted", "Memory is plentiful"},
			correct:     2,
			explanation: "Sorting first costs O(n log n), which only pays off over repeated searches.",
		},
	},
	"trees": {
		{
			prompt:      "In a binary search tree, the left subtree of a node contains:",
			options:     [quiz.OptionCount]string{"Keys larger than the node's key", "Keys smaller than the node's key", "Exactly one node", "Only leaf nodes"},
			correct:     1,
			explanation: "The BST ordering invariant puts smaller keys left and larger keys right, enabling O(height) search.",
		},
		{
			prompt:      "Which traversal of a BST visits keys in sorted order?",
			options:     [quiz.OptionCount]string{"In-order", "Pre-order", "Post-order", "Level-order"},
			correct:     0,
			explanation: "In-order recurses left, visits the node, then recurses right, which matches the key ordering.",
		},
		{
			prompt:      "The height of a balanced binary tree with n nodes is:",
			options:     [quiz.OptionCount]string{"O(n)", "O(sqrt n)", "O(log n)", "O(1)"},
			correct:     2,
			explanation: "Each level roughly doubles the node count, so n nodes fit in about log2(n) levels.",
		},
	},
	"graphs": {
		{
			prompt:      "Which representation is most space-efficient for a sparse graph?",
			options:     [quiz.OptionCount]string{"Adjacency list", "Adjacency matrix", "Edge matrix", "Distance table"},
			correct:     0,
			explanation: "An adjacency list stores only existing edges; a matrix always uses V^2 cells.",
		},
		{
			prompt:      "BFS from a node in an unweighted graph finds:",
			options:     [quiz.OptionCount]string{"A minimum spanning tree", "All cycles", "A topological order", "Shortest paths by edge count"},
			correct:     3,
			explanation: "BFS explores nodes in increasing distance, so the first visit to a node uses a fewest-edges path.",
		},
		{
			prompt:      "A directed graph can be topologically ordered exactly when it:",
			options:     [quiz.OptionCount]string{"Is connected", "Has no cycles", "Has one source node", "Has no parallel edges"},
			correct:     1,
			explanation: "A cycle makes some node require itself earlier in the order, which is impossible.",
		},
	},
	"dynamic-programming": {
		{
			prompt:      "Dynamic programming applies when a problem has:",
			options:     [quiz.OptionCount]string{"Overlapping subproblems and optimal substructure", "Sorted input", "No recursion", "Independent subproblems only"},
			correct:     0,
			explanation: "Memoizing shared subproblem results only helps when subproblems repeat and combine optimally.",
		},
		{
			prompt:      "Memoized fib(n) runs in:",
			options:     [quiz.OptionCount]string{"O(2^n)", "O(n)", "O(n^2)", "O(log n)"},
			correct:     1,
			explanation: "Each of the n subproblems is computed once and then served from the cache.",
		},
		{
			prompt:      "Bottom-up DP differs from memoization in that it:",
			options:     [quiz.OptionCount]string{"Avoids storing results", "Requires recursion", "Fills the table iteratively from base cases", "Only works on graphs"},
			correct:     2,
			explanation: "Tabulation computes subproblems in dependency order with a loop instead of recursive calls.",
		},
	},
}
