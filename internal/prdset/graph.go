package prdset

// findCycle runs a depth-first search over a directed graph given as node ids
// plus dependsOn edges, keeping an explicit recursion stack; a node revisited
// while still on the stack is a cycle. It returns the cycle path in edge order
// (first and last element equal), or nil when the graph is acyclic.
//
// The same routine serves both graph levels: PRD ids with PRD dependsOn edges,
// and phase ids within one PRD with phase dependsOn edges.
func findCycle(nodes []string, edges map[string][]string) []string {
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n] = true
	}

	visited := make(map[string]bool, len(nodes))
	onStack := make(map[string]bool, len(nodes))
	var stack []string
	var cycle []string

	var visit func(node string) bool
	visit = func(node string) bool {
		visited[node] = true
		onStack[node] = true
		stack = append(stack, node)

		for _, dep := range edges[node] {
			if !known[dep] {
				// Dangling reference; reported by reference validation.
				continue
			}
			if onStack[dep] {
				// Slice the stack from the first occurrence of dep and close
				// the loop.
				for i, n := range stack {
					if n == dep {
						cycle = append(append(cycle, stack[i:]...), dep)
						return true
					}
				}
			}
			if !visited[dep] && visit(dep) {
				return true
			}
		}

		stack = stack[:len(stack)-1]
		onStack[node] = false
		return false
	}

	for _, node := range nodes {
		if !visited[node] && visit(node) {
			return cycle
		}
	}
	return nil
}
