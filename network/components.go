// SPDX-License-Identifier: MIT

package network

// Components returns the connected components of t as lists of gene indices.
//
// Components are discovered by breadth-first search seeded at the smallest
// unvisited index, so the outer order is by smallest member and each inner
// list is in BFS visit order (neighbors ascending). Isolated genes form
// singleton components.
//
// Complexity: O(G + E) time, O(G) extra space.
func (t *Topology) Components() [][]int {
	w := walker{
		t:       t,
		visited: make([]bool, len(t.genes)),
		queue:   make([]int, 0, len(t.genes)),
	}
	var comps [][]int
	for s := 0; s < len(t.genes); s++ {
		if w.visited[s] {
			continue
		}
		comps = append(comps, w.component(s))
	}

	return comps
}

// walker holds BFS state shared across component sweeps so the queue is
// allocated once per Components call.
type walker struct {
	t       *Topology
	visited []bool
	queue   []int
}

// component runs one BFS from start and returns the visit order.
func (w *walker) component(start int) []int {
	w.queue = w.queue[:0]
	w.visited[start] = true
	w.queue = append(w.queue, start)
	for head := 0; head < len(w.queue); head++ {
		u := w.queue[head]
		for _, v := range w.t.colIdx[w.t.rowPtr[u]:w.t.rowPtr[u+1]] {
			if w.visited[v] {
				continue
			}
			w.visited[v] = true
			w.queue = append(w.queue, v)
		}
	}
	out := make([]int, len(w.queue))
	copy(out, w.queue)

	return out
}
