package pipeline

import (
	"sort"
)

// Edge declares that To runs after From.
type Edge struct {
	From string
	To   string
}

// Pipeline is an immutable, validated DAG of stages. It is built once at
// configuration time and safe for concurrent runs: each run owns its own
// state and history.
type Pipeline struct {
	stages map[string]*Stage
	names  []string // declaration order
	order  []string // topological execution order

	// inputs are the slots that no stage provides; the caller must supply
	// them in the initial state.
	inputs []string
}

// New builds and validates a Pipeline.
//
// Validation rejects empty pipelines, duplicate or incomplete stages, edges
// referencing unknown stages, self-loops, duplicate edges, slot wiring where
// a stage's needed slot is not provided by an ancestor or a pipeline input,
// and any cycle (as *CyclicPipelineError).
func New(stages []*Stage, edges []Edge) (*Pipeline, error) {
	if len(stages) == 0 {
		return nil, invalidf("no stages")
	}

	byName := make(map[string]*Stage, len(stages))
	names := make([]string, 0, len(stages))
	provided := make(map[string]string) // slot -> providing stage
	for _, s := range stages {
		if err := s.validate(); err != nil {
			return nil, err
		}
		if _, exists := byName[s.Name]; exists {
			return nil, invalidf("duplicate stage name: %q", s.Name)
		}
		if prev, exists := provided[s.Provides]; exists {
			return nil, invalidf("slot %q provided by both %q and %q", s.Provides, prev, s.Name)
		}
		byName[s.Name] = s
		names = append(names, s.Name)
		provided[s.Provides] = s.Name
	}

	nameToIdx := make(map[string]int, len(names))
	for i, n := range names {
		nameToIdx[n] = i
	}

	type edgeIdx struct{ from, to int }
	seen := make(map[edgeIdx]struct{}, len(edges))
	outgoing := make([][]int, len(names))
	incoming := make([][]int, len(names))
	indeg := make([]int, len(names))
	for _, e := range edges {
		fi, okFrom := nameToIdx[e.From]
		ti, okTo := nameToIdx[e.To]
		if !okFrom {
			return nil, invalidf("edge references unknown stage (from): %q", e.From)
		}
		if !okTo {
			return nil, invalidf("edge references unknown stage (to): %q", e.To)
		}
		if fi == ti {
			return nil, invalidf("self-loop: %q -> %q", e.From, e.To)
		}
		pair := edgeIdx{from: fi, to: ti}
		if _, dup := seen[pair]; dup {
			return nil, invalidf("duplicate edge: %q -> %q", e.From, e.To)
		}
		seen[pair] = struct{}{}
		outgoing[fi] = append(outgoing[fi], ti)
		incoming[ti] = append(incoming[ti], fi)
		indeg[ti]++
	}
	for i := range outgoing {
		sort.Ints(outgoing[i])
	}

	order := topoOrder(outgoing, indeg)
	if len(order) != len(names) {
		return nil, &CyclicPipelineError{Cycle: findCycle(names, outgoing)}
	}

	// Slot wiring: a stage's needed slot must come from an ancestor or be a
	// pipeline input supplied by the caller.
	reachable := make([]map[string]bool, len(names)) // slots provided by ancestors
	for _, u := range order {
		slots := make(map[string]bool)
		for _, p := range incoming[u] {
			slots[byName[names[p]].Provides] = true
			for s := range reachable[p] {
				slots[s] = true
			}
		}
		reachable[u] = slots
	}

	inputSet := make(map[string]bool)
	for _, u := range order {
		stage := byName[names[u]]
		for _, slot := range stage.Needs {
			if reachable[u][slot] {
				continue
			}
			if _, providedLater := provided[slot]; providedLater {
				return nil, invalidf("stage %q needs slot %q provided by %q, but no edge orders them",
					stage.Name, slot, provided[slot])
			}
			inputSet[slot] = true
		}
	}
	inputs := make([]string, 0, len(inputSet))
	for slot := range inputSet {
		inputs = append(inputs, slot)
	}
	sort.Strings(inputs)

	execOrder := make([]string, len(order))
	for i, idx := range order {
		execOrder[i] = names[idx]
	}

	return &Pipeline{
		stages: byName,
		names:  names,
		order:  execOrder,
		inputs: inputs,
	}, nil
}

// Order returns the topological execution order of stage names.
func (p *Pipeline) Order() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Inputs returns the slots the caller must supply in the initial state.
func (p *Pipeline) Inputs() []string {
	out := make([]string, len(p.inputs))
	copy(out, p.inputs)
	return out
}

// Stage returns a stage by name.
func (p *Pipeline) Stage(name string) (*Stage, bool) {
	s, ok := p.stages[name]
	return s, ok
}

// topoOrder runs Kahn's algorithm with a deterministic smallest-index-first
// ready set. A short result signals a cycle.
func topoOrder(outgoing [][]int, indegIn []int) []int {
	indeg := make([]int, len(indegIn))
	copy(indeg, indegIn)

	var ready []int
	for i := range indeg {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}
	sort.Ints(ready)

	out := make([]int, 0, len(indeg))
	for len(ready) > 0 {
		n := ready[0]
		ready = ready[1:]
		out = append(out, n)
		for _, m := range outgoing[n] {
			indeg[m]--
			if indeg[m] == 0 {
				ready = append(ready, m)
				sort.Ints(ready)
			}
		}
	}
	return out
}

// findCycle extracts one cycle path via DFS for error reporting.
func findCycle(names []string, outgoing [][]int) []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	color := make([]int, len(names))
	parent := make([]int, len(names))
	for i := range parent {
		parent[i] = -1
	}

	var cycle []int
	var dfs func(u int) bool
	dfs = func(u int) bool {
		color[u] = gray
		for _, v := range outgoing[u] {
			if color[v] == white {
				parent[v] = u
				if dfs(v) {
					return true
				}
				continue
			}
			if color[v] == gray {
				cycle = append(cycle, v)
				cur := u
				for cur != -1 && cur != v {
					cycle = append(cycle, cur)
					cur = parent[cur]
				}
				cycle = append(cycle, v)
				return true
			}
		}
		color[u] = black
		return false
	}

	for i := 0; i < len(names); i++ {
		if color[i] == white && dfs(i) {
			break
		}
	}

	out := make([]string, 0, len(cycle))
	for i := len(cycle) - 1; i >= 0; i-- {
		out = append(out, names[cycle[i]])
	}
	return out
}
