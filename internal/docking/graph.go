package docking

// Edge is a dependency: when From moves, To moves with it.
type Edge struct {
	From WindowID
	To   WindowID
}

// Rebuild discards the dependency graph and recomputes it from the current
// anchor geometry. It must be called with no session open.
func (e *Engine) Rebuild() {
	e.requireIdle("Rebuild")
	e.rebuild()
}

// Dependencies returns the windows hanging directly from id, in
// registration order. A stale graph is rebuilt first when no session is
// open.
func (e *Engine) Dependencies(id WindowID) []WindowID {
	e.refresh()
	return e.ordered(e.deps[id])
}

// Edges returns every dependency edge, ordered by source then target
// registration order.
func (e *Engine) Edges() []Edge {
	e.refresh()
	var edges []Edge
	for _, from := range e.order {
		for _, to := range e.ordered(e.deps[from]) {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	return edges
}

func (e *Engine) refresh() {
	if e.stale && e.state == StateIdle {
		e.rebuild()
	}
}

// rebuild tests every unordered pair of registered windows and every
// anchor pair of their active layouts, in both directions.
func (e *Engine) rebuild() {
	deps := make(map[WindowID]map[WindowID]struct{})
	count := 0
	for i, id1 := range e.order {
		anchors1 := e.windows[id1].Anchors()
		for _, id2 := range e.order[i+1:] {
			anchors2 := e.windows[id2].Anchors()
			for _, a1 := range anchors1 {
				for _, a2 := range anchors2 {
					if a1.IsHanging(a2) && addEdge(deps, id1, id2) {
						count++
					}
					if a2.IsHanging(a1) && addEdge(deps, id2, id1) {
						count++
					}
				}
			}
		}
	}
	e.deps = deps
	e.stale = false
	e.logger.Debug("dependency graph rebuilt", "windows", len(e.order), "edges", count)
}

func addEdge(deps map[WindowID]map[WindowID]struct{}, from, to WindowID) bool {
	set, ok := deps[from]
	if !ok {
		set = make(map[WindowID]struct{})
		deps[from] = set
	}
	if _, ok := set[to]; ok {
		return false
	}
	set[to] = struct{}{}
	return true
}

// closure adds id and everything reachable from it to set. Windows already
// in set are not revisited, so cycles terminate.
func (e *Engine) closure(set map[WindowID]struct{}, id WindowID) {
	if _, ok := set[id]; ok {
		return
	}
	set[id] = struct{}{}
	for _, dep := range e.ordered(e.deps[id]) {
		e.closure(set, dep)
	}
}
