package astar

import (
	"container/heap"

	"github.com/pdrpinto/gridastar/internal"
)

// stepper holds the state of one search. Search drives it one expansion at a
// time so that cancellation and the expansion cap are checked between pops.
type stepper[NodeType comparable] struct {
	graph     Graph[NodeType]
	start     NodeType
	goal      NodeType
	heuristic Heuristic[NodeType]

	openSet    *PriorityQueue[NodeType]
	openSetMap map[NodeType]*PriorityQueueItem[NodeType]
	closedSet  map[NodeType]bool
	cameFrom   map[NodeType]NodeType
	gScore     map[NodeType]int

	expandedNodes int
	done          bool
	found         bool
}

func newStepper[NodeType comparable](
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	heuristic Heuristic[NodeType],
) *stepper[NodeType] {
	var less func(a, b NodeType) bool
	if ordering, ok := graph.(Ordering[NodeType]); ok {
		less = ordering.Less
	}

	s := &stepper[NodeType]{
		graph:      graph,
		start:      startNode,
		goal:       goalNode,
		heuristic:  heuristic,
		openSet:    newPriorityQueue(less),
		openSetMap: make(map[NodeType]*PriorityQueueItem[NodeType]),
		closedSet:  make(map[NodeType]bool),
		cameFrom:   make(map[NodeType]NodeType),
		gScore:     map[NodeType]int{startNode: 0},
	}

	heap.Init(s.openSet)
	startItem := &PriorityQueueItem[NodeType]{Node: startNode, GScore: 0, FCost: heuristic(startNode, goalNode)}
	heap.Push(s.openSet, startItem)
	s.openSetMap[startNode] = startItem

	return s
}

// step pops the best frontier entry and relaxes its neighbors. It reports
// whether the search has finished, either at the goal or with an empty
// frontier.
func (s *stepper[NodeType]) step() bool {
	if s.done {
		return true
	}
	if s.openSet.Len() == 0 {
		s.done = true
		return true
	}

	currentItem := heap.Pop(s.openSet).(*PriorityQueueItem[NodeType])
	current := currentItem.Node
	delete(s.openSetMap, current)

	// Stale entry for a settled node.
	if s.closedSet[current] {
		return false
	}
	s.expandedNodes++

	if current == s.goal {
		s.done = true
		s.found = true
		return true
	}
	s.closedSet[current] = true

	for _, nb := range s.graph.Neighbors(current) {
		if s.closedSet[nb.ID] {
			continue
		}
		tentativeG := currentItem.GScore + nb.Cost
		if gPrev, ok := s.gScore[nb.ID]; ok && tentativeG >= gPrev {
			continue
		}
		s.gScore[nb.ID] = tentativeG
		s.cameFrom[nb.ID] = current
		f := tentativeG + s.heuristic(nb.ID, s.goal)

		if it, ok := s.openSetMap[nb.ID]; ok {
			it.GScore = tentativeG
			it.FCost = f
			heap.Fix(s.openSet, it.IndexInQueue)
			continue
		}
		it := &PriorityQueueItem[NodeType]{Node: nb.ID, GScore: tentativeG, FCost: f}
		heap.Push(s.openSet, it)
		s.openSetMap[nb.ID] = it
	}
	return false
}

func (s *stepper[NodeType]) result() Result[NodeType] {
	if !s.found {
		return Result[NodeType]{ExpandedNodes: s.expandedNodes}
	}
	return Result[NodeType]{
		Path:          internal.ReconstructPath(s.cameFrom, s.goal, s.start),
		TotalCost:     s.gScore[s.goal],
		ExpandedNodes: s.expandedNodes,
		Found:         true,
	}
}
