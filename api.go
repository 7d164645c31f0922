package astar

import (
	"context"
	"runtime"
)

// Graph is generic over node type N.
// N must be comparable so it can be used in maps.
type Graph[NodeType comparable] interface {
	Neighbors(node NodeType) []Neighbor[NodeType]
}

// Ordering is implemented by graphs whose nodes have a total order. The
// frontier uses it to break ties between entries with equal f-cost; without
// it ties go to the entry discovered first.
type Ordering[NodeType comparable] interface {
	Less(a, b NodeType) bool
}

// Neighbor represents a reachable node with a cost.
type Neighbor[NodeType comparable] struct {
	ID   NodeType
	Cost int
}

// Heuristic returns the estimated cost from node a to node b
type Heuristic[NodeType comparable] func(from NodeType, to NodeType) int

// Result contains the outcome of a search. Found is false when the frontier
// was exhausted without reaching the goal; that is a normal outcome and comes
// with a nil error.
type Result[NodeType comparable] struct {
	Path          []NodeType
	TotalCost     int
	ExpandedNodes int
	Found         bool
}

// Steps returns the number of moves in the path, or -1 if none was found.
func (r Result[NodeType]) Steps() int {
	if !r.Found {
		return -1
	}
	return len(r.Path) - 1
}

// Options defines parameters for the search.
type Options struct {
	NumberOfWorkers int
	MaxExpansions   int
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkers specifies how many goroutines FindPaths runs searches on.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithMaxExpansions caps the number of nodes a single search may expand.
// Zero means no cap.
func WithMaxExpansions(maxExpansions int) Option {
	return func(options *Options) { options.MaxExpansions = maxExpansions }
}

func applyOptions(options []Option) Options {
	searchOptions := Options{
		NumberOfWorkers: runtime.NumCPU(),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.NumberOfWorkers < 1 {
		searchOptions.NumberOfWorkers = 1
	}
	return searchOptions
}

// Search runs A* from startNode to goalNode. It runs on the calling goroutine
// and keeps no state between calls.
//
// A nil error with Found == false means no path exists. ErrBudgetExceeded and
// ctx.Err() mean the search stopped before it could decide.
func Search[NodeType comparable](
	contextObject context.Context,
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	heuristic Heuristic[NodeType],
	options ...Option,
) (Result[NodeType], error) {
	searchOptions := applyOptions(options)
	search := newStepper(graph, startNode, goalNode, heuristic)

	for {
		select {
		case <-contextObject.Done():
			return Result[NodeType]{ExpandedNodes: search.expandedNodes}, contextObject.Err()
		default:
		}

		if searchOptions.MaxExpansions > 0 &&
			search.expandedNodes >= searchOptions.MaxExpansions &&
			search.openSet.Len() > 0 {
			return Result[NodeType]{ExpandedNodes: search.expandedNodes}, ErrBudgetExceeded
		}

		if done := search.step(); done {
			return search.result(), nil
		}
	}
}
