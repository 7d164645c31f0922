package astar

import (
	"context"
	"sync"
)

// Query is one start/goal pair for FindPaths.
type Query struct {
	Start Cell
	Goal  Cell
}

// QueryResult pairs a query with its outcome.
type QueryResult struct {
	Query  Query
	Result Result[Cell]
	Err    error
}

type queryTask struct {
	index int
	query Query
}

// FindPaths runs one FindPath per query on a pool of WithWorkers goroutines.
// Searches share nothing but the grid, which is read-only. Results come back
// in query order.
func FindPaths(contextObject context.Context, grid *Grid, queries []Query, options ...Option) []QueryResult {
	searchOptions := applyOptions(options)
	results := make([]QueryResult, len(queries))
	if len(queries) == 0 {
		return results
	}

	numberOfWorkers := min(searchOptions.NumberOfWorkers, len(queries))
	taskChannel := make(chan queryTask)

	var wg sync.WaitGroup
	for i := 0; i < numberOfWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskChannel {
				result, err := FindPath(contextObject, grid, task.query.Start, task.query.Goal, options...)
				results[task.index] = QueryResult{Query: task.query, Result: result, Err: err}
			}
		}()
	}

	for i, query := range queries {
		taskChannel <- queryTask{index: i, query: query}
	}
	close(taskChannel)
	wg.Wait()

	return results
}
