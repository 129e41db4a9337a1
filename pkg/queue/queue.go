package queue

import (
	"context"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/haus/pkg/filesystem"
	"github.com/arthur-debert/haus/pkg/logging"
	"github.com/arthur-debert/haus/pkg/users"
)

// Queue holds operations grouped by user
type Queue struct {
	mu      sync.Mutex
	order   []string
	batches map[string][]Operation
}

// New returns an empty queue
func New() *Queue {
	return &Queue{batches: make(map[string][]Operation)}
}

// AddLink queues a symlink at target pointing to source
func (q *Queue) AddLink(u users.User, source, target string) {
	q.add(Operation{Kind: Link, User: u, Source: source, Target: target})
}

// AddCopy queues copying source to target
func (q *Queue) AddCopy(u users.User, source, target string) {
	q.add(Operation{Kind: Copy, User: u, Source: source, Target: target})
}

// AddRemoval queues removing the symlink at target
func (q *Queue) AddRemoval(u users.User, target string) {
	q.add(Operation{Kind: Removal, User: u, Target: target})
}

func (q *Queue) add(op Operation) {
	q.mu.Lock()
	defer q.mu.Unlock()

	key := op.User.Name
	if _, ok := q.batches[key]; !ok {
		q.order = append(q.order, key)
	}
	q.batches[key] = append(q.batches[key], op)
}

// Len returns the number of queued operations
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := 0
	for _, batch := range q.batches {
		n += len(batch)
	}
	return n
}

// Operations returns the queued operations, grouped by user in the order
// users were first seen
func (q *Queue) Operations() []Operation {
	q.mu.Lock()
	defer q.mu.Unlock()

	var ops []Operation
	for _, key := range q.order {
		ops = append(ops, q.batches[key]...)
	}
	return ops
}

// ExecuteOptions controls how a queue is applied
type ExecuteOptions struct {
	FS    filesystem.FS
	Force bool
	Noop  bool
	// Chown hands copied files to the target user
	Chown bool
	// Log receives one line per operation; may be nil
	Log func(format string, args ...interface{})
}

// Execute applies every queued operation. Batches for different users run
// concurrently; the first failing batch cancels the others. Results are
// returned in the same order as Operations, up to the point each batch
// stopped. Log lines are buffered per batch and replayed in user order on
// the calling goroutine, so Log need not be safe for concurrent use.
func (q *Queue) Execute(ctx context.Context, opts ExecuteOptions) ([]Result, error) {
	q.mu.Lock()
	order := append([]string(nil), q.order...)
	batches := make([][]Operation, len(order))
	for i, key := range order {
		batches[i] = append([]Operation(nil), q.batches[key]...)
	}
	q.mu.Unlock()

	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	log := opts.Log
	if log == nil {
		log = func(string, ...interface{}) {}
	}

	logger := logging.GetLogger("queue").With().
		Int("users", len(order)).
		Bool("force", opts.Force).
		Bool("noop", opts.Noop).
		Logger()
	logger.Debug().Msg("Executing queue")

	results := make([][]Result, len(batches))
	lines := make([][]logLine, len(batches))
	g, ctx := errgroup.WithContext(ctx)
	for i, batch := range batches {
		i, batch := i, batch
		g.Go(func() error {
			batchOpts := opts
			batchOpts.Log = func(format string, args ...interface{}) {
				lines[i] = append(lines[i], logLine{format: format, args: args})
			}
			e := &executor{opts: batchOpts, apply: newApplier(ctx, opts.FS)}
			for _, op := range batch {
				if err := ctx.Err(); err != nil {
					return err
				}
				result := e.run(op)
				results[i] = append(results[i], result)
				if result.Error != nil && result.Status == StatusFailed {
					return result.Error
				}
			}
			return nil
		})
	}
	err := g.Wait()

	var all []Result
	for i, r := range results {
		for _, line := range lines[i] {
			log(line.format, line.args...)
		}
		all = append(all, r...)
	}

	if err != nil {
		logger.Error().Err(err).Msg("Queue execution failed")
	}
	return all, err
}

type logLine struct {
	format string
	args   []interface{}
}

func isNotExist(err error) bool {
	return os.IsNotExist(err)
}
