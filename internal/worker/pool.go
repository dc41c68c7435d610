package worker

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// JoinError is returned when any worker of a group fails. No partial
// results accompany it.
type JoinError struct {
	Partition int
	Err       error
}

func (e *JoinError) Error() string {
	return fmt.Sprintf("could not join threads: partition %d: %v", e.Partition, e.Err)
}

func (e *JoinError) Unwrap() error {
	return e.Err
}

// PanicError carries the value a worker panicked with
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("worker panicked: %v", e.Value)
}

// Group is a bounded task group: it runs at most size tasks at once, waits
// for every task and surfaces the first failure as a *JoinError.
type Group struct {
	eg  *errgroup.Group
	ctx context.Context
}

// NewGroup creates a group whose tasks receive a context that is cancelled
// once any task fails.
func NewGroup(ctx context.Context, size int) *Group {
	if size <= 0 {
		size = 1
	}

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(size)

	return &Group{
		eg:  eg,
		ctx: gctx,
	}
}

// Go starts task for the given partition. A panic inside task is recovered
// and reported like an error.
func (g *Group) Go(partition int, task func(ctx context.Context) error) {
	g.eg.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &JoinError{Partition: partition, Err: &PanicError{Value: r}}
			}
		}()

		if err := task(g.ctx); err != nil {
			return &JoinError{Partition: partition, Err: err}
		}
		return nil
	})
}

// Wait blocks until every started task has returned
func (g *Group) Wait() error {
	return g.eg.Wait()
}
