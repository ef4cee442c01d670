package material

import "context"

// Task is one in-flight material load. The load runs on its own goroutine;
// callers observe completion through Done and read the outcome with Result.
type Task struct {
	id     string
	cancel context.CancelFunc
	done   chan struct{}

	mat *Material
	err error
}

// Start begins loading id with l. The load stops early when ctx is cancelled
// or Cancel is called.
func Start(ctx context.Context, l Loader, id string) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{id: id, cancel: cancel, done: make(chan struct{})}
	go func() {
		defer cancel()
		m, err := l.Load(ctx, id)
		if err == nil && m == nil {
			err = ErrNoMaterial
		}
		t.mat, t.err = m, err
		close(t.done)
	}()
	return t
}

// ID returns the material id being loaded.
func (t *Task) ID() string { return t.id }

// Done is closed once the load has finished, successfully or not.
func (t *Task) Done() <-chan struct{} { return t.done }

// Result returns the outcome. It must only be called after Done is closed.
func (t *Task) Result() (*Material, error) {
	return t.mat, t.err
}

// Wait blocks until the load finishes or ctx is done.
func (t *Task) Wait(ctx context.Context) (*Material, error) {
	select {
	case <-t.done:
		return t.mat, t.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Cancel asks the load to stop. The task still completes; a loader that
// honors its context finishes with context.Canceled.
func (t *Task) Cancel() {
	t.cancel()
}
