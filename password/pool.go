package password

import (
	"context"
	"sync"

	"github.com/usguri/almoxarifado-go/apperror"
)

// Default pool sizing; overridable through config.
const (
	DefaultWorkers    = 4
	DefaultQueueDepth = 64
)

// job is one unit of hashing work. The result channel is buffered so a worker
// can always deliver and move on, even when the requester has given up.
type job struct {
	run    func() jobResult
	result chan jobResult
}

type jobResult struct {
	hash string
	ok   bool
	err  error
}

// Pool runs password hashing and verification on a fixed set of worker
// goroutines behind a bounded queue. When every worker is busy and the queue
// is full, submission blocks (backpressure) until a slot frees or the caller's
// context is cancelled; work is never spawned unboundedly.
type Pool struct {
	hasher Hasher
	jobs   chan job
	wg     sync.WaitGroup
}

// NewPool starts workers goroutines consuming a queue of queueDepth pending
// jobs. Non-positive arguments fall back to the defaults.
func NewPool(workers, queueDepth int) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if queueDepth <= 0 {
		queueDepth = DefaultQueueDepth
	}

	p := &Pool{
		jobs: make(chan job, queueDepth),
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				j.result <- j.run()
			}
		}()
	}
	return p
}

// Hash derives an argon2id hash of password on a pool worker.
func (p *Pool) Hash(ctx context.Context, password string) (string, error) {
	res, err := p.submit(ctx, func() jobResult {
		hash, err := p.hasher.Hash(password)
		return jobResult{hash: hash, err: err}
	})
	if err != nil {
		return "", err
	}
	return res.hash, res.err
}

// Verify checks password against encodedHash on a pool worker. Mismatch is
// (false, nil); a corrupt stored hash is an error.
func (p *Pool) Verify(ctx context.Context, password, encodedHash string) (bool, error) {
	res, err := p.submit(ctx, func() jobResult {
		ok, err := p.hasher.Verify(password, encodedHash)
		return jobResult{ok: ok, err: err}
	})
	if err != nil {
		return false, err
	}
	return res.ok, res.err
}

// submit enqueues work and waits for its result. Cancellation is honored both
// while queueing and while waiting; an abandoned job still completes on its
// worker but its buffered result channel means no worker ever blocks on a
// caller that went away.
func (p *Pool) submit(ctx context.Context, run func() jobResult) (jobResult, error) {
	j := job{run: run, result: make(chan jobResult, 1)}

	select {
	case p.jobs <- j:
	case <-ctx.Done():
		return jobResult{}, apperror.NewInternalError("hashing queue unavailable", ctx.Err())
	}

	select {
	case res := <-j.result:
		return res, nil
	case <-ctx.Done():
		return jobResult{}, apperror.NewInternalError("hashing cancelled", ctx.Err())
	}
}

// Close stops accepting work and waits for in-flight jobs to finish. Call only
// after request traffic has drained; submitting after Close panics.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
}
