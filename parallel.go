package groebner

import (
	"context"
	"runtime"
	"sync"

	"github.com/pkg/errors"
)

// progressEvery is the per-worker throttle of progress reporting in the
// parallel backend.
const progressEvery = 1000

// runParallel is the worker-pool main loop.
//
// One writer at a time but many readers is enforced by a reader-writer lock
// over the basis state; the pair heap carries its own mutex.
// A worker pops a pair under the write lock, clones the sorted view into a
// snapshot under the read lock, reduces without holding any lock, and before
// publishing re-checks the elements appended by other workers in the
// meantime, looping with a fresh snapshot until no further reduction applies.
func (e *engine[K]) runParallel(ctx context.Context, threads int) error {
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}

	var (
		mu         sync.RWMutex
		qmu        sync.Mutex
		progressMu sync.Mutex
	)
	cond := sync.NewCond(&mu)
	inflight := 0
	cancelled := false

	// Wake waiting workers when cancellation arrives.
	watcherDone := make(chan struct{})
	defer close(watcherDone)
	go func() {
		select {
		case <-ctx.Done():
		case <-watcherDone:
		}
		mu.Lock()
		cancelled = true
		cond.Broadcast()
		mu.Unlock()
	}()

	pop := func() (pair, bool) {
		qmu.Lock()
		defer qmu.Unlock()
		return e.queue.pop(e.alive)
	}
	push := func(i, j int) {
		qmu.Lock()
		defer qmu.Unlock()
		e.pushPair(i, j)
	}
	queueLen := func() int {
		qmu.Lock()
		defer qmu.Unlock()
		return e.queue.len()
	}

	worker := func() error {
		loops := 0
		for {
			mu.Lock()
			var p pair
			for {
				if cancelled || ctx.Err() != nil {
					mu.Unlock()
					if err := ctx.Err(); err != nil {
						return errors.Wrap(err, "groebner cancelled")
					}
					return errors.Wrap(context.Canceled, "groebner cancelled")
				}
				var ok bool
				if p, ok = pop(); ok {
					break
				}
				if inflight == 0 {
					mu.Unlock()
					return nil
				}
				// Another worker may still publish new pairs.
				cond.Wait()
			}
			e.stats.Loops++
			loops++
			if e.progress != nil && loops%progressEvery == progressEvery-1 {
				total, size, qlen := e.stats.Loops, e.live, queueLen()
				progressMu.Lock()
				e.progress(total, size, qlen)
				progressMu.Unlock()
			}

			// The product criterion is evaluated under the writer-held
			// view, so queue membership is consistent with the decision.
			if e.productCriterion(p.i, p.j) {
				e.stats.Saved++
				mu.Unlock()
				continue
			}
			inflight++
			a, b := e.result[p.i], e.result[p.j]
			var trI, trJ []*Polynomial[K]
			if e.trans != nil {
				trI, trJ = e.trans[p.i], e.trans[p.j]
			}
			mu.Unlock()

			mu.RLock()
			snap := e.view.clone()
			snapLen := len(e.result)
			mu.RUnlock()

			// Compute the S-polynomial and reduce it against the snapshot
			// without holding any lock.
			// Elements are never mutated after publication in this backend,
			// so reading them outside the lock is safe.
			s, tr := e.sPairOf(a, b, trI, trJ)
			quot := e.newQuotients()
			st := snap.normalForm(s, quot)

			mu.Lock()
			for st != zeroed {
				// Other workers may have appended elements since the
				// snapshot was taken; checking whether any of them cancels a
				// term of s detects whether the reduction is stale.
				stale := false
				for l := snapLen; l < len(e.result); l++ {
					if e.result[l] == nil {
						continue
					}
					if canReduceAny(s, e.result[l]) {
						stale = true
						break
					}
				}
				if !stale {
					break
				}
				snap = e.view.clone()
				snapLen = len(e.result)
				mu.Unlock()
				st = snap.normalForm(s, quot)
				mu.Lock()
			}

			if st == zeroed || s.IsZero() {
				e.stats.ReductionsToZero++
			} else {
				six := e.append(s, tr)
				e.applyQuotients(six, quot)
				e.commit(six)
				for l := range e.result {
					if l == six || e.result[l] == nil {
						continue
					}
					push(l, six)
				}
			}
			inflight--
			cond.Broadcast()
			mu.Unlock()
		}
	}

	var wg sync.WaitGroup
	errs := make([]error, threads)
	for t := range threads {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[t] = worker()
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// sPairOf forms the S-polynomial of a and b, together with its provisional
// transformation row, reading only the given immutable operands.
func (e *engine[K]) sPairOf(a, b *Vector[K], trA, trB []*Polynomial[K]) (*Vector[K], []*Polynomial[K]) {
	ma, mb := LCMMultipliers(a.LeadingTerm(), b.LeadingTerm())

	s := e.zeroVector()
	s.addScaled(1, ma.Coefficient, ma.Monomial, a)
	s.addScaled(-1, mb.Coefficient, mb.Monomial, b)

	var tr []*Polynomial[K]
	if trA != nil {
		tr = make([]*Polynomial[K], len(trA))
		for col := range tr {
			tr[col] = e.newPoly()
			tr[col].addScaled(1, ma.Coefficient, ma.Monomial, trA[col])
			tr[col].addScaled(-1, mb.Coefficient, mb.Monomial, trB[col])
		}
	}
	return s, tr
}
