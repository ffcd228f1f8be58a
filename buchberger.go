package groebner

import (
	"context"
	"slices"

	"github.com/pkg/errors"
)

// Backend selects the scheduling strategy of the Buchberger engine.
type Backend int

const (
	// Sequential runs the engine on the calling goroutine.
	Sequential Backend = iota
	// Parallel runs the engine on a pool of worker goroutines.
	Parallel
)

// Stats holds counters describing a Buchberger run.
type Stats struct {
	// Loops is the number of pairs drawn from the pair queue.
	Loops int
	// Saved is the number of pairs discarded by the product criterion.
	Saved int
	// ReductionsToZero is the number of S-polynomials that reduced to zero.
	ReductionsToZero int
}

// Options configures the Buchberger engine.
// The zero value selects the sequential backend with no degree cap.
type Options struct {
	// MaxDegree caps the lcm degree of the pairs considered.
	// Zero or negative means no cap.
	MaxDegree int
	// Backend selects between the sequential and the parallel engine.
	Backend Backend
	// Threads is the worker count of the parallel backend.
	// Zero or negative means one worker per processor.
	Threads int
	// Progress, when non-nil, is called periodically with the number of
	// pairs processed so far, the current basis size, and the current pair
	// queue size.
	// The parallel backend throttles the calls.
	Progress func(loops, basisSize, queueSize int)
	// Stats, when non-nil, is filled with run counters on return.
	Stats *Stats
}

func (o *Options) maxDegree() int {
	if o == nil {
		return 0
	}
	return o.MaxDegree
}

// GroebnerBasis returns a Gröbner basis of the ideal generated by g.
// Zero generators are dropped; when none remain, the basis is empty.
// The ordering of the returned basis is unspecified; see [SortReduced].
func GroebnerBasis[K Ring[K]](ctx context.Context, g []*Polynomial[K], opts *Options) ([]*Polynomial[K], error) {
	basis, err := GroebnerBasisModule(ctx, wrapPolynomials(g), opts)
	if err != nil {
		return nil, err
	}
	return unwrapVectors(basis), nil
}

// GroebnerTransformation returns a Gröbner basis of the ideal generated by g,
// together with the transformation matrix expressing each basis element in
// terms of the generators:
//
//	basis[i] = matrix[i][0]*g[0] + matrix[i][1]*g[1] + ...
//
// Unlike [GroebnerBasis], it fails with [ErrEmptyInput] when no generator is
// nonzero.
func GroebnerTransformation[K Ring[K]](ctx context.Context, g []*Polynomial[K], opts *Options) ([]*Polynomial[K], [][]*Polynomial[K], error) {
	basis, matrix, err := GroebnerTransformationModule(ctx, wrapPolynomials(g), opts)
	if err != nil {
		return nil, nil, err
	}
	return unwrapVectors(basis), matrix, nil
}

// GroebnerBasisModule returns a Gröbner basis of the submodule generated by
// the module elements g.
func GroebnerBasisModule[K Ring[K]](ctx context.Context, g []*Vector[K], opts *Options) ([]*Vector[K], error) {
	e, err := newEngine(g, opts, false)
	if err != nil {
		return nil, err
	}
	if err := e.compute(ctx, opts); err != nil {
		return nil, err
	}
	return e.basis(), nil
}

// GroebnerTransformationModule returns a Gröbner basis of the submodule
// generated by g, together with the transformation matrix expressing each
// basis element in terms of the generators.
// It fails with [ErrEmptyInput] when no generator is nonzero.
func GroebnerTransformationModule[K Ring[K]](ctx context.Context, g []*Vector[K], opts *Options) ([]*Vector[K], [][]*Polynomial[K], error) {
	e, err := newEngine(g, opts, true)
	if err != nil {
		return nil, nil, err
	}
	if e.live == 0 {
		return nil, nil, errors.Wrap(ErrEmptyInput, "groebner transformation")
	}
	if err := e.compute(ctx, opts); err != nil {
		return nil, nil, err
	}
	return e.basis(), e.matrix(), nil
}

// SortReduced returns a copy of g sorted descending by leading term.
// The engine leaves the ordering of its result unspecified; callers who need
// a canonical ordering apply this utility.
func SortReduced[K Ring[K]](g []*Polynomial[K]) []*Polynomial[K] {
	g = slices.Clone(g)
	slices.SortFunc(g, func(x, y *Polynomial[K]) int {
		return -x.Order()(x.LeadingMonomial(), y.LeadingMonomial())
	})
	return g
}

// SortReducedModule returns a copy of g sorted descending by leading
// signature.
func SortReducedModule[K Ring[K]](g []*Vector[K]) []*Vector[K] {
	g = slices.Clone(g)
	slices.SortFunc(g, func(x, y *Vector[K]) int {
		return -compareSignature(x.Order(), x.Signature(), y.Signature())
	})
	return g
}

// Monic divides every polynomial in g by its leading coefficient, in place,
// wherever the coefficient ring supports that division exactly.
func Monic[K Ring[K]](g []*Polynomial[K]) {
	for _, p := range g {
		if p == nil || p.IsZero() {
			continue
		}
		lc := p.LeadingTerm().Coefficient
		one := lc.NewOne()
		inv, ok := one.NewZero().MaybeDiv(one, lc)
		if !ok {
			continue
		}
		p.MulScalar(inv, p)
	}
}

func wrapPolynomials[K Ring[K]](g []*Polynomial[K]) []*Vector[K] {
	vs := make([]*Vector[K], len(g))
	for i, p := range g {
		if p != nil {
			vs[i] = NewVector(p)
		}
	}
	return vs
}

func unwrapVectors[K Ring[K]](g []*Vector[K]) []*Polynomial[K] {
	ps := make([]*Polynomial[K], len(g))
	for i, v := range g {
		ps[i] = v.Row(0)
	}
	return ps
}

// A basisView is a sequence of module elements sorted ascending by leading
// signature, supporting divisor lookup by binary search.
// The engine maintains one over its live elements; the parallel backend hands
// immutable clones of it to workers as snapshots.
type basisView[K Ring[K]] struct {
	ring  K
	order Order
	sigs  []Signature
	elems []*Vector[K]
	// stables holds the stable index of each entry, used to key reduction
	// quotients.
	stables []int
}

func (v *basisView[K]) clone() *basisView[K] {
	return &basisView[K]{
		ring:    v.ring,
		order:   v.order,
		sigs:    slices.Clone(v.sigs),
		elems:   slices.Clone(v.elems),
		stables: slices.Clone(v.stables),
	}
}

func (v *basisView[K]) insert(sig Signature, el *Vector[K], stable int) {
	ix, _ := slices.BinarySearchFunc(v.sigs, sig, func(a, b Signature) int {
		return compareSignature(v.order, a, b)
	})
	v.sigs = slices.Insert(v.sigs, ix, sig)
	v.elems = slices.Insert(v.elems, ix, el)
	v.stables = slices.Insert(v.stables, ix, stable)
}

func (v *basisView[K]) removeStable(stable int) {
	ix := slices.Index(v.stables, stable)
	if ix < 0 {
		return
	}
	v.sigs = slices.Delete(v.sigs, ix, ix+1)
	v.elems = slices.Delete(v.elems, ix, ix+1)
	v.stables = slices.Delete(v.stables, ix, ix+1)
}

// reduceTermBy searches the view for an element whose leading signature
// divides the term t at the given row, and cancels t in f with the first one
// found.
// The search enumerates the divisors of the monomial of t and binary-searches
// each in the signature-sorted view, breaking as soon as a divisor is found.
func (v *basisView[K]) reduceTermBy(f *Vector[K], row int, t Term[K], quot map[int]*Polynomial[K]) bool {
	applied := false
	forEachDivisor(t.Monomial, func(d Monomial) bool {
		target := Signature{Row: row, Monomial: d}
		ix, found := slices.BinarySearchFunc(v.sigs, target, func(a, b Signature) int {
			return compareSignature(v.order, a, b)
		})
		if !found {
			return true
		}
		for k := ix; k < len(v.sigs); k++ {
			if compareSignature(v.order, v.sigs[k], target) != 0 {
				break
			}
			g := v.elems[k]
			q, ok := t.MaybeDiv(g.LeadingTerm())
			if !ok {
				continue
			}
			f.addScaled(-1, q.Coefficient, q.Monomial, g)
			if quot != nil {
				qp, ok := quot[v.stables[k]]
				if !ok {
					qp = NewPolynomial(v.ring, v.order)
					quot[v.stables[k]] = qp
				}
				qp.addTerm(1, q)
			}
			applied = true
			return false
		}
		return true
	})
	return applied
}

// reduceLead cancels the leading term of f against the view until no further
// cancellation applies.
func (v *basisView[K]) reduceLead(f *Vector[K], quot map[int]*Polynomial[K]) reduction {
	res := unchanged
	for !f.IsZero() {
		sig := f.Signature()
		lt := f.rows[sig.Row].LeadingTerm()
		if !v.reduceTermBy(f, sig.Row, lt, quot) {
			break
		}
		res = changed
	}
	if f.IsZero() {
		return zeroed
	}
	return res
}

// reduceFull cancels any term of f against the view until no further
// cancellation applies.
func (v *basisView[K]) reduceFull(f *Vector[K], quot map[int]*Polynomial[K]) reduction {
	res := unchanged
	for !f.IsZero() {
		progressed := false
	rows:
		for row := range f.rows {
			ms := make([]Monomial, 0, f.rows[row].Len())
			for _, w := range f.rows[row].Terms() {
				ms = append(ms, w)
			}
			for _, w := range ms {
				c, ok := f.rows[row].Coefficient(w)
				if !ok {
					continue
				}
				if v.reduceTermBy(f, row, Term[K]{Coefficient: c, Monomial: w}, quot) {
					progressed = true
					res = changed
					break rows
				}
			}
		}
		if !progressed {
			break
		}
	}
	if f.IsZero() {
		return zeroed
	}
	return res
}

// normalForm reduces f lead-then-full against the view.
func (v *basisView[K]) normalForm(f *Vector[K], quot map[int]*Polynomial[K]) reduction {
	st := v.reduceLead(f, quot)
	if st == zeroed {
		return zeroed
	}
	switch v.reduceFull(f, quot) {
	case zeroed:
		return zeroed
	case changed:
		return changed
	}
	return st
}

// engine holds the state of one Buchberger invocation.
// Basis elements are addressed by stable indices: positions in the
// append-only result slice, where a nil entry is a tombstone left by
// inter-reduction.
type engine[K Ring[K]] struct {
	ring        K
	order       Order
	varStringer func(i int) string
	nrows       int
	ninputs     int

	result []*Vector[K]
	sigs   []Signature
	// trans[s] expresses result[s] as a combination of the inputs:
	// result[s] == trans[s][0]*input[0] + trans[s][1]*input[1] + ...
	// It is nil when the transformation was not requested.
	trans [][]*Polynomial[K]
	view  *basisView[K]
	live  int

	queue     *pairQueue
	maxDegree int
	progress  func(loops, basisSize, queueSize int)
	stats     Stats
}

func newEngine[K Ring[K]](inputs []*Vector[K], opts *Options, withTransformation bool) (*engine[K], error) {
	e := &engine[K]{
		ninputs:   len(inputs),
		queue:     newPairQueue(),
		maxDegree: opts.maxDegree(),
	}
	if opts != nil {
		e.progress = opts.Progress
	}

	// Base-normalize the inputs: drop zeros and check that the survivors
	// live in one common ring.
	var sample K
	haveSample := false
	for ix, v := range inputs {
		if v == nil || v.IsZero() {
			continue
		}
		if !haveSample {
			e.ring = v.Ring()
			e.order = v.Order()
			e.varStringer = v.Row(0).VariableStringer
			e.nrows = v.Len()
			e.view = &basisView[K]{ring: e.ring, order: e.order}
			sample = v.LeadingTerm().Coefficient
			haveSample = true
		}
		if v.Len() != e.nrows {
			return nil, errors.Wrapf(ErrIncompatibleRings, "module rank %d != %d", v.Len(), e.nrows)
		}
		if chk, ok := any(sample).(compatible[K]); ok {
			if !chk.Compatible(v.LeadingTerm().Coefficient) {
				return nil, errors.Wrap(ErrIncompatibleRings, "coefficient rings differ")
			}
		}

		s := len(e.result)
		e.result = append(e.result, v.Clone())
		e.sigs = append(e.sigs, Signature{})
		if withTransformation {
			row := make([]*Polynomial[K], e.ninputs)
			for col := range row {
				row[col] = e.newPoly()
			}
			row[ix].addTerm(1, Term[K]{Coefficient: e.ring.NewOne(), Monomial: Monomial{}})
			e.trans = append(e.trans, row)
		}
		e.live++
		e.commit(s)
	}
	return e, nil
}

func (e *engine[K]) compute(ctx context.Context, opts *Options) error {
	defer func() {
		if opts != nil && opts.Stats != nil {
			*opts.Stats = e.stats
		}
	}()
	if e.live == 0 {
		return nil
	}

	e.interreduceInitial()
	e.seedPairs()

	if opts != nil && opts.Backend == Parallel {
		return e.runParallel(ctx, opts.Threads)
	}
	return e.run(ctx)
}

func (e *engine[K]) alive(s int) bool { return e.result[s] != nil }

// commit records the signature of a finished element and inserts it into the
// sorted view, making it visible to reduction lookups.
func (e *engine[K]) commit(s int) {
	e.sigs[s] = e.result[s].Signature()
	e.view.insert(e.sigs[s], e.result[s], s)
}

// uncommit takes a live element out of the sorted view, so that it may be
// mutated without invalidating the view ordering.
func (e *engine[K]) uncommit(s int) {
	e.view.removeStable(s)
}

// tombstone removes a dead element for good.
// Its stable index is never reused.
func (e *engine[K]) tombstone(s int) {
	e.uncommit(s)
	e.result[s] = nil
	e.sigs[s] = Signature{}
	if e.trans != nil {
		e.trans[s] = nil
	}
	e.live--
}

// applyQuotients folds the reduction quotients into the transformation row of
// s, preserving the invariant result[s] == Σ trans[s][j]*input[j].
func (e *engine[K]) applyQuotients(s int, quot map[int]*Polynomial[K]) {
	if e.trans == nil {
		return
	}
	for l, q := range quot {
		if q.IsZero() {
			continue
		}
		for col := range e.trans[s] {
			t := e.trans[l][col]
			if t.IsZero() {
				continue
			}
			for c, w := range q.Terms() {
				e.trans[s][col].addScaled(-1, c, w, t)
			}
		}
	}
}

func (e *engine[K]) newQuotients() map[int]*Polynomial[K] {
	if e.trans == nil {
		return nil
	}
	return make(map[int]*Polynomial[K])
}

// interreduceInitial reduces every input against the others, restarting from
// the beginning whenever an element changes.
func (e *engine[K]) interreduceInitial() {
	s := 0
	for s < len(e.result) {
		if e.result[s] == nil {
			s++
			continue
		}
		e.uncommit(s)
		quot := e.newQuotients()
		switch e.view.normalForm(e.result[s], quot) {
		case zeroed:
			e.result[s] = nil
			e.sigs[s] = Signature{}
			if e.trans != nil {
				e.trans[s] = nil
			}
			e.live--
			s++
		case changed:
			e.applyQuotients(s, quot)
			e.commit(s)
			s = 0
		default:
			e.commit(s)
			s++
		}
	}
}

// seedPairs enqueues all pairs of surviving inputs whose leading rows match.
func (e *engine[K]) seedPairs() {
	for i := range e.result {
		if e.result[i] == nil {
			continue
		}
		for j := i + 1; j < len(e.result); j++ {
			if e.result[j] == nil {
				continue
			}
			e.pushPair(i, j)
		}
	}
}

// pushPair enqueues the pair (i, j) unless the leading rows differ, in which
// case the S-polynomial is zero at the distinguishing row, or the lcm degree
// exceeds the configured cap.
func (e *engine[K]) pushPair(i, j int) {
	if e.sigs[i].Row != e.sigs[j].Row {
		return
	}
	degree := e.sigs[i].Monomial.LCMDegree(e.sigs[j].Monomial)
	if e.maxDegree > 0 && degree > e.maxDegree {
		return
	}
	e.queue.push(i, j, degree)
}

// productCriterion reports whether the pair (i, j) may be discarded: there is
// a third live element l with the same leading row whose leading monomial
// divides lcm(lm(i), lm(j)), and neither (i, l) nor (j, l) is still
// scheduled.
// See Cox, Little, O'Shea, "Ideals, Varieties, and Algorithms", Ch. 2 §9.
func (e *engine[K]) productCriterion(i, j int) bool {
	row := e.sigs[i].Row
	l := e.sigs[i].Monomial.LCM(e.sigs[j].Monomial)
	for s := range e.result {
		if s == i || s == j || e.result[s] == nil {
			continue
		}
		if e.sigs[s].Row != row {
			continue
		}
		if !e.sigs[s].Monomial.Divides(l) {
			continue
		}
		if e.queue.contains(i, s) || e.queue.contains(j, s) {
			continue
		}
		return true
	}
	return false
}

// sPair forms the S-polynomial of the pair (i, j) and its provisional
// transformation row.
func (e *engine[K]) sPair(i, j int) (*Vector[K], []*Polynomial[K]) {
	var trI, trJ []*Polynomial[K]
	if e.trans != nil {
		trI, trJ = e.trans[i], e.trans[j]
	}
	return e.sPairOf(e.result[i], e.result[j], trI, trJ)
}

func (e *engine[K]) newPoly() *Polynomial[K] {
	p := NewPolynomial(e.ring, e.order)
	p.VariableStringer = e.varStringer
	return p
}

func (e *engine[K]) zeroVector() *Vector[K] {
	rows := make([]*Polynomial[K], e.nrows)
	for i := range rows {
		rows[i] = e.newPoly()
	}
	return &Vector[K]{rows: rows}
}

// append adds a tentative element to the basis and returns its stable index.
// The element participates in reduction lookups only after commit.
func (e *engine[K]) append(v *Vector[K], tr []*Polynomial[K]) int {
	s := len(e.result)
	e.result = append(e.result, v)
	e.sigs = append(e.sigs, Signature{})
	if e.trans != nil {
		e.trans = append(e.trans, tr)
	}
	e.live++
	return s
}

// run is the sequential main loop.
func (e *engine[K]) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "groebner cancelled")
		}
		p, ok := e.queue.pop(e.alive)
		if !ok {
			break
		}
		e.stats.Loops++
		if e.progress != nil {
			e.progress(e.stats.Loops, e.live, e.queue.len())
		}

		if e.productCriterion(p.i, p.j) {
			e.stats.Saved++
			continue
		}
		e.processPair(p.i, p.j)
	}
	return nil
}

func (e *engine[K]) processPair(i, j int) {
	s, tr := e.sPair(i, j)
	six := e.append(s, tr)

	quot := e.newQuotients()
	if e.view.normalForm(s, quot) == zeroed {
		e.tombstone(six)
		e.stats.ReductionsToZero++
		return
	}
	e.applyQuotients(six, quot)
	e.commit(six)

	e.interreduceWith(six)

	for l := range e.result {
		if l == six || e.result[l] == nil {
			continue
		}
		e.pushPair(l, six)
	}
}

// interreduceWith re-runs every live element through reduction by the single
// new element n.
// An element the hint changes is further reduced to normal form against the
// whole basis; elements that become zero are removed.
func (e *engine[K]) interreduceWith(n int) {
	g := []*Vector[K]{e.result[n]}
	for s := range e.result {
		if s == n || e.result[s] == nil {
			continue
		}
		if !canReduceAny(e.result[s], e.result[n]) {
			continue
		}

		e.uncommit(s)
		qn := NewPolynomial(e.ring, e.order)
		st := reduceVec(leadDivRemOnce[K], e.result[s], g, []*Polynomial[K]{qn})
		if st != zeroed {
			if st2 := reduceVec(divRemOnce[K], e.result[s], g, []*Polynomial[K]{qn}); st2 != unchanged {
				st = st2
			}
		}
		if e.trans != nil && !qn.IsZero() {
			e.applyQuotients(s, map[int]*Polynomial[K]{n: qn})
		}
		if st == zeroed {
			e.result[s] = nil
			e.sigs[s] = Signature{}
			if e.trans != nil {
				e.trans[s] = nil
			}
			e.live--
			continue
		}

		// The hint changed this element, so bring it back to normal form
		// against the whole basis.
		quot := e.newQuotients()
		if e.view.normalForm(e.result[s], quot) == zeroed {
			e.result[s] = nil
			e.sigs[s] = Signature{}
			if e.trans != nil {
				e.trans[s] = nil
			}
			e.live--
			continue
		}
		e.applyQuotients(s, quot)
		e.commit(s)
	}
}

// canReduceAny reports whether the leading term of g cancels some term of f.
func canReduceAny[K Ring[K]](f, g *Vector[K]) bool {
	row := g.LeadingRow()
	ltg := g.LeadingTerm()
	for c, w := range f.rows[row].Terms() {
		if _, ok := (Term[K]{Coefficient: c, Monomial: w}).MaybeDiv(ltg); ok {
			return true
		}
	}
	return false
}

// basis returns the surviving elements in stable order.
func (e *engine[K]) basis() []*Vector[K] {
	out := []*Vector[K]{}
	for _, v := range e.result {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

// matrix returns the transformation rows of the surviving elements, parallel
// to basis.
func (e *engine[K]) matrix() [][]*Polynomial[K] {
	out := [][]*Polynomial[K]{}
	for s, v := range e.result {
		if v != nil {
			out = append(out, e.trans[s])
		}
	}
	return out
}
