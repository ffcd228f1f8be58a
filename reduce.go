package groebner

// A reduction reports the outcome of a division step.
// It replaces the "same object means unchanged" convention by an explicit
// tri-state, so callers never compare pointers to decide whether progress was
// made.
type reduction int

const (
	unchanged reduction = iota
	changed
	zeroed
)

// leadDivRemOnce attempts to cancel the leading term of f using g.
// The cancellation applies when f and g have the same leading row, the
// leading monomial of g divides that of f, and the coefficient division is
// exact.
// On success, f is set to f - q*g and the single term q realizing the
// cancellation is returned.
func leadDivRemOnce[K Ring[K]](f, g *Vector[K]) (Term[K], reduction) {
	if f.IsZero() {
		return Term[K]{}, unchanged
	}
	if f.LeadingRow() != g.LeadingRow() {
		return Term[K]{}, unchanged
	}
	q, ok := f.LeadingTerm().MaybeDiv(g.LeadingTerm())
	if !ok {
		return Term[K]{}, unchanged
	}
	f.addScaled(-1, q.Coefficient, q.Monomial, g)
	if f.IsZero() {
		return q, zeroed
	}
	return q, changed
}

// divRemOnce scans every term of f at the leading row of g, searching for any
// term divisible by the leading term of g, and cancels the greatest such
// term.
// On success, f is set to f - q*g.
func divRemOnce[K Ring[K]](f, g *Vector[K]) (Term[K], reduction) {
	row := g.LeadingRow()
	if row < 0 {
		return Term[K]{}, unchanged
	}
	ltg := g.LeadingTerm()

	var q Term[K]
	found := false
	for c, w := range f.rows[row].Terms() {
		var ok bool
		if q, ok = (Term[K]{Coefficient: c, Monomial: w}).MaybeDiv(ltg); ok {
			found = true
			break
		}
	}
	if !found {
		return Term[K]{}, unchanged
	}

	f.addScaled(-1, q.Coefficient, q.Monomial, g)
	if f.IsZero() {
		return q, zeroed
	}
	return q, changed
}

// reduceOnce is the signature shared by leadDivRemOnce and divRemOnce.
type reduceOnce[K Ring[K]] func(f, g *Vector[K]) (Term[K], reduction)

// reduceVec repeatedly divides f by g[0], g[1], ..., restarting the cursor at
// g[0] whenever a division succeeds.
// When quot is non-nil, the term of each successful division is accumulated
// into the corresponding quotient row.
// Nil and zero entries of g are skipped.
func reduceVec[K Ring[K]](step reduceOnce[K], f *Vector[K], g []*Vector[K], quot []*Polynomial[K]) reduction {
	res := unchanged
	if f.IsZero() {
		return zeroed
	}
	i := 0
	for i < len(g) {
		if g[i] == nil || g[i].IsZero() {
			i++
			continue
		}
		q, st := step(f, g[i])
		if st == unchanged {
			i++
			continue
		}
		if quot != nil {
			quot[i].addTerm(1, q)
		}
		res = changed
		if st == zeroed {
			return zeroed
		}
		i = 0
	}
	return res
}

// Rem returns the remainder of f divided by the polynomials in g.
// No leading term of any g[i] divides a term of the remainder; a term is left
// in place when its coefficient is not exactly divisible, so over rings such
// as [Int] a leading monomial may still divide a monomial of the remainder.
// f itself is left untouched.
func Rem[K Ring[K]](f *Polynomial[K], g []*Polynomial[K]) *Polynomial[K] {
	_, r := DivRem(f, g)
	return r
}

// DivRem divides f by the polynomials in g, and returns the quotients and the
// remainder satisfying
//
//	f = remainder + quot[0]*g[0] + quot[1]*g[1] + ...
//
// No leading term of any g[i] divides a term of the remainder; see [Rem].
// f itself is left untouched.
func DivRem[K Ring[K]](f *Polynomial[K], g []*Polynomial[K]) (quot []*Polynomial[K], remainder *Polynomial[K]) {
	gv := make([]*Vector[K], len(g))
	for i := range g {
		if g[i] != nil {
			gv[i] = NewVector(g[i])
		}
	}
	quot, rv := DivRemModule(NewVector(f), gv)
	return quot, rv.Row(0)
}

// RemModule returns the remainder of the module element f divided by the
// elements of g.
// f itself is left untouched.
func RemModule[K Ring[K]](f *Vector[K], g []*Vector[K]) *Vector[K] {
	_, r := DivRemModule(f, g)
	return r
}

// DivRemModule divides the module element f by the elements of g, and returns
// the quotients and the remainder satisfying
//
//	f = remainder + quot[0]*g[0] + quot[1]*g[1] + ...
//
// The division first cancels leading terms to a fixpoint, then cancels lower
// terms to a fixpoint.
// f itself is left untouched.
func DivRemModule[K Ring[K]](f *Vector[K], g []*Vector[K]) (quot []*Polynomial[K], remainder *Vector[K]) {
	r := f.Clone()
	quot = make([]*Polynomial[K], len(g))
	for i := range quot {
		quot[i] = NewPolynomial(f.Ring(), f.Order())
		quot[i].VariableStringer = f.rows[0].VariableStringer
	}
	if reduceVec(leadDivRemOnce[K], r, g, quot) != zeroed {
		reduceVec(divRemOnce[K], r, g, quot)
	}
	return quot, r
}
