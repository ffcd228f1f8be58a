package groebner

import (
	"fmt"
	"iter"
	"strings"

	"github.com/jba/omap"
)

// A Term is a term in a polynomial, the product of a coefficient and a
// monomial.
type Term[K Ring[K]] struct {
	Coefficient K
	Monomial    Monomial
}

// Mul returns the product of x and y.
func (x Term[K]) Mul(y Term[K]) Term[K] {
	return Term[K]{
		Coefficient: x.Coefficient.NewZero().Mul(x.Coefficient, y.Coefficient),
		Monomial:    x.Monomial.Mul(y.Monomial),
	}
}

// MaybeDiv returns the quotient x/y when both the monomial and the
// coefficient divisions are exact.
func (x Term[K]) MaybeDiv(y Term[K]) (Term[K], bool) {
	m, ok := x.Monomial.MaybeDiv(y.Monomial)
	if !ok {
		return Term[K]{}, false
	}
	c, ok := x.Coefficient.NewZero().MaybeDiv(x.Coefficient, y.Coefficient)
	if !ok {
		return Term[K]{}, false
	}
	return Term[K]{Coefficient: c, Monomial: m}, true
}

// LCMMultipliers returns the pair of terms (mx, my) such that
// mx*x == my*y == c*lcm(monomial(x), monomial(y)) for a nonzero coefficient c.
// The coefficients are crossed, mx carrying the coefficient of y and vice
// versa, so that the cancellation mx*x - my*y is exact in any commutative
// ring.
func LCMMultipliers[K Ring[K]](x, y Term[K]) (Term[K], Term[K]) {
	l := x.Monomial.LCM(y.Monomial)
	mx, _ := l.MaybeDiv(x.Monomial)
	my, _ := l.MaybeDiv(y.Monomial)
	cx := x.Coefficient.NewZero()
	cx = cx.Add(cx, y.Coefficient)
	cy := y.Coefficient.NewZero()
	cy = cy.Add(cy, x.Coefficient)
	return Term[K]{Coefficient: cx, Monomial: mx}, Term[K]{Coefficient: cy, Monomial: my}
}

// A Polynomial is a finite sum of terms with distinct monomials, kept sorted
// under a monomial order.
type Polynomial[K Ring[K]] struct {
	// VariableStringer specifies how a variable index is formatted when the
	// polynomial is printed out.
	VariableStringer func(i int) string

	ring  K
	order Order
	m     *omap.MapFunc[Monomial, K]
}

// NewPolynomial returns a new polynomial containing the given terms.
func NewPolynomial[K Ring[K]](ring K, order Order, terms ...Term[K]) *Polynomial[K] {
	x := &Polynomial[K]{
		VariableStringer: defaultVariableStringer,
		ring:             ring,
		order:            order,
		m:                omap.NewMapFunc[Monomial, K](order),
	}
	for _, term := range terms {
		x.addTerm(1, term)
	}
	return x
}

// Ring returns the coefficient ring of x.
func (x *Polynomial[K]) Ring() K { return x.ring }

// Order returns the monomial order employed by x.
func (x *Polynomial[K]) Order() Order { return x.order }

// Len reports the number of terms in x.
func (x *Polynomial[K]) Len() int { return x.m.Len() }

// IsZero reports whether x has no terms.
func (x *Polynomial[K]) IsZero() bool { return x.m.Len() == 0 }

// Terms iterates the terms in x, from the leading term downwards.
func (x *Polynomial[K]) Terms() iter.Seq2[K, Monomial] {
	return func(yield func(K, Monomial) bool) {
		for w, c := range x.m.Backward() {
			if !yield(c, w) {
				return
			}
		}
	}
}

// Coefficient returns the coefficient of the monomial w in x.
func (x *Polynomial[K]) Coefficient(w Monomial) (K, bool) {
	return x.m.Get(w)
}

// LeadingTerm returns the greatest term of x under its monomial order.
// Note that the leading term depends on the monomial order employed by the
// polynomial.
func (x *Polynomial[K]) LeadingTerm() Term[K] {
	w, ok := x.m.Max()
	if !ok {
		panic("zero polynomial has no terms")
	}
	c, _ := x.m.Get(w)
	return Term[K]{Coefficient: c, Monomial: w}
}

// LeadingMonomial returns the monomial of the leading term of x.
func (x *Polynomial[K]) LeadingMonomial() Monomial {
	w, ok := x.m.Max()
	if !ok {
		panic("zero polynomial has no terms")
	}
	return w
}

// Equal reports whether x and y have the same coefficients and monomials.
func (x *Polynomial[K]) Equal(y *Polynomial[K]) bool {
	if x.m.Len() != y.m.Len() {
		return false
	}
	next, stop := iter.Pull2(y.m.All())
	defer stop()
	for xw, xc := range x.m.All() {
		yw, yc, _ := next()
		if !xw.Equal(yw) {
			return false
		}
		if !xc.Equal(yc) {
			return false
		}
	}
	return true
}

// Set sets z to x and returns z.
func (z *Polynomial[K]) Set(x *Polynomial[K]) *Polynomial[K] {
	if z == x {
		return z
	}
	z.VariableStringer = x.VariableStringer
	z.ring = x.ring
	z.order = x.order
	z.m = omap.NewMapFunc[Monomial, K](z.order)
	for xw, xc := range x.m.All() {
		c := z.ring.NewZero()
		c = c.Add(c, xc)
		z.m.Set(xw.Clone(), c)
	}
	return z
}

// Clone returns a fresh copy of x.
func (x *Polynomial[K]) Clone() *Polynomial[K] {
	return NewPolynomial(x.ring, x.order).Set(x)
}

// Add sets z to the sum x+y and returns z.
func (z *Polynomial[K]) Add(x, y *Polynomial[K]) *Polynomial[K] {
	// Set z = x, while handling the case where x or y is z itself.
	if y == z {
		x, y = y, x
	}
	if z != x {
		z.Set(x)
	}
	for yw, c := range y.m.All() {
		z.addTerm(1, Term[K]{Coefficient: c, Monomial: yw.Clone()})
	}
	return z
}

// Sub sets z to the difference x-y and returns z.
func (z *Polynomial[K]) Sub(x, y *Polynomial[K]) *Polynomial[K] {
	if y == z {
		y = y.Clone()
	}
	if z != x {
		z.Set(x)
	}
	for yw, c := range y.m.All() {
		z.addTerm(-1, Term[K]{Coefficient: c, Monomial: yw.Clone()})
	}
	return z
}

// Mul sets z to the product x*y and returns z.
func (z *Polynomial[K]) Mul(x, y *Polynomial[K]) *Polynomial[K] {
	if z == x {
		panic("z == x")
	}
	if z == y {
		panic("z == y")
	}

	z.m.Clear()
	for xw, xc := range x.m.Backward() {
		for yw, yc := range y.m.Backward() {
			c := z.ring.NewZero().Mul(xc, yc)
			z.addTerm(1, Term[K]{Coefficient: c, Monomial: xw.Mul(yw)})
		}
	}
	return z
}

// Pow sets z to the power x^y and returns z.
func (z *Polynomial[K]) Pow(x *Polynomial[K], y int) *Polynomial[K] {
	if z == x {
		panic("z == x")
	}

	if y == 0 {
		z.m.Clear()
		z.addTerm(1, Term[K]{Coefficient: z.ring.NewOne(), Monomial: Monomial{}})
		return z
	}
	z.Set(x)
	buf := NewPolynomial(z.ring, z.order)
	for range y - 1 {
		buf.Mul(z, x)
		z, buf = buf, z
	}
	if y%2 == 0 {
		z, buf = buf, z
		z.Set(buf)
	}
	return z
}

// MulTerm sets z to the product t*x and returns z.
func (z *Polynomial[K]) MulTerm(t Term[K], x *Polynomial[K]) *Polynomial[K] {
	if z == x {
		x = x.Clone()
	}
	z.m.Clear()
	z.addScaled(1, t.Coefficient, t.Monomial, x)
	return z
}

// MulScalar sets z to the product scalar*x and returns z.
func (z *Polynomial[K]) MulScalar(scalar K, x *Polynomial[K]) *Polynomial[K] {
	if z == x {
		for zw, zc := range z.m.All() {
			z.m.Set(zw, zc.Mul(scalar, zc))
		}
		return z
	}

	z.m.Clear()
	for xw, xc := range x.m.All() {
		c := z.ring.NewZero().Mul(scalar, xc)
		z.addTerm(1, Term[K]{Coefficient: c, Monomial: xw.Clone()})
	}
	return z
}

// String returns the string representation of x.
// Variables in x are formatted using x.VariableStringer.
func (x *Polynomial[K]) String() string {
	if x.Len() == 0 {
		return "0"
	}
	var b strings.Builder
	i := 0
	for w, c := range x.m.Backward() {
		// Print c.
		s := c.String()
		if s[0] != '-' {
			s = "+" + s
		}
		switch {
		case i == 0 && s == "+1" && !w.IsUnit():
			s = ""
		case i == 0 && s[0] == '+':
			s = s[1:]
		case s == "+1" && !w.IsUnit():
			s = "+"
		case s == "-1" && !w.IsUnit():
			s = "-"
		}
		fmt.Fprintf(&b, "%s", s)
		if s != "" && s != "+" && s != "-" && !w.IsUnit() {
			b.WriteString("*")
		}

		// Print w.
		printVariables(&b, w, x.VariableStringer)
		i++
	}
	return b.String()
}

func (x *Polynomial[K]) addTerm(sign int, term Term[K]) {
	c, ok := x.m.Get(term.Monomial)
	if !ok {
		c = x.ring.NewZero()
	}

	if sign < 0 {
		c = c.Sub(c, term.Coefficient)
	} else {
		c = c.Add(c, term.Coefficient)
	}

	if c.IsZero() {
		x.m.Delete(term.Monomial)
	} else {
		x.m.Set(term.Monomial, c)
	}
}

// addScaled adds sign*c*w*x to z.
func (z *Polynomial[K]) addScaled(sign int, c K, w Monomial, x *Polynomial[K]) {
	for xw, xc := range x.m.Backward() {
		zc := z.ring.NewZero().Mul(c, xc)
		z.addTerm(sign, Term[K]{Coefficient: zc, Monomial: w.Mul(xw)})
	}
}
