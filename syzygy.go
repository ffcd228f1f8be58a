package groebner

import "github.com/pkg/errors"

// Syzygies returns a spanning set of the [syzygies] of the Gröbner basis g,
// as a matrix with one row per syzygy and one column per element of g:
//
//	matrix[i][0]*g[0] + matrix[i][1]*g[1] + ... = 0
//
// The running set used to weed out redundant syzygies keeps the reduced form
// of each syzygy, while the returned matrix keeps the raw form, so the
// generating set stays explicit.
// Syzygies fails with [ErrNotGroebnerBasis] when g does not reduce one of its
// own S-polynomials to zero.
//
// [syzygies]: https://en.wikipedia.org/wiki/Syzygy_(mathematics)
func Syzygies[K Ring[K]](g []*Polynomial[K]) ([][]*Polynomial[K], error) {
	return SyzygiesModule(wrapPolynomials(g))
}

// SyzygiesModule returns a spanning set of the syzygies of the Gröbner basis
// g of a submodule.
// See [Syzygies].
func SyzygiesModule[K Ring[K]](g []*Vector[K]) ([][]*Polynomial[K], error) {
	var out [][]*Polynomial[K]
	// known holds the reduced forms of the syzygies found so far.
	var known []*Vector[K]

	for i := range g {
		if g[i] == nil || g[i].IsZero() {
			continue
		}
		for j := i + 1; j < len(g); j++ {
			if g[j] == nil || g[j].IsZero() {
				continue
			}
			if g[i].LeadingRow() != g[j].LeadingRow() {
				continue
			}

			ma, mb := LCMMultipliers(g[i].LeadingTerm(), g[j].LeadingTerm())
			s := zeroVectorLike(g[i])
			s.addScaled(1, ma.Coefficient, ma.Monomial, g[i])
			s.addScaled(-1, mb.Coefficient, mb.Monomial, g[j])

			quot, rem := DivRemModule(s, g)
			if !rem.IsZero() {
				return nil, errors.Wrapf(ErrNotGroebnerBasis, "pair (%d, %d) reduces to %v", i, j, rem)
			}
			quot[i].addTerm(-1, ma)
			quot[j].addTerm(1, mb)
			syzygy := &Vector[K]{rows: quot}

			red := RemModule(syzygy, known)
			if red.IsZero() {
				continue
			}
			known = append(known, red)
			out = append(out, syzygy.rows)
		}
	}
	return out, nil
}

func zeroVectorLike[K Ring[K]](x *Vector[K]) *Vector[K] {
	rows := make([]*Polynomial[K], x.Len())
	for i := range rows {
		rows[i] = NewPolynomial(x.Ring(), x.Order())
		rows[i].VariableStringer = x.rows[0].VariableStringer
	}
	return &Vector[K]{rows: rows}
}
