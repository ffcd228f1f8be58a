package field

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fumin/groebner"
)

func TestNew(t *testing.T) {
	a := assert.New(t)

	x, err := New(7, 10)
	require.NoError(t, err)
	a.Equal(uint64(3), x.Uint64())
	a.Equal(uint64(7), x.Modulus())

	_, err = New(8, 1)
	a.Error(err)
	_, err = New(1<<63+1, 1)
	a.Error(err)
}

func TestArithmetic(t *testing.T) {
	a := assert.New(t)
	const p = 101

	x, err := New(p, 77)
	require.NoError(t, err)
	y, err := New(p, 53)
	require.NoError(t, err)

	a.Equal(uint64((77+53)%p), x.NewZero().Add(x, y).Uint64())
	a.Equal(uint64((77+p-53)%p), x.NewZero().Sub(x, y).Uint64())
	a.Equal(uint64(77*53%p), x.NewZero().Mul(x, y).Uint64())
	a.Equal(uint64(p-77), x.NewZero().Neg(x).Uint64())
	a.True(x.NewZero().IsZero())
	a.True(x.NewOne().Equal(x.NewZero().Add(x.NewZero().NewOne(), x.NewZero())))

	// Division is multiplication by the Fermat inverse.
	q, ok := x.NewZero().MaybeDiv(x, y)
	require.True(t, ok)
	a.Equal(uint64(77), q.NewZero().Mul(q, y).Uint64())
	_, ok = x.NewZero().MaybeDiv(x, x.NewZero())
	a.False(ok)

	// The freshman's dream: (x + y)^p == x^p + y^p.
	pow := func(b Elem) Elem {
		z := b.NewOne()
		for range p {
			z = z.Mul(z, b)
		}
		return z
	}
	sum := x.NewZero().Add(x, y)
	a.True(pow(sum).Equal(x.NewZero().Add(pow(x), pow(y))))
}

func TestGroebnerBasisOverGFp(t *testing.T) {
	a := assert.New(t)
	zero, err := New(7, 0)
	require.NoError(t, err)
	one := zero.NewOne()

	// The ideal of x^2-y, x^3-x over GF(7)[x,y].
	negOne := zero.Neg(one)
	g := []*groebner.Polynomial[Elem]{
		groebner.NewPolynomial(zero, groebner.Degrevlex,
			groebner.Term[Elem]{Coefficient: one, Monomial: groebner.Monomial{2}},
			groebner.Term[Elem]{Coefficient: negOne, Monomial: groebner.Monomial{0, 1}},
		),
		groebner.NewPolynomial(zero, groebner.Degrevlex,
			groebner.Term[Elem]{Coefficient: one, Monomial: groebner.Monomial{3}},
			groebner.Term[Elem]{Coefficient: negOne, Monomial: groebner.Monomial{1}},
		),
	}

	basis, err := groebner.GroebnerBasis(context.Background(), g, nil)
	require.NoError(t, err)
	groebner.Monic(basis)
	basis = groebner.SortReduced(basis)
	require.Len(t, basis, 3)

	lms := []groebner.Monomial{{2}, {1, 1}, {0, 2}}
	for i, b := range basis {
		a.True(b.LeadingMonomial().Equal(lms[i]), "%d: %v", i, b)
		a.True(b.LeadingTerm().Coefficient.Equal(one))
	}

	// Both generators reduce to zero against the basis.
	for _, f := range g {
		a.True(groebner.Rem(f, basis).IsZero())
	}
}

func TestIncompatibleModuli(t *testing.T) {
	a := assert.New(t)
	z7, err := New(7, 0)
	require.NoError(t, err)
	z11, err := New(11, 0)
	require.NoError(t, err)

	g := []*groebner.Polynomial[Elem]{
		groebner.NewPolynomial(z7, groebner.Degrevlex,
			groebner.Term[Elem]{Coefficient: z7.NewOne(), Monomial: groebner.Monomial{1}}),
		groebner.NewPolynomial(z11, groebner.Degrevlex,
			groebner.Term[Elem]{Coefficient: z11.NewOne(), Monomial: groebner.Monomial{0, 1}}),
	}
	_, err = groebner.GroebnerBasis(context.Background(), g, nil)
	a.ErrorIs(err, groebner.ErrIncompatibleRings)
}
