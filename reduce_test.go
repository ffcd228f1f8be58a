package groebner

import (
	"context"
	"fmt"
	"slices"
	"testing"
)

func TestDivRem(t *testing.T) {
	tests := []struct {
		variables map[string]int
		order     Order
		f         string
		g         []string
		remainder string
	}{
		// Example 4, Ch. 2 §3, Cox, Little, O'Shea.
		{
			variables: xy,
			order:     Lex,
			f:         "x^2*y + x*y^2 + y^2",
			g:         []string{"x*y - 1", "y^2 - 1"},
			remainder: "x + y + 1",
		},
		// Example 5, Ch. 2 §3, Cox, Little, O'Shea: the divisor order
		// changes the quotients but the division invariant holds.
		{
			variables: xy,
			order:     Lex,
			f:         "x^2*y + x*y^2 + y^2",
			g:         []string{"y^2 - 1", "x*y - 1"},
			remainder: "2x + 1",
		},
		{
			variables: xy,
			order:     Degrevlex,
			f:         "x^3",
			g:         []string{"x^2 - y", "x*y - x", "y^2 - y"},
			remainder: "x",
		},
		// Empty divisor set.
		{
			variables: xy,
			order:     Degrevlex,
			f:         "x^2 - y",
			g:         []string{},
			remainder: "x^2 - y",
		},
		// A unit divisor reduces everything to zero.
		{
			variables: xy,
			order:     Degrevlex,
			f:         "x^2*y - 3x + 7",
			g:         []string{"2"},
			remainder: "0",
		},
	}

	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			t.Parallel()
			f := mustParse(t, test.variables, test.order, test.f)
			g := mustParseAll(t, test.variables, test.order, test.g...)
			quot, r := DivRem(f, g)

			expected := mustParse(t, test.variables, test.order, test.remainder)
			if !r.Equal(expected) {
				t.Errorf("got %v, expected %v", r, expected)
			}

			// f == r + quot[0]*g[0] + quot[1]*g[1] + ...
			acc := NewPolynomial(NewRat(0, 1), test.order).Set(r)
			buf := NewPolynomial(NewRat(0, 1), test.order)
			for j := range g {
				buf.Mul(quot[j], g[j])
				acc.Add(acc, buf)
			}
			if !acc.Equal(f) {
				t.Errorf("%v != %v", acc, f)
			}

			// No leading monomial of g divides any monomial of r.
			for _, gj := range g {
				lm := gj.LeadingMonomial()
				for _, w := range r.Terms() {
					if lm.Divides(w) {
						t.Errorf("%v divides %v", lm, w)
					}
				}
			}

			// Idempotence: rem(rem(f, g), g) == rem(f, g).
			if again := Rem(r, g); !again.Equal(r) {
				t.Errorf("%v != %v", again, r)
			}
		})
	}
}

func TestRemUntouched(t *testing.T) {
	t.Parallel()
	f := mustParse(t, xy, Lex, "x^2*y + x*y^2 + y^2")
	saved := f.Clone()
	g := mustParseAll(t, xy, Lex, "x*y - 1", "y^2 - 1")
	Rem(f, g)
	if !f.Equal(saved) {
		t.Errorf("%v != %v", f, saved)
	}
}

func TestRemGroebnerPermutationInvariant(t *testing.T) {
	t.Parallel()
	// Against a Gröbner basis, the remainder is a normal form independent
	// of the order of the divisors.
	ideal := mustParseAll(t, xy, Degrevlex, "x^2 - y", "x^3 - x")
	basis, err := GroebnerBasis(context.Background(), ideal, nil)
	if err != nil {
		t.Fatalf("%+v", err)
	}

	fs := []string{"x^5 + y", "x^2*y^2 - x", "x^4 - y^3 + 2x - 5"}
	for _, s := range fs {
		f := mustParse(t, xy, Degrevlex, s)
		want := Rem(f, basis)

		perm := slices.Clone(basis)
		slices.Reverse(perm)
		if got := Rem(f, perm); !got.Equal(want) {
			t.Errorf("%s: %v != %v", s, got, want)
		}
	}
}

func TestDivRemModule(t *testing.T) {
	t.Parallel()
	// Reduce (x^2, x*y) by {(x, 0), (0, y)} rowwise.
	zero := func() *Polynomial[*Rat] { return NewPolynomial(NewRat(0, 1), Degrevlex) }
	g := []*Vector[*Rat]{
		NewVector(mustParse(t, xy, Degrevlex, "x"), zero()),
		NewVector(zero(), mustParse(t, xy, Degrevlex, "y")),
	}
	f := NewVector(mustParse(t, xy, Degrevlex, "x^2"), mustParse(t, xy, Degrevlex, "x*y"))

	quot, r := DivRemModule(f, g)
	if !r.IsZero() {
		t.Errorf("%v", r)
	}
	if !quot[0].Equal(mustParse(t, xy, Degrevlex, "x")) {
		t.Errorf("%v", quot[0])
	}
	if !quot[1].Equal(mustParse(t, xy, Degrevlex, "x")) {
		t.Errorf("%v", quot[1])
	}
}

func TestDivRemInteger(t *testing.T) {
	t.Parallel()
	// Over the integers, reduction applies only when the coefficient
	// division is exact: 3x^2 is not reducible by 2x.
	ring := NewInt(0)
	x := Monomial{1}
	f := NewPolynomial(ring, Degrevlex,
		Term[*Int]{Coefficient: NewInt(3), Monomial: x.Mul(x)},
		Term[*Int]{Coefficient: NewInt(4), Monomial: x},
	)
	g := []*Polynomial[*Int]{NewPolynomial(ring, Degrevlex,
		Term[*Int]{Coefficient: NewInt(2), Monomial: x},
	)}

	r := Rem(f, g)
	expected := NewPolynomial(ring, Degrevlex,
		Term[*Int]{Coefficient: NewInt(3), Monomial: x.Mul(x)},
	)
	if !r.Equal(expected) {
		t.Errorf("got %v, expected %v", r, expected)
	}
}
