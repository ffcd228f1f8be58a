package groebner

import (
	"fmt"
	"testing"
)

func TestOrders(t *testing.T) {
	tests := []struct {
		order Order
		x     Monomial
		y     Monomial
		cmp   int
	}{
		{order: Lex, x: Monomial{1}, y: Monomial{0, 2}, cmp: 1},
		{order: Lex, x: Monomial{1, 2, 0}, y: Monomial{1, 1, 5}, cmp: 1},
		{order: Lex, x: Monomial{1, 2}, y: Monomial{1, 2, 0}, cmp: 0},
		{order: Deglex, x: Monomial{1}, y: Monomial{0, 2}, cmp: -1},
		{order: Deglex, x: Monomial{1, 1}, y: Monomial{0, 2}, cmp: 1},
		{order: Degrevlex, x: Monomial{1, 1}, y: Monomial{0, 2}, cmp: 1},
		{order: Degrevlex, x: Monomial{2, 0}, y: Monomial{1, 1}, cmp: 1},
		{order: Degrevlex, x: Monomial{3}, y: Monomial{1, 1}, cmp: 1},
		// x^2*z vs x*y^2: equal degree, the last differing exponent decides.
		{order: Degrevlex, x: Monomial{2, 0, 1}, y: Monomial{1, 2, 0}, cmp: -1},
		{order: Degrevlex, x: Monomial{}, y: Monomial{0, 0}, cmp: 0},
	}

	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			t.Parallel()
			if c := test.order(test.x, test.y); c != test.cmp {
				t.Errorf("got %d, expected %d", c, test.cmp)
			}
			if c := test.order(test.y, test.x); c != -test.cmp {
				t.Errorf("reversed: got %d, expected %d", c, -test.cmp)
			}
		})
	}
}

func TestOrderProperties(t *testing.T) {
	// Every order is compatible with multiplication and has the unit
	// monomial as its minimum.
	monomials := []Monomial{
		{}, {1}, {0, 1}, {2, 1}, {1, 0, 3}, {0, 2, 2}, {4},
	}
	c := Monomial{1, 1, 1}
	for _, order := range []Order{Lex, Deglex, Degrevlex} {
		for _, x := range monomials {
			if !x.IsUnit() && order(Monomial{}, x) >= 0 {
				t.Errorf("1 >= %v", x)
			}
			for _, y := range monomials {
				if order(x, y) < 0 && order(x.Mul(c), y.Mul(c)) >= 0 {
					t.Errorf("%v < %v but %v >= %v", x, y, x.Mul(c), y.Mul(c))
				}
			}
		}
	}
}

func TestMonomial(t *testing.T) {
	t.Parallel()
	x := Monomial{2, 0, 1}
	y := Monomial{1, 3}

	if got := x.Mul(y); !got.Equal(Monomial{3, 3, 1}) {
		t.Errorf("%v", got)
	}
	if got := x.LCM(y); !got.Equal(Monomial{2, 3, 1}) {
		t.Errorf("%v", got)
	}
	if got, expected := x.LCMDegree(y), 6; got != expected {
		t.Errorf("%d", got)
	}
	if got, expected := x.TotalDegree(), 3; got != expected {
		t.Errorf("%d", got)
	}

	if y.Divides(x) {
		t.Errorf("%v divides %v", y, x)
	}
	if !(Monomial{1, 0, 1}).Divides(x) {
		t.Errorf("%v does not divide %v", Monomial{1, 0, 1}, x)
	}
	if _, ok := x.MaybeDiv(y); ok {
		t.Errorf("%v / %v", x, y)
	}
	q, ok := x.MaybeDiv(Monomial{1, 0, 1})
	if !ok || !q.Equal(Monomial{1}) {
		t.Errorf("%v %v", q, ok)
	}
}

func TestForEachDivisor(t *testing.T) {
	t.Parallel()
	var divisors []Monomial
	forEachDivisor(Monomial{2, 0, 1}, func(d Monomial) bool {
		divisors = append(divisors, d.Clone())
		return true
	})
	// (2+1)*(1+1) divisors, including the unit and the monomial itself.
	if len(divisors) != 6 {
		t.Fatalf("%v", divisors)
	}
	for _, d := range divisors {
		if !d.Divides(Monomial{2, 0, 1}) {
			t.Errorf("%v", d)
		}
	}

	// Early break.
	var count int
	forEachDivisor(Monomial{5, 5}, func(d Monomial) bool {
		count++
		return count < 3
	})
	if count != 3 {
		t.Errorf("%d", count)
	}
}
