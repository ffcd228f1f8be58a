package groebner

import (
	"context"
	"errors"
	"testing"
)

func TestSyzygies(t *testing.T) {
	t.Parallel()
	ideal := mustParseAll(t, xy, Degrevlex, "x^2 - y", "x^3 - x")
	basis, err := GroebnerBasis(context.Background(), ideal, nil)
	if err != nil {
		t.Fatalf("%+v", err)
	}

	matrix, err := Syzygies(basis)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if len(matrix) == 0 {
		t.Fatalf("no syzygies")
	}

	// Every row annihilates the basis: matrix[i] . basis == 0.
	for i, row := range matrix {
		if len(row) != len(basis) {
			t.Fatalf("%d columns for %d basis elements", len(row), len(basis))
		}
		acc := NewPolynomial(NewRat(0, 1), Degrevlex)
		buf := NewPolynomial(NewRat(0, 1), Degrevlex)
		for j := range basis {
			buf.Mul(row[j], basis[j])
			acc.Add(acc, buf)
		}
		if !acc.IsZero() {
			t.Errorf("%d: %v", i, acc)
		}
	}
}

func TestSyzygiesSimple(t *testing.T) {
	t.Parallel()
	// For the basis {x-1, y} the single syzygy is (-y, x-1).
	basis := mustParseAll(t, xy, Degrevlex, "x - 1", "y")
	matrix, err := Syzygies(basis)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if len(matrix) != 1 {
		t.Fatalf("%v", matrix)
	}
	if !matrix[0][0].Equal(mustParse(t, xy, Degrevlex, "-y")) {
		t.Errorf("%v", matrix[0][0])
	}
	if !matrix[0][1].Equal(mustParse(t, xy, Degrevlex, "x - 1")) {
		t.Errorf("%v", matrix[0][1])
	}
}

func TestSyzygiesNotGroebner(t *testing.T) {
	t.Parallel()
	// {x^2-y, x^3-x} does not reduce its own S-polynomial to zero.
	g := mustParseAll(t, xy, Degrevlex, "x^2 - y", "x^3 - x")
	if _, err := Syzygies(g); !errors.Is(err, ErrNotGroebnerBasis) {
		t.Errorf("%+v", err)
	}
}
