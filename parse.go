package groebner

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/fumin/groebner/parse"
	"github.com/fumin/groebner/parse/scan"
)

// Parse parses input and returns the polynomial over the rationals it
// represents, such as "x^2*y - 3/4*z + 1".
// variables maps variable names to their index in the polynomial ring.
func Parse(variables map[string]int, order Order, input string) (*Polynomial[*Rat], error) {
	n, err := parse.Parse(scan.NewScanner(bytes.NewBufferString(input)))
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	p, err := evaluate(n, variables, order)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}

	names := make(map[int]string, len(variables))
	for v, i := range variables {
		names[i] = v
	}
	p.VariableStringer = func(i int) string { return names[i] }

	return p, nil
}

func evaluate(n *parse.Node, variables map[string]int, order Order) (*Polynomial[*Rat], error) {
	switch n.Token.Type {
	case scan.Parenthesis:
		return evaluateParenthesis(n, variables, order)
	case scan.Operator:
		return evaluateOperator(n, variables, order)
	case scan.Int:
		return evaluateInt(n, order)
	case scan.Identifier:
		return evaluateIdentifier(n, variables, order)
	default:
		return nil, errors.Errorf("unknown node %#v", n)
	}
}

func evaluateParenthesis(n *parse.Node, variables map[string]int, order Order) (*Polynomial[*Rat], error) {
	if n.Left == nil {
		return nil, errors.Errorf("%#v", n)
	}
	return evaluate(n.Left, variables, order)
}

func evaluateOperator(n *parse.Node, variables map[string]int, order Order) (*Polynomial[*Rat], error) {
	switch n.Token.Text {
	case "+":
		return evaluatePlus(n, variables, order)
	case "-":
		return evaluateMinus(n, variables, order)
	case "*":
		return evaluateMultiply(n, variables, order)
	case "/":
		return evaluateDivide(n, variables, order)
	case "^":
		return evaluatePower(n, variables, order)
	default:
		return nil, errors.Errorf("%#v", n)
	}
}

func evaluateInt(n *parse.Node, order Order) (*Polynomial[*Rat], error) {
	v, err := strconv.ParseInt(n.Token.Text, 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	p := NewPolynomial(NewRat(0, 1), order, Term[*Rat]{Coefficient: NewRat(v, 1), Monomial: Monomial{}})
	return p, nil
}

func evaluateIdentifier(n *parse.Node, variables map[string]int, order Order) (*Polynomial[*Rat], error) {
	i, ok := variables[n.Token.Text]
	if !ok {
		return nil, errors.Errorf("unknown variable %q", n.Token.Text)
	}
	w := make(Monomial, i+1)
	w[i] = 1
	p := NewPolynomial(NewRat(0, 1), order, Term[*Rat]{Coefficient: NewRat(1, 1), Monomial: w})
	return p, nil
}

func evaluatePlus(n *parse.Node, variables map[string]int, order Order) (*Polynomial[*Rat], error) {
	left, right, err := evaluateLeftRight(n, variables, order)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	z := NewPolynomial(NewRat(0, 1), order).Add(left, right)
	return z, nil
}

func evaluateMinus(n *parse.Node, variables map[string]int, order Order) (*Polynomial[*Rat], error) {
	left, right, err := evaluateLeftRight(n, variables, order)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	z := NewPolynomial(NewRat(0, 1), order).Sub(left, right)
	return z, nil
}

func evaluateMultiply(n *parse.Node, variables map[string]int, order Order) (*Polynomial[*Rat], error) {
	left, right, err := evaluateLeftRight(n, variables, order)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	z := NewPolynomial(NewRat(0, 1), order).Mul(left, right)
	return z, nil
}

func evaluateDivide(n *parse.Node, variables map[string]int, order Order) (*Polynomial[*Rat], error) {
	left, right, err := evaluateLeftRight(n, variables, order)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	if right.Len() != 1 || !right.LeadingMonomial().IsUnit() {
		return nil, errors.Errorf("division by non-constant %v", right)
	}
	den := right.LeadingTerm().Coefficient
	if den.IsZero() {
		return nil, errors.Errorf("division by zero in %#v", n)
	}
	inv, _ := NewRat(0, 1).MaybeDiv(NewRat(1, 1), den)
	z := NewPolynomial(NewRat(0, 1), order).MulScalar(inv, left)
	return z, nil
}

func evaluatePower(n *parse.Node, variables map[string]int, order Order) (*Polynomial[*Rat], error) {
	if n.Left == nil || n.Right == nil {
		return nil, errors.Errorf("%#v", n)
	}
	base, err := evaluate(n.Left, variables, order)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	if n.Right.Token.Type != scan.Int {
		return nil, errors.Errorf("non-integer exponent %#v", n.Right)
	}
	exp, err := strconv.Atoi(n.Right.Token.Text)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	z := NewPolynomial(NewRat(0, 1), order).Pow(base, exp)
	return z, nil
}

func evaluateLeftRight(n *parse.Node, variables map[string]int, order Order) (*Polynomial[*Rat], *Polynomial[*Rat], error) {
	if n.Left == nil {
		return nil, nil, errors.Errorf("%#v", n)
	}
	left, err := evaluate(n.Left, variables, order)
	if err != nil {
		return nil, nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	if n.Right == nil {
		return nil, nil, errors.Errorf("%#v", n)
	}
	right, err := evaluate(n.Right, variables, order)
	if err != nil {
		return nil, nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	return left, right, nil
}
