package groebner

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// A [Monomial] is a product of powers of variables, represented as a vector of
// exponents indexed by variable.
// Monomials of different lengths are compatible; missing trailing entries are
// treated as zero exponents.
//
// [Monomial]: https://en.wikipedia.org/wiki/Monomial
type Monomial []int

// Exponent returns the exponent of variable i.
func (x Monomial) Exponent(i int) int {
	if i < len(x) {
		return x[i]
	}
	return 0
}

// TotalDegree returns the sum of all exponents in x.
func (x Monomial) TotalDegree() int {
	var d int
	for _, e := range x {
		d += e
	}
	return d
}

// IsUnit reports whether x is the unit monomial 1.
func (x Monomial) IsUnit() bool {
	for _, e := range x {
		if e != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether x and y have the same exponents.
func (x Monomial) Equal(y Monomial) bool {
	for i := range max(len(x), len(y)) {
		if x.Exponent(i) != y.Exponent(i) {
			return false
		}
	}
	return true
}

// Mul returns the product of x and y.
func (x Monomial) Mul(y Monomial) Monomial {
	z := make(Monomial, max(len(x), len(y)))
	for i := range z {
		z[i] = x.Exponent(i) + y.Exponent(i)
	}
	return z
}

// Divides reports whether x divides y.
func (x Monomial) Divides(y Monomial) bool {
	for i := range max(len(x), len(y)) {
		if x.Exponent(i) > y.Exponent(i) {
			return false
		}
	}
	return true
}

// MaybeDiv returns the quotient x/y if y divides x.
func (x Monomial) MaybeDiv(y Monomial) (Monomial, bool) {
	z := make(Monomial, max(len(x), len(y)))
	for i := range z {
		e := x.Exponent(i) - y.Exponent(i)
		if e < 0 {
			return nil, false
		}
		z[i] = e
	}
	return z, true
}

// LCM returns the least common multiple of x and y.
func (x Monomial) LCM(y Monomial) Monomial {
	z := make(Monomial, max(len(x), len(y)))
	for i := range z {
		z[i] = max(x.Exponent(i), y.Exponent(i))
	}
	return z
}

// LCMDegree returns the total degree of the least common multiple of x and y,
// without materializing the multiple itself.
func (x Monomial) LCMDegree(y Monomial) int {
	var d int
	for i := range max(len(x), len(y)) {
		d += max(x.Exponent(i), y.Exponent(i))
	}
	return d
}

// Clone returns a copy of x.
func (x Monomial) Clone() Monomial {
	return slices.Clone(x)
}

// String returns x in the form "x0^2*x1", using the default variable names.
func (x Monomial) String() string {
	var b strings.Builder
	printVariables(&b, x, defaultVariableStringer)
	if b.Len() == 0 {
		return "1"
	}
	return b.String()
}

// An Order is a [monomial order] for comparing monomials.
// The meaning of the return value is the same as [cmp.Compare].
// An Order must be a total order compatible with multiplication, with the unit
// monomial as its minimum.
//
// [monomial order]: https://en.wikipedia.org/wiki/Monomial_order
type Order func(x, y Monomial) int

// [Lex] compares x, y by the exponent of the first variable on which they
// differ.
//
// [Lex]: https://en.wikipedia.org/wiki/Monomial_order#Lexicographic_order
func Lex(x, y Monomial) int {
	for i := range max(len(x), len(y)) {
		if c := cmp.Compare(x.Exponent(i), y.Exponent(i)); c != 0 {
			return c
		}
	}
	return 0
}

// [Deglex] compares x, y by first comparing their total degrees, and in case
// of a tie applies the lexicographic order.
//
// [Deglex]: https://en.wikipedia.org/wiki/Monomial_order#Graded_lexicographic_order
func Deglex(x, y Monomial) int {
	if c := cmp.Compare(x.TotalDegree(), y.TotalDegree()); c != 0 {
		return c
	}
	return Lex(x, y)
}

// [Degrevlex] compares x, y by first comparing their total degrees, and in
// case of a tie declares greater the monomial whose last differing exponent is
// smaller.
//
// [Degrevlex]: https://en.wikipedia.org/wiki/Monomial_order#Graded_reverse_lexicographic_order
func Degrevlex(x, y Monomial) int {
	if c := cmp.Compare(x.TotalDegree(), y.TotalDegree()); c != 0 {
		return c
	}
	for i := max(len(x), len(y)) - 1; i >= 0; i-- {
		if c := cmp.Compare(x.Exponent(i), y.Exponent(i)); c != 0 {
			return -c
		}
	}
	return 0
}

// forEachDivisor calls fn for every monomial dividing m, in no particular
// order, and stops early when fn returns false.
// The enumeration walks the product of 0..e over the nonzero exponents e of m.
func forEachDivisor(m Monomial, fn func(d Monomial) bool) {
	support := make([]int, 0, len(m))
	for i, e := range m {
		if e != 0 {
			support = append(support, i)
		}
	}

	d := make(Monomial, len(m))
	for {
		if !fn(d) {
			return
		}

		// Advance the odometer over the supported variables.
		k := 0
		for ; k < len(support); k++ {
			i := support[k]
			if d[i] < m[i] {
				d[i]++
				break
			}
			d[i] = 0
		}
		if k == len(support) {
			return
		}
	}
}

func defaultVariableStringer(i int) string {
	return fmt.Sprintf("x%d", i)
}

func printVariables(b *strings.Builder, m Monomial, vs func(int) string) {
	first := true
	for i, e := range m {
		if e == 0 {
			continue
		}
		if !first {
			b.WriteString("*")
		}
		first = false
		switch {
		case e == 1:
			fmt.Fprintf(b, "%s", vs(i))
		default:
			fmt.Fprintf(b, "%s^%d", vs(i), e)
		}
	}
}
