// Package field implements [finite field] coefficient arithmetic for
// polynomials over GF(p), where p is a prime number.
//
// [finite field]: https://en.wikipedia.org/wiki/Finite_field
package field

import (
	"math/big"
	"math/bits"
	"strconv"

	"github.com/pkg/errors"
)

const maxBitUsage = 63

var (
	errPrimeTooLarge = errors.New("supporting up to 63-bit primes")
	errNotPrime      = errors.New("order must be a prime number")
)

// An Elem is an element of the prime field GF(p).
// Elem satisfies the coefficient ring contract of package groebner.
type Elem struct {
	p uint64
	v uint64
}

// New returns the element v of the prime field GF(p).
// Primality of p is checked; probabilistic primality testing is exact for
// 64-bit numbers.
func New(p, v uint64) (Elem, error) {
	if p > 1<<maxBitUsage {
		return Elem{}, errors.Wrap(errPrimeTooLarge, strconv.FormatUint(p, 10))
	}
	if !new(big.Int).SetUint64(p).ProbablyPrime(1) {
		return Elem{}, errors.Wrap(errNotPrime, strconv.FormatUint(p, 10))
	}
	return Elem{p: p, v: v % p}, nil
}

// Uint64 returns the canonical representative of x in 0..p-1.
func (x Elem) Uint64() uint64 { return x.v }

// Modulus returns the order p of the field of x.
func (x Elem) Modulus() uint64 { return x.p }

// NewZero returns the additive identity 0.
func (x Elem) NewZero() Elem { return Elem{p: x.p} }

// NewOne returns the multiplicative identity 1.
func (x Elem) NewOne() Elem { return Elem{p: x.p, v: 1 % x.p} }

// Equal reports whether x and y are equal.
func (x Elem) Equal(y Elem) bool { return x.v == y.v }

// IsZero reports whether x is 0.
func (x Elem) IsZero() bool { return x.v == 0 }

// Compatible reports whether x and y belong to the same field.
func (x Elem) Compatible(y Elem) bool { return x.p == y.p }

// Add sets z to the sum x+y and returns z.
func (z Elem) Add(x, y Elem) Elem {
	// Cannot overflow, since both operands are below 2^63.
	v := x.v + y.v
	if v >= x.p {
		v -= x.p
	}
	return Elem{p: x.p, v: v}
}

// Sub sets z to the difference x-y and returns z.
func (z Elem) Sub(x, y Elem) Elem {
	v := x.v
	if v < y.v {
		v += x.p
	}
	return Elem{p: x.p, v: v - y.v}
}

// Mul sets z to the product x*y and returns z.
func (z Elem) Mul(x, y Elem) Elem {
	return Elem{p: x.p, v: mulMod(x.v, y.v, x.p)}
}

// Neg sets z to -x and returns z.
func (z Elem) Neg(x Elem) Elem {
	if x.v == 0 {
		return Elem{p: x.p}
	}
	return Elem{p: x.p, v: x.p - x.v}
}

// MaybeDiv sets z to the quotient x/y and returns z.
// The division fails only when y == 0.
func (z Elem) MaybeDiv(x, y Elem) (Elem, bool) {
	if y.v == 0 {
		return Elem{}, false
	}
	return Elem{p: x.p, v: mulMod(x.v, inverse(y.v, y.p), x.p)}, true
}

// String returns the decimal representation of the canonical representative
// of x.
func (x Elem) String() string { return strconv.FormatUint(x.v, 10) }

func mulMod(a, b, mod uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, mod)
	return rem
}

// powMod computes base^exp by [exponentiation by squaring].
//
// [exponentiation by squaring]: https://en.wikipedia.org/wiki/Exponentiation_by_squaring
func powMod(base, exp, mod uint64) uint64 {
	x := uint64(1)
	for exp > 0 {
		if exp%2 == 1 {
			x = mulMod(x, base, mod)
		}
		base = mulMod(base, base, mod)
		exp /= 2
	}
	return x % mod
}

// inverse computes 1/a by Fermat's little theorem:
// a^p == a (mod p), and therefore a^(p-2) * a == 1 (mod p).
func inverse(a, p uint64) uint64 {
	if a == 0 {
		panic("zero has no inverse")
	}
	return powMod(a, p-2, p)
}
