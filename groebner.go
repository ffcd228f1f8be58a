// Package groebner computes [Gröbner bases] of ideals and submodules of free
// modules over multivariate polynomial rings.
// In particular, this package provides multivariate [polynomial division],
// the Buchberger algorithm with transformation matrix tracking, and syzygy
// computation.
// Applications of this package include simplifying expressions, deciding
// ideal membership, and solving systems of polynomial equations.
//
// [polynomial division]: https://en.wikipedia.org/wiki/Gr%C3%B6bner_basis#Reduction
// [Gröbner bases]: https://en.wikipedia.org/wiki/Gr%C3%B6bner_basis
package groebner

import (
	"math/big"

	"github.com/pkg/errors"
)

var (
	// ErrEmptyInput is returned when a computation that needs at least one
	// nonzero generator receives none.
	ErrEmptyInput = errors.New("no nonzero generators")
	// ErrIncompatibleRings is returned when the inputs do not live in a
	// common polynomial ring.
	ErrIncompatibleRings = errors.New("incompatible rings")
	// ErrNotGroebnerBasis is returned by Syzygies when an input does not
	// reduce its own S-polynomials to zero.
	ErrNotGroebnerBasis = errors.New("not a Gröbner basis")
)

// A Ring is an element whose addition and multiplication operations satisfy
// the axioms of a commutative [ring] with exact arithmetic.
//
// [ring]: https://en.wikipedia.org/wiki/Ring_(mathematics)
type Ring[T any] interface {
	// NewZero returns the additive identity of the ring.
	NewZero() T
	// NewOne returns the multiplicative identity of the ring.
	NewOne() T

	// Equal reports whether x and y are equal, where x is the method receiver.
	Equal(y T) bool
	// IsZero reports whether x is the additive identity, where x is the method receiver.
	IsZero() bool
	// Add sets z to the sum x+y and returns z, where z is the method receiver.
	Add(x, y T) T
	// Sub sets z to the difference x-y and returns z, where z is the method receiver.
	Sub(x, y T) T
	// Mul sets z to the product x*y and returns z, where z is the method receiver.
	Mul(x, y T) T
	// Neg sets z to -x and returns z, where z is the method receiver.
	Neg(x T) T
	// MaybeDiv sets z to the quotient x/y and returns z when the division
	// is exact in the ring, where z is the method receiver.
	// Otherwise it reports false and z is unspecified.
	MaybeDiv(x, y T) (T, bool)

	// String returns the string representation.
	String() string
}

// compatible is implemented by rings whose values carry a descriptor, such as
// the modulus of a finite field.
// Values of such rings only mix when Compatible reports true.
type compatible[T any] interface {
	Compatible(y T) bool
}

// A Rat represents a rational coefficient of arbitrary precision.
type Rat struct{ *big.Rat }

// NewRat creates a new [Rat] with numerator a and denominator b.
func NewRat(a, b int64) *Rat { return &Rat{big.NewRat(a, b)} }

// NewZero returns the additive identity 0.
func (x *Rat) NewZero() *Rat { return &Rat{big.NewRat(0, 1)} }

// NewOne returns the multiplicative identity 1.
func (x *Rat) NewOne() *Rat { return &Rat{big.NewRat(1, 1)} }

// Equal reports whether x and y are equal.
func (x *Rat) Equal(y *Rat) bool { return x.Rat.Cmp(y.Rat) == 0 }

// IsZero reports whether x is 0.
func (x *Rat) IsZero() bool { return x.Rat.Sign() == 0 }

// Add sets z to the sum x+y and returns z.
func (z *Rat) Add(x, y *Rat) *Rat { return &Rat{z.Rat.Add(x.Rat, y.Rat)} }

// Sub sets z to the difference x-y and returns z.
func (z *Rat) Sub(x, y *Rat) *Rat { return &Rat{z.Rat.Sub(x.Rat, y.Rat)} }

// Mul sets z to the product x*y and returns z.
func (z *Rat) Mul(x, y *Rat) *Rat { return &Rat{z.Rat.Mul(x.Rat, y.Rat)} }

// Neg sets z to -x and returns z.
func (z *Rat) Neg(x *Rat) *Rat { return &Rat{z.Rat.Neg(x.Rat)} }

// MaybeDiv sets z to the quotient x/y and returns z.
// The division fails only when y == 0.
func (z *Rat) MaybeDiv(x, y *Rat) (*Rat, bool) {
	if y.Rat.Sign() == 0 {
		return nil, false
	}
	return &Rat{z.Rat.Quo(x.Rat, y.Rat)}, true
}

// String returns a string representation of x in the form "a/b" if b != 1,
// and in the form "a" if b == 1.
func (x *Rat) String() string { return x.RatString() }

// An Int represents an integer coefficient of arbitrary precision.
type Int struct{ *big.Int }

// NewInt creates a new [Int] with value v.
func NewInt(v int64) *Int { return &Int{big.NewInt(v)} }

// NewZero returns the additive identity 0.
func (x *Int) NewZero() *Int { return &Int{big.NewInt(0)} }

// NewOne returns the multiplicative identity 1.
func (x *Int) NewOne() *Int { return &Int{big.NewInt(1)} }

// Equal reports whether x and y are equal.
func (x *Int) Equal(y *Int) bool { return x.Int.Cmp(y.Int) == 0 }

// IsZero reports whether x is 0.
func (x *Int) IsZero() bool { return x.Int.Sign() == 0 }

// Add sets z to the sum x+y and returns z.
func (z *Int) Add(x, y *Int) *Int { return &Int{z.Int.Add(x.Int, y.Int)} }

// Sub sets z to the difference x-y and returns z.
func (z *Int) Sub(x, y *Int) *Int { return &Int{z.Int.Sub(x.Int, y.Int)} }

// Mul sets z to the product x*y and returns z.
func (z *Int) Mul(x, y *Int) *Int { return &Int{z.Int.Mul(x.Int, y.Int)} }

// Neg sets z to -x and returns z.
func (z *Int) Neg(x *Int) *Int { return &Int{z.Int.Neg(x.Int)} }

// MaybeDiv sets z to the quotient x/y and returns z when y divides x exactly.
func (z *Int) MaybeDiv(x, y *Int) (*Int, bool) {
	if y.Int.Sign() == 0 {
		return nil, false
	}
	q, r := new(big.Int), new(big.Int)
	q.QuoRem(x.Int, y.Int, r)
	if r.Sign() != 0 {
		return nil, false
	}
	return &Int{z.Int.Set(q)}, true
}

// String returns the decimal representation of x.
func (x *Int) String() string { return x.Int.String() }

// A GaussInt represents a [Gaussian integer] a+bi of arbitrary precision.
//
// [Gaussian integer]: https://en.wikipedia.org/wiki/Gaussian_integer
type GaussInt struct {
	re *big.Int
	im *big.Int
}

// NewGaussInt creates a new [GaussInt] with value re+im*i.
func NewGaussInt(re, im int64) *GaussInt {
	return &GaussInt{re: big.NewInt(re), im: big.NewInt(im)}
}

// NewZero returns the additive identity 0.
func (x *GaussInt) NewZero() *GaussInt { return NewGaussInt(0, 0) }

// NewOne returns the multiplicative identity 1.
func (x *GaussInt) NewOne() *GaussInt { return NewGaussInt(1, 0) }

// Equal reports whether x and y are equal.
func (x *GaussInt) Equal(y *GaussInt) bool {
	return x.re.Cmp(y.re) == 0 && x.im.Cmp(y.im) == 0
}

// IsZero reports whether x is 0.
func (x *GaussInt) IsZero() bool { return x.re.Sign() == 0 && x.im.Sign() == 0 }

// Add sets z to the sum x+y and returns z.
func (z *GaussInt) Add(x, y *GaussInt) *GaussInt {
	z.re.Add(x.re, y.re)
	z.im.Add(x.im, y.im)
	return z
}

// Sub sets z to the difference x-y and returns z.
func (z *GaussInt) Sub(x, y *GaussInt) *GaussInt {
	z.re.Sub(x.re, y.re)
	z.im.Sub(x.im, y.im)
	return z
}

// Mul sets z to the product x*y and returns z.
func (z *GaussInt) Mul(x, y *GaussInt) *GaussInt {
	re := new(big.Int).Mul(x.re, y.re)
	re.Sub(re, new(big.Int).Mul(x.im, y.im))
	im := new(big.Int).Mul(x.re, y.im)
	im.Add(im, new(big.Int).Mul(x.im, y.re))
	z.re.Set(re)
	z.im.Set(im)
	return z
}

// Neg sets z to -x and returns z.
func (z *GaussInt) Neg(x *GaussInt) *GaussInt {
	z.re.Neg(x.re)
	z.im.Neg(x.im)
	return z
}

// MaybeDiv sets z to the quotient x/y and returns z when y divides x exactly
// in ℤ[i].
// The quotient is computed as x*conj(y)/norm(y).
func (z *GaussInt) MaybeDiv(x, y *GaussInt) (*GaussInt, bool) {
	norm := new(big.Int).Mul(y.re, y.re)
	norm.Add(norm, new(big.Int).Mul(y.im, y.im))
	if norm.Sign() == 0 {
		return nil, false
	}

	re := new(big.Int).Mul(x.re, y.re)
	re.Add(re, new(big.Int).Mul(x.im, y.im))
	im := new(big.Int).Mul(x.im, y.re)
	im.Sub(im, new(big.Int).Mul(x.re, y.im))

	qre, rre := new(big.Int), new(big.Int)
	qre.QuoRem(re, norm, rre)
	if rre.Sign() != 0 {
		return nil, false
	}
	qim, rim := new(big.Int), new(big.Int)
	qim.QuoRem(im, norm, rim)
	if rim.Sign() != 0 {
		return nil, false
	}

	z.re.Set(qre)
	z.im.Set(qim)
	return z, true
}

// String returns a string representation of x in the form "a+bi".
func (x *GaussInt) String() string {
	switch {
	case x.im.Sign() == 0:
		return x.re.String()
	case x.re.Sign() == 0:
		return x.im.String() + "i"
	case x.im.Sign() > 0:
		return x.re.String() + "+" + x.im.String() + "i"
	default:
		return x.re.String() + x.im.String() + "i"
	}
}
