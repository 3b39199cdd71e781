// Package field implements arithmetic in the prime field of order
// p = 2^21 - 9 = 2097143, a pseudo-Mersenne prime.
//
// Two representations are provided. [Elem] stores the canonical residue in a
// uint32 and reduces products with the pseudo-Mersenne folding identity
// 2^21 ≡ 9 (mod p). [Float] stores it in a float64 and reduces products with
// a reciprocal estimate of the quotient. Both always hold a value in [0, p).
package field
