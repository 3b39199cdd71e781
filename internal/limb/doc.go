// Package limb implements 32-bit unsigned multiplication on a split
// representation: every operand is cut into an 11-bit low limb and a 21-bit
// high limb, the limbs are multiplied pairwise, and the partial products are
// recombined with an explicit carry from the low limb into the high limb.
//
// The decomposition models targets that lack a native wide multiplier. No
// intermediate value used by [Mul] is wider than a 32-bit machine word. The
// partial products feeding the high limb are summed with 32-bit wraparound
// and the sum is masked to the high-limb width once, at the end.
//
// # Widths
//
// [Width32] is the general contract: the result equals a*b mod 2^32.
// [Width31] reproduces the reference demonstration, which masks the high limb
// to 20 bits and compares against a*b & 0x7FFFFFFF.
package limb
