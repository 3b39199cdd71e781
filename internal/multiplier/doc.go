// Package multiplier defines the [Multiplier] abstraction and the registries
// of interchangeable multiplication strategies.
//
// Strategies are grouped in suites. Every strategy of a suite computes the
// same function, so their outputs over a shared operand set must agree:
//
//   - [SuiteU32]: a*b mod 2^32 (native, limb, bits, float64, big, and gmp
//     when built with the gmp tag).
//   - [SuiteFP21]: a*b mod 2097143 (native, pseudo-mersenne, float64, big).
package multiplier
