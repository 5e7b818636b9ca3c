// Package seed derives the numeric seed that drives the KDSM character shift.
//
// A seed is a value in [0, Modulus) computed from the code points of a key,
// each weighted by its 1-based position. Empty keys have no stable seed and
// fall back to the wall clock, so ciphertext produced without a key can only
// be reversed by a caller that kept the seed itself.
package seed
