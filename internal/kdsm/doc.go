// Package kdsm implements the KDSM text cipher: a keyed, position-dependent
// shift over Unicode code points followed by two order-scrambling permutations.
//
// KDSM is an obfuscation scheme. It carries no integrity check, no nonce and no
// metadata, so decrypting with the wrong key silently yields unrelated text.
package kdsm
