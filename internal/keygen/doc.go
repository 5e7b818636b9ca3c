// Package keygen generates random keys and passwords from configurable character classes.
//
// Characters are drawn from a cryptographically secure source. Keys requesting every
// class are repaired after generation so each class appears at least once.
package keygen
