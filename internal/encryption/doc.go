// Package encryption applies the KDSM cipher to UTF-8 text files.
// Files are processed concurrently and written atomically next to their inputs.
package encryption
