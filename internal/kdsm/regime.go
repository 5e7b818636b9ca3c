package kdsm

// Regime is the handling class of a single code point.
type Regime int

const (
	// RegimeMarked covers backslash, pipe and URL-reserved punctuation.
	RegimeMarked Regime = iota
	// RegimePrintable covers the remaining printable ASCII characters.
	RegimePrintable
	// RegimeWhitespace covers tab, line feed and carriage return.
	RegimeWhitespace
	// RegimeOther covers every other code point.
	RegimeOther
)

const (
	markerOffset     = 300
	markerLow        = markerOffset + ' '
	markerHigh       = markerOffset + '~'
	whitespaceOffset = 200

	printableLow  = 32
	printableHigh = 126
	printableSpan = printableHigh - printableLow + 1

	xorModulus = 100
)

// marked holds the characters carried through unshifted in the marker band.
var marked = func() [128]bool {
	var set [128]bool

	for _, r := range `\|:/?#[]@!$&'()*+,;=-._~%` {
		set[r] = true
	}

	return set
}()

func isMarked(r rune) bool {
	return r >= 0 && r < 128 && marked[r]
}

func isWhitespace(r rune) bool {
	return r == '\t' || r == '\n' || r == '\r'
}

// Classify returns the regime of r.
func Classify(r rune) Regime {
	switch {
	case isMarked(r):
		return RegimeMarked
	case r >= printableLow && r <= printableHigh:
		return RegimePrintable
	case isWhitespace(r):
		return RegimeWhitespace
	default:
		return RegimeOther
	}
}

// wrapPrintable folds x back into the printable band [32, 126].
// It equals repeatedly adding or subtracting 95 until x lands in the band.
func wrapPrintable(x int) int {
	m := (x - printableLow) % printableSpan
	if m < 0 {
		m += printableSpan
	}

	return m + printableLow
}

// encodeRune transforms r at a position whose dynamic shift is shift.
func encodeRune(r rune, shift int) rune {
	switch Classify(r) {
	case RegimeMarked:
		return r + markerOffset
	case RegimePrintable:
		return rune(wrapPrintable(int(r) + shift))
	case RegimeWhitespace:
		return r + whitespaceOffset
	default:
		return r ^ rune(shift%xorModulus)
	}
}

// decodeRune inverts encodeRune using only the transformed value.
// Values inside a marker band that no marker can produce are treated as XOR output,
// as are printable values that would unshift onto a marked character.
func decodeRune(r rune, shift int) rune {
	xor := r ^ rune(shift%xorModulus)

	switch {
	case r >= markerLow && r <= markerHigh && isMarked(r-markerOffset):
		return r - markerOffset
	case isWhitespace(r - whitespaceOffset):
		return r - whitespaceOffset
	case r >= printableLow && r <= printableHigh:
		original := rune(wrapPrintable(int(r) - shift))
		if isMarked(original) {
			return xor
		}

		return original
	default:
		return xor
	}
}
