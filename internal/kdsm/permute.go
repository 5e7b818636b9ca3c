package kdsm

// swapIndex is the first of the two positions exchanged after reversal.
const swapIndex = 2

// scramble reverses runes in place, then exchanges positions 2 and 3 when there are at least four.
func scramble(runes []rune) {
	reverse(runes)
	swapMiddle(runes)
}

// unscramble undoes scramble.
func unscramble(runes []rune) {
	swapMiddle(runes)
	reverse(runes)
}

func reverse(runes []rune) {
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
}

func swapMiddle(runes []rune) {
	if len(runes) >= swapIndex+2 {
		runes[swapIndex], runes[swapIndex+1] = runes[swapIndex+1], runes[swapIndex]
	}
}
