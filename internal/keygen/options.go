package keygen

import "strings"

// Character classes, in the order they are concatenated into an alphabet.
const (
	Lowercase = "abcdefghijklmnopqrstuvwxyz"
	Uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Numbers   = "0123456789"
	Special   = "!@#$%^&*()"

	// Similar lists characters that are easily confused with one another.
	Similar = "0Ol1I"
)

// Options selects the characters a key is built from.
type Options struct {
	Lowercase      bool   `mapstructure:"lowercase"`
	Uppercase      bool   `mapstructure:"uppercase"`
	Numbers        bool   `mapstructure:"numbers"`
	Special        bool   `mapstructure:"special"`
	ExcludeSimilar bool   `mapstructure:"exclude-similar"`
	CustomWord     string `mapstructure:"word"`
}

// DefaultOptions enables every class, keeps similar characters and sets no custom word.
func DefaultOptions() Options {
	return Options{
		Lowercase: true,
		Uppercase: true,
		Numbers:   true,
		Special:   true,
	}
}

// class is one enabled character class.
type class struct {
	name  string
	chars string
}

// classes returns the enabled classes in alphabet order, filtered for similar characters if requested.
func (o Options) classes() []class {
	all := []struct {
		enabled bool
		class   class
	}{
		{o.Lowercase, class{"lowercase", Lowercase}},
		{o.Uppercase, class{"uppercase", Uppercase}},
		{o.Numbers, class{"numbers", Numbers}},
		{o.Special, class{"special", Special}},
	}

	var enabled []class

	for _, c := range all {
		if !c.enabled {
			continue
		}

		chars := c.class.chars
		if o.ExcludeSimilar {
			chars = withoutSimilar(chars)
		}

		enabled = append(enabled, class{name: c.class.name, chars: chars})
	}

	return enabled
}

// alphabet joins the enabled classes, falling back to lowercase letters when nothing remains.
func (o Options) alphabet() []rune {
	var b strings.Builder

	for _, c := range o.classes() {
		b.WriteString(c.chars)
	}

	if b.Len() == 0 {
		return []rune(Lowercase)
	}

	return []rune(b.String())
}

// strong reports whether generated keys must contain every class.
func (o Options) strong() bool {
	return o.CustomWord == "" && o.Lowercase && o.Uppercase && o.Numbers && o.Special
}

func withoutSimilar(chars string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(Similar, r) {
			return -1
		}

		return r
	}, chars)
}
