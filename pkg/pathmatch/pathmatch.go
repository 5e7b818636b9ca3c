// Package pathmatch implements find -path matching semantics.
//
// It follows fnmatch(3) without FNM_PATHNAME:
//   - * matches any characters including /
//   - ? matches exactly one character including /
//   - [...] matches one character from the set including /, [!...] negates it
//   - \ escapes the next character
//
// This differs from Go's filepath.Match where * does not cross directory separators.
// Patterns and paths are matched per rune, so non-ASCII names behave like ASCII ones.
package pathmatch

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

var (
	// ErrUnclosedClass is returned for a [ without a matching ].
	ErrUnclosedClass = errors.New("unclosed character class")
	// ErrTrailingEscape is returned for a pattern ending in a lone backslash.
	ErrTrailingEscape = errors.New("trailing backslash")
)

// cacheSize bounds the number of compiled patterns kept between calls.
const cacheSize = 256

//nolint:gochecknoglobals
var compiled = mustCache()

func mustCache() *lru.Cache[string, *regexp.Regexp] {
	cache, err := lru.New[string, *regexp.Regexp](cacheSize)
	if err != nil {
		panic(err)
	}

	return cache
}

// Match reports whether path matches the pattern using find -path semantics.
func Match(pattern, path string) (bool, error) {
	re, err := compile(pattern)
	if err != nil {
		return false, err
	}

	return re.MatchString(path), nil
}

// Matcher holds a set of compiled patterns.
type Matcher struct {
	patterns []*regexp.Regexp
}

// NewMatcher compiles patterns. An empty set matches nothing.
func NewMatcher(patterns []string) (*Matcher, error) {
	matcher := &Matcher{patterns: make([]*regexp.Regexp, 0, len(patterns))}

	for _, pattern := range patterns {
		re, err := compile(pattern)
		if err != nil {
			return nil, err
		}

		matcher.patterns = append(matcher.patterns, re)
	}

	return matcher, nil
}

// Len returns the number of patterns.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

// MatchAny reports whether path matches at least one pattern.
func (m *Matcher) MatchAny(path string) bool {
	for _, re := range m.patterns {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

func compile(pattern string) (*regexp.Regexp, error) {
	if re, ok := compiled.Get(pattern); ok {
		return re, nil
	}

	expr, err := translate(pattern)
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", pattern, err)
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", pattern, err)
	}

	compiled.Add(pattern, re)

	return re, nil
}

// translate turns a glob into an anchored regular expression.
func translate(pattern string) (string, error) {
	runes := []rune(pattern)

	var expr strings.Builder

	expr.WriteString(`(?s)^`)

	for pos := 0; pos < len(runes); pos++ {
		switch r := runes[pos]; r {
		case '*':
			expr.WriteString(`.*`)
		case '?':
			expr.WriteString(`.`)
		case '\\':
			if pos+1 == len(runes) {
				return "", ErrTrailingEscape
			}

			pos++
			expr.WriteString(regexp.QuoteMeta(string(runes[pos])))
		case '[':
			end, err := classEnd(runes, pos)
			if err != nil {
				return "", err
			}

			expr.WriteString(class(runes[pos+1 : end]))

			pos = end
		default:
			expr.WriteString(regexp.QuoteMeta(string(r)))
		}
	}

	expr.WriteString(`$`)

	return expr.String(), nil
}

// classEnd returns the index of the ] closing the class opened at start.
// A ] directly after [ or [! is a literal member.
func classEnd(runes []rune, start int) (int, error) {
	pos := start + 1

	if pos < len(runes) && runes[pos] == '!' {
		pos++
	}

	if pos < len(runes) && runes[pos] == ']' {
		pos++
	}

	for ; pos < len(runes); pos++ {
		if runes[pos] == ']' {
			return pos, nil
		}
	}

	return 0, ErrUnclosedClass
}

// class renders the members between [ and ] as a regexp class.
func class(members []rune) string {
	var out strings.Builder

	out.WriteByte('[')

	if len(members) > 0 && members[0] == '!' {
		out.WriteByte('^')

		members = members[1:]
	}

	for i, r := range members {
		switch {
		case r == '-' && i > 0 && i < len(members)-1:
			out.WriteRune(r)
		case r == '\\', r == ']', r == '[', r == '^', r == '-':
			out.WriteByte('\\')
			out.WriteRune(r)
		default:
			out.WriteRune(r)
		}
	}

	out.WriteByte(']')

	return out.String()
}
