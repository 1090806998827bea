package sanitizer

import (
	"regexp"
	"strings"
	"unicode"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var reCodeChars = regexp.MustCompile(`[^0-9A-Z-]+`)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeCode uppercases a course code and strips everything that is not
// a letter, digit or dash: "cs 101-a" becomes "CS101-A".
func NormalizeCode(code string) string {
	p := Pipeline{
		TrimAndNormalize,
		strings.ToUpper,
		func(s string) string { return reCodeChars.ReplaceAllString(s, "") },
	}
	return p.Apply(code)
}
