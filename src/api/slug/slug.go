// Package slug turns free text into URL-safe identifiers and resolves
// collisions against an existing record set.
package slug

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	lower = cases.Lower(language.Polish)

	// Characters with no canonical decomposition that still need an
	// ASCII form (NFD handles ó, ō, ŏ and friends on its own).
	translit = strings.NewReplacer(
		"ł", "l",
		"ß", "ss",
		"đ", "d",
		"ø", "o",
	)

	stripRE    = regexp.MustCompile(`[^a-z0-9_\s-]`)
	collapseRE = regexp.MustCompile(`[\s_-]+`)
)

// Make generates a lowercase hyphenated slug. It returns "" when the
// input has no retainable characters; callers must fall back to another
// source string or a timestamp token.
func Make(text string) string {
	s := lower.String(text)
	s = translit.Replace(s)

	// Decompose and drop combining marks: ōma -> oma, maszyna -> maszyna.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}

	s = stripRE.ReplaceAllString(s, "")
	s = collapseRE.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Fallback returns a timestamp-derived token for input Make could not
// slugify.
func Fallback() string {
	return fmt.Sprintf("haslo-%d", time.Now().UnixNano())
}

// Resolve probes candidate slugs derived from base until exists reports
// a free one. The probe is optimistic: the store's unique constraint is
// the source of truth, and callers must treat a write-time violation as
// a retryable collision.
func Resolve(base string, exists func(string) (bool, error)) (string, error) {
	candidate := Make(base)
	if candidate == "" {
		candidate = Fallback()
	}
	taken, err := exists(candidate)
	if err != nil {
		return "", err
	}
	if !taken {
		return candidate, nil
	}
	for i := 2; ; i++ {
		probe := fmt.Sprintf("%s-%d", candidate, i)
		taken, err := exists(probe)
		if err != nil {
			return "", err
		}
		if !taken {
			return probe, nil
		}
	}
}
