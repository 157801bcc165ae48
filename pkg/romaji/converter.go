// Package romaji converts romanized Japanese input into hiragana, following
// a replaceable mapping table loaded from YAML (with extends-chain
// inheritance) or falling back to a built-in default table.
package romaji

import (
	"regexp"
	"sort"
	"strings"
)

// Converter turns romaji keystrokes into hiragana text using a longest-
// match-first table lookup, exactly the strategy the Rust original used:
// build one big alternation regexp from the mapping's keys sorted longest
// first, with a single-rune fallback group so unmapped characters pass
// through unchanged.
type Converter struct {
	MappingName string
	table       map[string]string
	pattern     *regexp.Regexp
	lastChar    *regexp.Regexp
}

// New builds a Converter from an explicit rule table.
func New(name string, table map[string]string) *Converter {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })

	var b strings.Builder
	b.WriteByte('(')
	for _, k := range keys {
		b.WriteString(regexp.QuoteMeta(k))
		b.WriteByte('|')
	}
	b.WriteString(`.)`)
	core := b.String()

	return &Converter{
		MappingName: name,
		table:       table,
		pattern:     regexp.MustCompile(core),
		lastChar:    regexp.MustCompile(core + "$"),
	}
}

// NewFromFile loads a mapping file (resolving any extends chain) and
// builds a Converter from it.
func NewFromFile(path string) (*Converter, error) {
	table, err := LoadMap(path)
	if err != nil {
		return nil, err
	}
	return New(path, table), nil
}

// Default returns a Converter built from the built-in table.
func Default() *Converter {
	return New(defaultMappingName, DefaultMapping())
}

// ToHiragana converts src to hiragana. Input is lowercased first; a bare
// "nn" is rewritten to "n'" so a following vowel doesn't get absorbed into
// it, matching the romaji convention for typing a standalone ん before a
// vowel-initial mora.
func (c *Converter) ToHiragana(src string) string {
	src = strings.ToLower(src)
	src = strings.ReplaceAll(src, "nn", "n'")
	return c.pattern.ReplaceAllStringFunc(src, func(m string) string {
		if kana, ok := c.table[m]; ok {
			return kana
		}
		return m
	})
}

// RemoveLastChar strips the final matched romaji unit from src, so that a
// backspace keystroke during composition removes one logical mora (or
// trailing incomplete consonant) rather than one byte.
func (c *Converter) RemoveLastChar(src string) string {
	return c.lastChar.ReplaceAllString(src, "")
}
