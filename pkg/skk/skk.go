// Package skk parses SKK-format dictionaries (yomi /surface1/surface2/...
// lines, grouped into okuri-ari and okuri-nasi sections) and expands
// okuri-ari entries into their okuri-nasi equivalents.
package skk

import (
	"regexp"
	"strings"

	"github.com/akaza-im/akaza-go/pkg/romaji"
)

var commentPattern = regexp.MustCompile(";.*")

// Parse reads an already-decoded SKK dictionary source and returns a map
// from yomi to its candidate surfaces, with okuri-ari entries already
// expanded into okuri-nasi form via Ari2Nasi and merged (okuri-nasi entries
// win on key collision, since they are the dictionary author's explicit,
// non-generated mapping).
func Parse(src string, expander *Ari2Nasi) (map[string][]string, error) {
	ari := map[string][]string{}
	nasi := map[string][]string{}
	target := ari

	for _, line := range strings.Split(src, "\n") {
		if strings.HasPrefix(line, ";;") {
			switch {
			case strings.Contains(line, ";; okuri-ari entries."):
				target = ari
			case strings.Contains(line, ";; okuri-nasi entries."):
				target = nasi
			}
			continue
		}
		if line == "" {
			continue
		}

		yomi, surfacesField, ok := strings.Cut(line, " ")
		if !ok || yomi == "" {
			continue
		}

		surfacesField = strings.TrimPrefix(surfacesField, "/")
		surfacesField = strings.TrimSuffix(surfacesField, "/")
		var surfaces []string
		for _, s := range strings.Split(surfacesField, "/") {
			s = commentPattern.ReplaceAllString(s, "")
			if s != "" {
				surfaces = append(surfaces, s)
			}
		}
		target[yomi] = surfaces
	}

	expanded, err := expander.Expand(ari)
	if err != nil {
		return nil, err
	}
	return merge(expanded, nasi), nil
}

// merge combines dictionaries left to right; later maps override earlier
// ones on key collision.
func merge(dicts ...map[string][]string) map[string][]string {
	out := map[string][]string{}
	for _, d := range dicts {
		for k, v := range d {
			out[k] = v
		}
	}
	return out
}

// DefaultExpander returns an Ari2Nasi built on the built-in romaji table.
func DefaultExpander() *Ari2Nasi {
	return NewAri2Nasi(romaji.Default())
}
