package skk

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/akaza-im/akaza-go/pkg/romaji"
)

var vowels = [5]rune{'a', 'i', 'u', 'e', 'o'}

// Ari2Nasi expands okuri-ari SKK entries (entries whose yomi ends in the
// trailing romaji consonant/vowel of an inflecting verb or adjective, such
// as "あいしあw") into one okuri-nasi entry per valid vowel completion.
type Ari2Nasi struct {
	conv *romaji.Converter
}

func NewAri2Nasi(conv *romaji.Converter) *Ari2Nasi {
	return &Ari2Nasi{conv: conv}
}

// Expand runs ExpandOkuri over every entry of src and collects the results
// into a single okuri-nasi keyed map.
func (a *Ari2Nasi) Expand(src map[string][]string) (map[string][]string, error) {
	out := map[string][]string{}
	for kana, kanjis := range src {
		pairs, err := a.ExpandOkuri(kana, kanjis)
		if err != nil {
			return nil, err
		}
		for _, p := range pairs {
			out[p.Yomi] = p.Surfaces
		}
	}
	return out, nil
}

// Entry is one (yomi, surfaces) pair produced by ExpandOkuri.
type Entry struct {
	Yomi     string
	Surfaces []string
}

// ExpandOkuri expands a single okuri-ari entry. If kana's last rune is not
// an ascii letter (the okuri suffix is already kana, not a trailing romaji
// consonant/vowel marker), kana and kanjis pass through unchanged.
func (a *Ari2Nasi) ExpandOkuri(kana string, kanjis []string) ([]Entry, error) {
	last, lastSize := utf8.DecodeLastRuneInString(kana)
	if last == utf8.RuneError && lastSize <= 1 {
		return nil, fmt.Errorf("ari2nasi: kana is empty")
	}
	if !isASCIILetter(last) {
		surfaces := make([]string, len(kanjis))
		copy(surfaces, kanjis)
		return []Entry{{Yomi: kana, Surfaces: surfaces}}, nil
	}

	base := kana[:len(kana)-lastSize]

	if isVowel(last) {
		okuri := a.conv.ToHiragana(string(last))
		surfaces := make([]string, len(kanjis))
		for i, k := range kanjis {
			surfaces[i] = k + okuri
		}
		return []Entry{{Yomi: base, Surfaces: surfaces}}, nil
	}

	var result []Entry
	for _, v := range vowels {
		okuri := a.conv.ToHiragana(string(last) + string(v))
		if containsASCIILetter(okuri) {
			// romaji that didn't fully convert to kana, e.g. "wu": skip it.
			continue
		}
		surfaces := make([]string, len(kanjis))
		for i, k := range kanjis {
			surfaces[i] = k + okuri
		}
		result = append(result, Entry{Yomi: base + okuri, Surfaces: surfaces})
	}
	return result, nil
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isVowel(r rune) bool {
	for _, v := range vowels {
		if unicode.ToLower(r) == v {
			return true
		}
	}
	return false
}

func containsASCIILetter(s string) bool {
	for _, r := range s {
		if isASCIILetter(r) {
			return true
		}
	}
	return false
}
