package graph

import (
	"log"
	"sort"
	"unicode/utf8"
)

// Range is a byte range [Start, End) into a yomi string, used to force a
// particular clause boundary (e.g. after a shift+arrow selection).
type Range struct {
	Start, End int
}

func (r Range) Len() int { return r.End - r.Start }

func (r Range) Contains(pos int) bool { return pos >= r.Start && pos < r.End }

// SegmentationResult groups candidate kana fragments by the byte offset
// they end at.
type SegmentationResult struct {
	base map[int][]string
}

// NewSegmentationResult wraps an already-built end-position map.
func NewSegmentationResult(base map[int][]string) *SegmentationResult {
	return &SegmentationResult{base: base}
}

// SegmentEntry is one (endPos, yomis) pair from a SegmentationResult,
// yielded in ascending endPos order.
type SegmentEntry struct {
	EndPos int
	Yomis  []string
}

// Iter returns every entry ordered by ascending end position.
func (s *SegmentationResult) Iter() []SegmentEntry {
	ends := make([]int, 0, len(s.base))
	for end := range s.base {
		ends = append(ends, end)
	}
	sort.Ints(ends)
	entries := make([]SegmentEntry, len(ends))
	for i, end := range ends {
		entries[i] = SegmentEntry{EndPos: end, Yomis: s.base[end]}
	}
	return entries
}

// Get returns the fragments ending at endPos, if any.
func (s *SegmentationResult) Get(endPos int) ([]string, bool) {
	v, ok := s.base[endPos]
	return v, ok
}

// PrefixSearcher is satisfied by anything that can answer "which of my
// known readings are a prefix of this string" - the system kana trie and
// the user's online-learned kana trie both qualify.
type PrefixSearcher interface {
	CommonPrefixSearch(query string) []string
}

// Segmenter splits a yomi string into candidate bunsetsu fragments by
// walking every known-reading prefix match from each reachable start
// position.
type Segmenter struct {
	tries []PrefixSearcher
}

// NewSegmenter builds a Segmenter consulting every given trie.
func NewSegmenter(tries []PrefixSearcher) *Segmenter {
	return &Segmenter{tries: tries}
}

// clampForceRanges clamps each range to yomi's byte bounds and drops any
// that become degenerate (Start >= End after clamping) or land mid-rune, so
// a stale forceRange - e.g. one computed against a yomi before an earlier
// edit shortened it - degrades instead of panicking the slice at Build's
// call site.
func clampForceRanges(yomi string, forceRanges []Range) []Range {
	if len(forceRanges) == 0 {
		return forceRanges
	}
	out := make([]Range, 0, len(forceRanges))
	for _, fr := range forceRanges {
		clamped := fr
		if clamped.Start < 0 {
			clamped.Start = 0
		}
		if clamped.Start > len(yomi) {
			clamped.Start = len(yomi)
		}
		if clamped.End > len(yomi) {
			clamped.End = len(yomi)
		}
		if clamped.End < 0 {
			clamped.End = 0
		}
		if clamped != fr {
			log.Printf("graph: forceRange %+v outside yomi bounds (len %d), clamped to %+v", fr, len(yomi), clamped)
		}
		if clamped.Start >= clamped.End {
			log.Printf("graph: forceRange %+v degenerate after clamping, dropping", fr)
			continue
		}
		if !utf8.RuneStart(yomi[clamped.Start]) || (clamped.End < len(yomi) && !utf8.RuneStart(yomi[clamped.End])) {
			log.Printf("graph: forceRange %+v splits a rune in yomi, dropping", fr)
			continue
		}
		out = append(out, clamped)
	}
	return out
}

// Build segments yomi, honoring forceRanges as clause boundaries a user
// explicitly selected (e.g. via shift+arrow). Positions are byte offsets
// into yomi.
func (s *Segmenter) Build(yomi string, forceRanges []Range) *SegmentationResult {
	forceRanges = clampForceRanges(yomi, forceRanges)

	queue := []int{0}
	seen := map[int]bool{}
	wordsEndsAt := map[int][]string{}

queueProcessing:
	for len(queue) > 0 {
		startPos := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		if seen[startPos] {
			continue
		}
		seen[startPos] = true

		for _, fr := range forceRanges {
			if fr.Start == startPos {
				wordsEndsAt[fr.End] = append(wordsEndsAt[fr.End], yomi[fr.Start:fr.End])
				queue = append(queue, startPos+fr.Len())
				continue queueProcessing
			}
			if fr.Contains(startPos) {
				continue queueProcessing
			}
		}

		rest := yomi[startPos:]
		if rest == "" {
			continue
		}

		var candidates []string
		seenCandidate := map[string]bool{}
		for _, trie := range s.tries {
		insert:
			for _, word := range trie.CommonPrefixSearch(rest) {
				endsAt := startPos + len(word)

				for _, fr := range forceRanges {
					if fr.Contains(endsAt) || fr.End == endsAt {
						continue insert
					}
				}

				if seenCandidate[word] {
					continue
				}
				seenCandidate[word] = true
				candidates = append(candidates, word)
			}
		}

		if len(candidates) > 0 {
			for _, candidate := range candidates {
				endsAt := startPos + len(candidate)
				wordsEndsAt[endsAt] = append(wordsEndsAt[endsAt], candidate)
				queue = append(queue, startPos+len(candidate))
			}
		} else {
			// No dictionary reading starts here; fall back to a single
			// character so the lattice stays connected.
			_, size := utf8.DecodeRuneInString(rest)
			first := rest[:size]
			endsAt := startPos + len(first)
			wordsEndsAt[endsAt] = append(wordsEndsAt[endsAt], first)
			queue = append(queue, startPos+len(first))
		}
	}

	return NewSegmentationResult(wordsEndsAt)
}
