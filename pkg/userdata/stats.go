package userdata

import (
	"math"

	"github.com/akaza-im/akaza-go/pkg/graph"
)

// alpha is the additive-smoothing constant applied to every online word
// and bigram count, so a never-seen key doesn't get a cost of infinity and
// a once-seen key isn't absurdly cheap.
const alpha = 0.00001

// calcCost computes -log10((count+alpha)/(totalWords+alpha+uniqueWords)),
// the add-alpha-smoothed cost of a word or edge that occurred count times
// out of totalWords observations across a uniqueWords-sized vocabulary.
func calcCost(count, uniqueWords, totalWords uint32) float32 {
	return float32(-math.Log10(
		(float64(count) + alpha) / (float64(totalWords) + alpha + float64(uniqueWords)),
	))
}

type uniGramUserStats struct {
	uniqueWords uint32
	totalWords  uint32
	wordCount   map[string]uint32
}

func newUniGramUserStats(uniqueWords, totalWords uint32, wordCount map[string]uint32) *uniGramUserStats {
	if wordCount == nil {
		wordCount = map[string]uint32{}
	}
	return &uniGramUserStats{uniqueWords: uniqueWords, totalWords: totalWords, wordCount: wordCount}
}

func (s *uniGramUserStats) getCost(key string) (float32, bool) {
	count, ok := s.wordCount[key]
	if !ok {
		return 0, false
	}
	return calcCost(count, s.uniqueWords, s.totalWords), true
}

func (s *uniGramUserStats) recordEntries(candidates []graph.Candidate) {
	for _, c := range candidates {
		key := c.Key()
		if _, ok := s.wordCount[key]; ok {
			s.wordCount[key]++
		} else {
			s.wordCount[key] = 1
			s.uniqueWords++
		}
		s.totalWords++
	}
}

type biGramUserStats struct {
	uniqueWords uint32
	totalWords  uint32
	wordCount   map[string]uint32
}

func newBiGramUserStats(uniqueWords, totalWords uint32, wordCount map[string]uint32) *biGramUserStats {
	if wordCount == nil {
		wordCount = map[string]uint32{}
	}
	return &biGramUserStats{uniqueWords: uniqueWords, totalWords: totalWords, wordCount: wordCount}
}

func (s *biGramUserStats) getCost(key1, key2 string) (float32, bool) {
	count, ok := s.wordCount[key1+"\t"+key2]
	if !ok {
		return 0, false
	}
	return calcCost(count, s.uniqueWords, s.totalWords), true
}

func (s *biGramUserStats) recordEntries(candidates []graph.Candidate) {
	if len(candidates) < 2 {
		return
	}
	for i := 1; i < len(candidates); i++ {
		key := candidates[i-1].Key() + "\t" + candidates[i].Key()
		if _, ok := s.wordCount[key]; ok {
			s.wordCount[key]++
		} else {
			s.wordCount[key] = 1
			s.uniqueWords++
		}
		s.totalWords++
	}
}
