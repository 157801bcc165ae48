// Package userdata tracks the caller's online-learned word and bigram
// statistics, providing the cost overrides pkg/graph consults ahead of the
// system language models.
package userdata

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/akaza-im/akaza-go/pkg/graph"
	"github.com/akaza-im/akaza-go/pkg/kanatrie"
)

// UserData is the mutex-guarded store of everything the engine has learned
// from the caller's accepted conversions: per-word and per-bigram
// occurrence counts, and the set of readings seen so the segmenter can
// treat them as known words.
type UserData struct {
	mu sync.Mutex

	kanaTrie *kanatrie.KanaTrie
	unigram  *uniGramUserStats
	bigram   *biGramUserStats

	unigramPath string
	bigramPath  string
	needSave    bool
}

// New returns an empty UserData with no backing files; callers that only
// want an in-memory learner (e.g. tests) can use this directly.
func New() *UserData {
	return &UserData{
		kanaTrie: kanatrie.New(),
		unigram:  newUniGramUserStats(0, 0, nil),
		bigram:   newBiGramUserStats(0, 0, nil),
	}
}

// Load reads unigram/bigram statistics from unigramPath/bigramPath. A
// missing or unreadable file is not fatal - the caller just starts from an
// empty learner, the same as a first run - but is logged.
func Load(unigramPath, bigramPath string) *UserData {
	unigramCounts, err := readUserStatsFile(unigramPath)
	if err != nil {
		log.Printf("userdata: cannot load unigram stats from %s: %v", unigramPath, err)
		unigramCounts = nil
	}
	bigramCounts, err := readUserStatsFile(bigramPath)
	if err != nil {
		log.Printf("userdata: cannot load bigram stats from %s: %v", bigramPath, err)
		bigramCounts = nil
	}

	kanaTrie := kanatrie.New()
	for key := range unigramCounts {
		if _, yomi, ok := strings.Cut(key, "/"); ok {
			kanaTrie.Update(yomi)
		}
	}

	return &UserData{
		kanaTrie:    kanaTrie,
		unigram:     newUniGramUserStats(countOf(unigramCounts), sumOf(unigramCounts), unigramCounts),
		bigram:      newBiGramUserStats(countOf(bigramCounts), sumOf(bigramCounts), bigramCounts),
		unigramPath: unigramPath,
		bigramPath:  bigramPath,
	}
}

func countOf(m map[string]uint32) uint32 { return uint32(len(m)) }

func sumOf(m map[string]uint32) uint32 {
	var total uint32
	for _, c := range m {
		total += c
	}
	return total
}

// RecordEntries records a confirmed conversion (one Candidate per clause,
// in order) into both the unigram and bigram statistics, and updates the
// kana trie so future segmentation recognizes these readings as known
// words.
func (u *UserData) RecordEntries(candidates []graph.Candidate) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.unigram.recordEntries(candidates)
	u.bigram.recordEntries(candidates)

	for _, c := range candidates {
		if !u.kanaTrie.Contains(c.Yomi) {
			u.kanaTrie.Update(c.Yomi)
		}
	}

	u.needSave = true
}

// GetUnigramCost implements graph.UserCoster.
func (u *UserData) GetUnigramCost(key string) (float32, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.unigram.getCost(key)
}

// GetBigramCost implements graph.UserCoster.
func (u *UserData) GetBigramCost(prevKey, key string) (float32, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.bigram.getCost(prevKey, key)
}

// CommonPrefixSearch implements graph.PrefixSearcher over the learned
// readings, so the segmenter can treat them the same as system dictionary
// entries.
func (u *UserData) CommonPrefixSearch(query string) []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.kanaTrie.CommonPrefixSearch(query)
}

// Flush writes out the unigram/bigram statistics if anything has changed
// since the last Flush, atomically via a temp-file rename.
func (u *UserData) Flush() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.needSave {
		return nil
	}

	if u.unigramPath != "" {
		if err := writeUserStatsFile(u.unigramPath, u.unigram.wordCount); err != nil {
			return fmt.Errorf("userdata: flush unigram: %w", err)
		}
	}
	if u.bigramPath != "" {
		if err := writeUserStatsFile(u.bigramPath, u.bigram.wordCount); err != nil {
			return fmt.Errorf("userdata: flush bigram: %w", err)
		}
	}
	u.needSave = false
	return nil
}

func readUserStatsFile(path string) (map[string]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	result := map[string]uint32{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, countStr, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		count, err := strconv.ParseUint(countStr, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid line in user stats file: %q", line)
		}
		result[key] = uint32(count)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func writeUserStatsFile(path string, wordCount map[string]uint32) error {
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	for key, count := range wordCount {
		if _, err := fmt.Fprintf(f, "%s %d\n", key, count); err != nil {
			f.Close()
			return err
		}
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
