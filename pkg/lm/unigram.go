// Package lm implements the system language models: per-word (unigram) and
// per-word-pair (bigram) statistical costs, stored as packed binary records
// in a trie.Store.
package lm

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/akaza-im/akaza-go/pkg/trie"
)

const (
	defaultCostForShortKey = "__DEFAULT_COST_FOR_SHORT__"
	defaultCostKey         = "__DEFAULT_COST__"
)

// UnigramEntry is one (word, id, score) row recovered from a store.
type UnigramEntry struct {
	Word  string
	ID    int
	Score float32
}

// SystemUnigramLM holds per-word occurrence costs. Keys are packed as
// "word" + 0xFF + 4-byte little-endian float32 score; the store's assigned
// id for that key doubles as the word's stable id, reused by the bigram
// model.
type SystemUnigramLM struct {
	store               trie.Store
	defaultCost         float32
	defaultCostForShort float32
}

// BuildUnigramLM packs words into store via builder and reads back the two
// sentinel default-cost entries.
func BuildUnigramLM(builder trie.Builder, words map[string]float32, defaultCost, defaultCostForShort float32) (*SystemUnigramLM, error) {
	all := make(map[string]float32, len(words)+2)
	for w, s := range words {
		all[w] = s
	}
	all[defaultCostKey] = defaultCost
	all[defaultCostForShortKey] = defaultCostForShort
	keys := make([][]byte, 0, len(all))
	for w, s := range all {
		keys = append(keys, packUnigramKey(w, s))
	}
	store, err := builder.Build(keys)
	if err != nil {
		return nil, fmt.Errorf("build unigram lm: %w", err)
	}
	return LoadUnigramLM(store)
}

// LoadUnigramLM wraps an already-built store, reading the sentinel
// default-cost entries independently of each other.
func LoadUnigramLM(store trie.Store) (*SystemUnigramLM, error) {
	_, defaultCost, ok := findUnigram(store, defaultCostKey)
	if !ok {
		return nil, fmt.Errorf("unigram lm: missing %s", defaultCostKey)
	}
	_, defaultCostForShort, ok := findUnigram(store, defaultCostForShortKey)
	if !ok {
		return nil, fmt.Errorf("unigram lm: missing %s", defaultCostForShortKey)
	}
	return &SystemUnigramLM{store: store, defaultCost: defaultCost, defaultCostForShort: defaultCostForShort}, nil
}

func packUnigramKey(word string, score float32) []byte {
	buf := make([]byte, 0, len(word)+1+4)
	buf = append(buf, word...)
	buf = append(buf, 0xFF)
	var scoreBuf [4]byte
	binary.LittleEndian.PutUint32(scoreBuf[:], math.Float32bits(score))
	return append(buf, scoreBuf[:]...)
}

func findUnigram(store trie.Store, word string) (id int, score float32, ok bool) {
	prefix := append([]byte(word), 0xFF)
	found := false
	store.PredictiveSearch(prefix, func(key []byte, gotID int) bool {
		if len(key) < 4 {
			return true
		}
		score = math.Float32frombits(binary.LittleEndian.Uint32(key[len(key)-4:]))
		id = gotID
		found = true
		return false
	})
	return id, score, found
}

// Find returns the (id, score) pair for word, if present.
func (lm *SystemUnigramLM) Find(word string) (id int, score float32, ok bool) {
	return findUnigram(lm.store, word)
}

func (lm *SystemUnigramLM) GetDefaultCost() float32         { return lm.defaultCost }
func (lm *SystemUnigramLM) GetDefaultCostForShort() float32 { return lm.defaultCostForShort }

func (lm *SystemUnigramLM) NumKeys() int { return lm.store.NumKeys() }

// AllEntries returns every non-sentinel entry in the model.
func (lm *SystemUnigramLM) AllEntries() []UnigramEntry {
	var entries []UnigramEntry
	lm.store.PredictiveSearch(nil, func(key []byte, id int) bool {
		idx := indexByte(key, 0xFF)
		if idx < 0 || len(key) < idx+1+4 {
			return true
		}
		word := string(key[:idx])
		if word == defaultCostKey || word == defaultCostForShortKey {
			return true
		}
		score := math.Float32frombits(binary.LittleEndian.Uint32(key[idx+1 : idx+5]))
		entries = append(entries, UnigramEntry{Word: word, ID: id, Score: score})
		return true
	})
	return entries
}

func indexByte(b []byte, c byte) int {
	return bytes.IndexByte(b, c)
}
