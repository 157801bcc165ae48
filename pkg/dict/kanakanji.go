// Package dict provides the kana-kanji and single-term dictionaries: a
// yomi (reading) to candidate-surfaces lookup backed by a trie.Store.
package dict

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/akaza-im/akaza-go/pkg/trie"
)

// cacheSerializedKey is a reserved trie key recording the fingerprint of
// the source entries a store was built from, so a loader can tell whether
// a persisted store is stale without re-reading every dictionary file.
// It sorts ahead of every kana reading, and no real yomi collides with it,
// since no reading contains a tab.
const cacheSerializedKey = "__CACHE_SERIALIZED__\t"

// KanaKanjiDict maps a reading to its candidate kanji surfaces. Entries are
// packed into the underlying store as "yomi\tsurface1/surface2/..." keys,
// so a single predictive-prefix search on "yomi\t" retrieves the record.
type KanaKanjiDict struct {
	store trie.Store
}

// New wraps an already-built store.
func New(store trie.Store) *KanaKanjiDict {
	return &KanaKanjiDict{store: store}
}

// Build constructs an in-memory KanaKanjiDict from a yomi->surfaces map.
// cacheFingerprint is recorded under the cache-serialized sentinel key for
// later revalidation by CacheSerialized; pass "" if the caller has no use
// for one (as in tests, or anywhere revalidation doesn't apply).
func Build(entries map[string][]string, cacheFingerprint string) *KanaKanjiDict {
	return New(trie.NewMemStore(packEntries(entries, cacheFingerprint)))
}

// BuildSQLite constructs a file-backed KanaKanjiDict from a yomi->surfaces
// map, for offline dictionary builds that want a persisted store rather
// than rebuilding the trie from source on every run. cacheFingerprint is
// recorded the same way Build records it.
func BuildSQLite(path string, entries map[string][]string, cacheFingerprint string) (*KanaKanjiDict, error) {
	store, err := trie.BuildSQLiteStore(path, packEntries(entries, cacheFingerprint))
	if err != nil {
		return nil, err
	}
	return New(store), nil
}

// Fingerprint hashes entries' content into a stable digest suitable for
// passing to Build/BuildSQLite as cacheFingerprint: the same source
// dictionaries always hash to the same value, so a loader can compare a
// freshly computed fingerprint against CacheSerialized to decide whether a
// persisted store needs rebuilding.
func Fingerprint(entries map[string][]string) string {
	yomis := make([]string, 0, len(entries))
	for yomi := range entries {
		yomis = append(yomis, yomi)
	}
	sort.Strings(yomis)

	h := sha256.New()
	for _, yomi := range yomis {
		h.Write(packEntry(yomi, entries[yomi]))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func packEntries(entries map[string][]string, cacheFingerprint string) [][]byte {
	keys := make([][]byte, 0, len(entries)+1)
	for yomi, surfaces := range entries {
		keys = append(keys, packEntry(yomi, surfaces))
	}
	if cacheFingerprint != "" {
		keys = append(keys, []byte(cacheSerializedKey+cacheFingerprint))
	}
	return keys
}

func packEntry(yomi string, surfaces []string) []byte {
	return []byte(yomi + "\t" + strings.Join(surfaces, "/"))
}

// Find returns the candidate surfaces for yomi, or nil if yomi isn't in the
// dictionary.
func (d *KanaKanjiDict) Find(yomi string) []string {
	prefix := []byte(yomi + "\t")
	var surfaces []string
	d.store.PredictiveSearch(prefix, func(key []byte, id int) bool {
		_, rest, ok := strings.Cut(string(key), "\t")
		if !ok {
			return true
		}
		surfaces = strings.Split(rest, "/")
		return false
	})
	return surfaces
}

// AllYomis returns every reading held in the dictionary, sorted, excluding
// the cache-fingerprint sentinel entry.
func (d *KanaKanjiDict) AllYomis() []string {
	var yomis []string
	d.store.PredictiveSearch(nil, func(key []byte, id int) bool {
		if strings.HasPrefix(string(key), cacheSerializedKey) {
			return true
		}
		yomi, _, ok := strings.Cut(string(key), "\t")
		if ok {
			yomis = append(yomis, yomi)
		}
		return true
	})
	sort.Strings(yomis)
	return yomis
}

// CacheSerialized returns the fingerprint recorded at build time, or "" if
// none was given to Build/BuildSQLite. A loader compares this against a
// freshly computed dict.Fingerprint of its current source entries to
// decide whether a persisted store is stale.
func (d *KanaKanjiDict) CacheSerialized() string {
	var fingerprint string
	d.store.PredictiveSearch([]byte(cacheSerializedKey), func(key []byte, id int) bool {
		fingerprint = strings.TrimPrefix(string(key), cacheSerializedKey)
		return false
	})
	return fingerprint
}

// Close releases the underlying store.
func (d *KanaKanjiDict) Close() error {
	return d.store.Close()
}
