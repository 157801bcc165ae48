package trie

import "sort"

// MemStore is the in-memory Store implementation: a sorted slice of keys
// searched with binary search. It exists alongside SQLiteStore so that unit
// tests and stores built at runtime (dict.Build, the empty fallback
// language models in cmd/akaza) don't need a file on disk.
type MemStore struct {
	keys [][]byte
}

// MemBuilder builds a MemStore. It satisfies Builder.
type MemBuilder struct{}

func (MemBuilder) Build(keys [][]byte) (Store, error) {
	return NewMemStore(keys), nil
}

// NewMemStore builds a MemStore from keys, sorting and deduplicating them.
// Ids are assigned by 0-based sorted position, so they are stable for a
// fixed keyset. They follow the same order as SQLiteStore's sorted-insert
// build, but SQLiteStore's rowids start at 1, so the two implementations
// do not hand out the same id for the same key.
func NewMemStore(keys [][]byte) *MemStore {
	sorted := make([][]byte, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool {
		return compareBytes(sorted[i], sorted[j]) < 0
	})
	deduped := sorted[:0]
	for i, k := range sorted {
		if i > 0 && compareBytes(k, deduped[len(deduped)-1]) == 0 {
			continue
		}
		deduped = append(deduped, k)
	}
	return &MemStore{keys: deduped}
}

func (m *MemStore) NumKeys() int { return len(m.keys) }

func (m *MemStore) Close() error { return nil }

// PredictiveSearch enumerates every key starting with prefix, in sorted
// order, via binary search for the first match followed by a linear scan
// while the prefix still holds.
func (m *MemStore) PredictiveSearch(prefix []byte, visit Visitor) {
	start := sort.Search(len(m.keys), func(i int) bool {
		return compareBytes(m.keys[i], prefix) >= 0
	})
	for i := start; i < len(m.keys); i++ {
		if !hasPrefix(m.keys[i], prefix) {
			break
		}
		if !visit(m.keys[i], i) {
			return
		}
	}
}

// CommonPrefixSearch enumerates every key that is a prefix of query, via
// binary search per candidate length.
func (m *MemStore) CommonPrefixSearch(query []byte, visit Visitor) {
	for i := 1; i <= len(query); i++ {
		cand := query[:i]
		idx := sort.Search(len(m.keys), func(j int) bool {
			return compareBytes(m.keys[j], cand) >= 0
		})
		if idx < len(m.keys) && compareBytes(m.keys[idx], cand) == 0 {
			if !visit(cand, idx) {
				return
			}
		}
	}
}

func hasPrefix(key, prefix []byte) bool {
	if len(key) < len(prefix) {
		return false
	}
	return compareBytes(key[:len(prefix)], prefix) == 0
}
