// Package trie provides a compact persistent string(byte)-to-id store with
// predictive-prefix and common-prefix search, the substrate used by the
// kana-kanji dictionary and the unigram/bigram language models.
package trie

// Visitor is called once per matching key during a search. Returning false
// stops the search early.
type Visitor func(key []byte, id int) bool

// Store is the capability interface both dictionaries and language models
// are built on. Keys are raw byte sequences; some callers pack binary
// records into them (see pkg/lm).
//
// Once a Store has been built, the mapping from id to key is stable for
// that build, including when a SQLite-backed build is reopened with
// OpenSQLiteStore.
type Store interface {
	// PredictiveSearch enumerates all keys that have prefix as a prefix.
	PredictiveSearch(prefix []byte, visit Visitor)
	// CommonPrefixSearch enumerates all keys that are a prefix of query.
	CommonPrefixSearch(query []byte, visit Visitor)
	// NumKeys returns the number of keys in the store.
	NumKeys() int
	// Close releases any resources (file handles, db connections) held by
	// the store.
	Close() error
}

// Builder constructs a Store from a keyset. Implementations decide how
// ids get assigned; callers that depend on specific ids (the unigram model
// assigning word ids, for instance) must read them back via a Visitor
// after Build.
type Builder interface {
	Build(keys [][]byte) (Store, error)
}
