package trie

import (
	"database/sql"
	"fmt"
	"sort"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore is the file-backed Store implementation: a BLOB-keyed table
// with an autoincrementing rowid gives a stable per-key integer id, and
// SQLite's default BLOB collation (byte-wise, the same order UTF-8 sorts
// in) makes prefix range scans on an indexed column cheap.
type SQLiteStore struct {
	db       *sql.DB
	numKeys  int
	ownsConn bool
}

// SQLiteBuilder builds a SQLiteStore at Path. It satisfies Builder, for
// callers (e.g. BuildUnigramLM/BuildBigramLM) that want a persisted store
// without depending on SQLiteStore directly.
type SQLiteBuilder struct {
	Path string
}

func (b SQLiteBuilder) Build(keys [][]byte) (Store, error) {
	return BuildSQLiteStore(b.Path, keys)
}

// OpenSQLiteStore opens (or creates) a trie database at path. Pass ":memory:"
// for an ephemeral store.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open trie store %s: %w", path, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS entries (
		id  INTEGER PRIMARY KEY AUTOINCREMENT,
		key BLOB NOT NULL UNIQUE
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create trie schema %s: %w", path, err)
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		db.Close()
		return nil, fmt.Errorf("count trie entries %s: %w", path, err)
	}
	return &SQLiteStore{db: db, numKeys: n, ownsConn: true}, nil
}

// BuildSQLiteStore creates a fresh trie database at path containing keys.
// Keys are inserted in sorted order so that, for a fixed keyset, id
// assignment is deterministic and therefore stable across rebuilds.
func BuildSQLiteStore(path string, keys [][]byte) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("create trie store %s: %w", path, err)
	}
	if _, err := db.Exec(`DROP TABLE IF EXISTS entries`); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE entries (
		id  INTEGER PRIMARY KEY AUTOINCREMENT,
		key BLOB NOT NULL UNIQUE
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create trie schema %s: %w", path, err)
	}

	sorted := make([][]byte, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool {
		return compareBytes(sorted[i], sorted[j]) < 0
	})

	tx, err := db.Begin()
	if err != nil {
		db.Close()
		return nil, err
	}
	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO entries (key) VALUES (?)`)
	if err != nil {
		tx.Rollback()
		db.Close()
		return nil, err
	}
	var n int
	for _, k := range sorted {
		res, err := stmt.Exec(k)
		if err != nil {
			stmt.Close()
			tx.Rollback()
			db.Close()
			return nil, fmt.Errorf("insert trie key: %w", err)
		}
		if affected, err := res.RowsAffected(); err == nil && affected > 0 {
			n++
		}
	}
	stmt.Close()
	if err := tx.Commit(); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, numKeys: n, ownsConn: true}, nil
}

func (s *SQLiteStore) NumKeys() int { return s.numKeys }

func (s *SQLiteStore) Close() error {
	if !s.ownsConn {
		return nil
	}
	return s.db.Close()
}

// PredictiveSearch enumerates every key starting with prefix.
func (s *SQLiteStore) PredictiveSearch(prefix []byte, visit Visitor) {
	upper := incrementBytes(prefix)
	var rows *sql.Rows
	var err error
	if upper == nil {
		rows, err = s.db.Query(`SELECT id, key FROM entries WHERE key >= ? ORDER BY key`, prefix)
	} else {
		rows, err = s.db.Query(`SELECT id, key FROM entries WHERE key >= ? AND key < ? ORDER BY key`, prefix, upper)
	}
	if err != nil {
		return
	}
	defer rows.Close()
	for rows.Next() {
		var id int
		var key []byte
		if err := rows.Scan(&id, &key); err != nil {
			return
		}
		if !visit(key, id) {
			return
		}
	}
}

// CommonPrefixSearch enumerates every key that is itself a prefix of query.
func (s *SQLiteStore) CommonPrefixSearch(query []byte, visit Visitor) {
	if len(query) == 0 {
		return
	}
	// One indexed point-lookup per candidate prefix length. Dictionary keys
	// are valid UTF-8 text, so byte offsets that land mid-rune simply never
	// match; correctness does not depend on aligning to rune boundaries.
	stmt, err := s.db.Prepare(`SELECT id FROM entries WHERE key = ?`)
	if err != nil {
		return
	}
	defer stmt.Close()
	for i := 1; i <= len(query); i++ {
		cand := query[:i]
		var id int
		if err := stmt.QueryRow(cand).Scan(&id); err == nil {
			if !visit(cand, id) {
				return
			}
		}
	}
}

func compareBytes(a, b []byte) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return int(a[i]) - int(b[i])
		}
	}
	return len(a) - len(b)
}

// incrementBytes returns the smallest byte string that is lexicographically
// greater than every string with prefix p, or nil if p is all 0xFF bytes
// (meaning "no upper bound needed").
func incrementBytes(p []byte) []byte {
	out := make([]byte, len(p))
	copy(out, p)
	for i := len(out) - 1; i >= 0; i-- {
		if out[i] < 0xFF {
			out[i]++
			return out[:i+1]
		}
	}
	return nil
}
