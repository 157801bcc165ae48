package lm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akaza-im/akaza-go/pkg/trie"
)

// maxWordID bounds word ids packable into a bigram key: 3 bytes are
// available but one bit of headroom is reserved, matching the vocabulary
// ceiling the original model format was built around.
const maxWordID = 1 << 23

const defaultEdgeCostKey = "__DEFAULT_EDGE_COST__"

// SystemBigramLM holds per-word-pair edge costs, keyed by the word ids the
// unigram model assigned. Keys are packed as 3-byte-LE id1, 3-byte-LE id2,
// 2-byte half-float score.
type SystemBigramLM struct {
	store           trie.Store
	defaultEdgeCost float32
}

// BuildBigramLM packs (id1, id2, score) edges into store via builder, plus
// a sentinel default-edge-cost record (encoded, unlike the unigram
// sentinels, as a decimal string rather than packed bytes).
func BuildBigramLM(builder trie.Builder, edges map[[2]int]float32, defaultEdgeCost float32) (*SystemBigramLM, error) {
	keys := make([][]byte, 0, len(edges)+1)
	for ids, score := range edges {
		key, err := packBigramKey(ids[0], ids[1], score)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	keys = append(keys, []byte(fmt.Sprintf("%s\t%s", defaultEdgeCostKey, strconv.FormatFloat(float64(defaultEdgeCost), 'g', -1, 32))))

	store, err := builder.Build(keys)
	if err != nil {
		return nil, fmt.Errorf("build bigram lm: %w", err)
	}
	return LoadBigramLM(store)
}

// LoadBigramLM wraps an already-built store, reading back the default
// edge cost sentinel.
func LoadBigramLM(store trie.Store) (*SystemBigramLM, error) {
	cost, ok := readDefaultEdgeCost(store)
	if !ok {
		return nil, fmt.Errorf("bigram lm: missing %s", defaultEdgeCostKey)
	}
	return &SystemBigramLM{store: store, defaultEdgeCost: cost}, nil
}

func packBigramKey(id1, id2 int, score float32) ([]byte, error) {
	if id1 < 0 || id1 >= maxWordID || id2 < 0 || id2 >= maxWordID {
		return nil, fmt.Errorf("bigram word id out of range: %d, %d (max %d)", id1, id2, maxWordID-1)
	}
	buf := make([]byte, 8)
	buf[0] = byte(id1)
	buf[1] = byte(id1 >> 8)
	buf[2] = byte(id1 >> 16)
	buf[3] = byte(id2)
	buf[4] = byte(id2 >> 8)
	buf[5] = byte(id2 >> 16)
	h := Float32ToFloat16(score)
	buf[6] = byte(h)
	buf[7] = byte(h >> 8)
	return buf, nil
}

func readDefaultEdgeCost(store trie.Store) (float32, bool) {
	var cost float32
	found := false
	store.PredictiveSearch([]byte(defaultEdgeCostKey), func(key []byte, id int) bool {
		_, numStr, ok := strings.Cut(string(key), "\t")
		if !ok {
			return true
		}
		f, err := strconv.ParseFloat(numStr, 32)
		if err != nil {
			return true
		}
		cost = float32(f)
		found = true
		return false
	})
	return cost, found
}

// GetDefaultEdgeCost returns the fallback edge cost for word-id pairs with
// no recorded bigram.
func (lm *SystemBigramLM) GetDefaultEdgeCost() float32 { return lm.defaultEdgeCost }

// GetEdgeCost returns the recorded cost for (id1, id2), if any.
func (lm *SystemBigramLM) GetEdgeCost(id1, id2 int) (float32, bool) {
	if id1 < 0 || id1 >= maxWordID || id2 < 0 || id2 >= maxWordID {
		return 0, false
	}
	prefix := []byte{byte(id1), byte(id1 >> 8), byte(id1 >> 16), byte(id2), byte(id2 >> 8), byte(id2 >> 16)}
	var cost float32
	found := false
	lm.store.PredictiveSearch(prefix, func(key []byte, id int) bool {
		if len(key) != 8 {
			return true
		}
		h := uint16(key[6]) | uint16(key[7])<<8
		cost = Float16ToFloat32(h)
		found = true
		return false
	})
	return cost, found
}

func (lm *SystemBigramLM) NumKeys() int { return lm.store.NumKeys() }
