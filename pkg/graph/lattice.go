package graph

import (
	"fmt"

	"github.com/akaza-im/akaza-go/pkg/lm"
)

// DefaultScore is the cost GetEdgeCost falls back to when neither user data
// nor the system bigram model has an opinion, and the default cost
// cmd/akaza gives its language models: 13.641709, roughly -log10(2.3e-14).
const DefaultScore float32 = 13.641709

// UserCoster answers cost lookups against the caller's online-learned
// statistics. Keys are WordNode.Key()-shaped ("surface/yomi") strings.
type UserCoster interface {
	GetUnigramCost(key string) (float32, bool)
	GetBigramCost(prevKey, key string) (float32, bool)
}

// LatticeGraph holds every candidate WordNode for a reading, indexed by
// the byte position each node ends at.
type LatticeGraph struct {
	Yomi      string
	graph     map[int][]*WordNode
	userData  UserCoster
	unigramLM *lm.SystemUnigramLM
	bigramLM  *lm.SystemBigramLM

	defaultUnigramScoreForShort float32
	defaultUnigramScoreForLong  float32
}

// NodeList returns every node ending at endPos.
func (l *LatticeGraph) NodeList(endPos int) []*WordNode {
	return l.graph[endPos]
}

// Get is an alias for NodeList kept for parity with lookups keyed by an
// arbitrary position rather than specifically an "end" position (BOS/EOS
// access read the same map).
func (l *LatticeGraph) Get(pos int) []*WordNode {
	return l.graph[pos]
}

// getPrevNodes returns the nodes ending exactly where node starts.
func (l *LatticeGraph) getPrevNodes(node *WordNode) []*WordNode {
	return l.graph[node.StartPos]
}

// GetNodeCost returns node's standalone cost: the caller's learned cost if
// present, else the system unigram score, else a length-based default.
func (l *LatticeGraph) GetNodeCost(node *WordNode) float32 {
	if l.userData != nil {
		if cost, ok := l.userData.GetUnigramCost(node.Key()); ok {
			return cost
		}
	}

	if node.WordIDScore != nil {
		return node.WordIDScore.Score
	}

	if len(node.Surface) < len(node.Yomi) {
		// The surface renders shorter than its reading (e.g. a long
		// compound collapsed into few kanji); prefer it over the
		// all-kana fallback by charging it the cheaper default.
		return l.defaultUnigramScoreForShort
	}
	return l.defaultUnigramScoreForLong
}

// GetEdgeCost returns the transition cost from prev to node: the caller's
// learned bigram cost if present, else the system bigram score, else
// DefaultScore.
func (l *LatticeGraph) GetEdgeCost(prev, node *WordNode) float32 {
	if l.userData != nil {
		if cost, ok := l.userData.GetBigramCost(prev.Key(), node.Key()); ok {
			return cost
		}
	}

	if prev.WordIDScore == nil || node.WordIDScore == nil {
		return DefaultScore
	}
	if cost, ok := l.bigramLM.GetEdgeCost(prev.WordIDScore.ID, node.WordIDScore.ID); ok {
		return cost
	}
	return DefaultScore
}

func (l *LatticeGraph) String() string {
	return fmt.Sprintf("LatticeGraph(yomi=%s, nodes=%d)", l.Yomi, len(l.graph))
}
