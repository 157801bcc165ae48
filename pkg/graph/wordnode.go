// Package graph builds the lattice of candidate words for a reading and
// resolves the cheapest path through it.
package graph

import "fmt"

// WordIDScore pins a node to the word id the unigram language model assigned
// it, along with the score recorded under that id.
type WordIDScore struct {
	ID    int
	Score float32
}

// WordNode is one candidate surface/yomi pairing anchored at a byte offset
// into the reading being converted.
type WordNode struct {
	StartPos      int
	Surface       string
	Yomi          string
	Cost          float32
	WordIDScore   *WordIDScore
	AutoGenerated bool
}

// bosSurface and eosSurface mark the sentinel nodes every lattice is seeded
// with, so segment boundaries have something to anchor to on both ends.
const (
	bosSurface = "__BOS__"
	eosSurface = "__EOS__"
)

// NewWordNode builds a node. wordIDScore is nil when the surface has no
// entry in the unigram language model.
func NewWordNode(startPos int, surface, yomi string, wordIDScore *WordIDScore) *WordNode {
	return &WordNode{
		StartPos:    startPos,
		Surface:     surface,
		Yomi:        yomi,
		WordIDScore: wordIDScore,
	}
}

// CreateBOS returns the beginning-of-sentence sentinel node.
func CreateBOS() *WordNode {
	return &WordNode{
		StartPos:      0,
		Surface:       bosSurface,
		Yomi:          bosSurface,
		AutoGenerated: true,
	}
}

// CreateEOS returns the end-of-sentence sentinel node, anchored at startPos
// (the byte length of the reading being converted).
func CreateEOS(startPos int) *WordNode {
	return &WordNode{
		StartPos:      startPos,
		Surface:       eosSurface,
		Yomi:          eosSurface,
		AutoGenerated: true,
	}
}

// Key identifies the node for user-data lookups: "surface/yomi".
func (n *WordNode) Key() string {
	return n.Surface + "/" + n.Yomi
}

func (n *WordNode) String() string {
	return fmt.Sprintf("%s/%s", n.Surface, n.Yomi)
}
