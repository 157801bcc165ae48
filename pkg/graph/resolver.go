package graph

import (
	"fmt"
	"math"
	"sort"
)

// GraphResolver runs the Viterbi algorithm over a LatticeGraph.
type GraphResolver struct{}

// Resolve finds the lowest-cost path from BOS to EOS and returns one slice
// of Candidate per clause, winner first, siblings sorted by ascending
// cost behind it.
func (GraphResolver) Resolve(lattice *LatticeGraph) ([][]Candidate, error) {
	prevmap := map[*WordNode]*WordNode{}
	costmap := map[*WordNode]float32{}

	for i := 1; i <= len(lattice.Yomi)+1; i++ {
		nodes := lattice.NodeList(i)
		if nodes == nil {
			continue
		}
		for _, node := range nodes {
			nodeCost := lattice.GetNodeCost(node)

			prevNodes := lattice.getPrevNodes(node)
			if prevNodes == nil {
				return nil, fmt.Errorf("graph: no previous nodes for %q at start=%d", node.Surface, node.StartPos)
			}

			cost := float32(math.MaxFloat32)
			var shortestPrev *WordNode
			for _, prev := range prevNodes {
				edgeCost := lattice.GetEdgeCost(prev, node)
				prevCost, ok := costmap[prev]
				if !ok {
					prevCost = 0 // BOS has no recorded cost yet.
				}
				tmp := prevCost + edgeCost + nodeCost
				if cost > tmp {
					cost = tmp
					shortestPrev = prev
				}
			}
			if shortestPrev == nil {
				return nil, fmt.Errorf("graph: no path reaches %q at start=%d", node.Surface, node.StartPos)
			}
			prevmap[node] = shortestPrev
			costmap[node] = cost
		}
	}

	eosNodes := lattice.Get(len(lattice.Yomi) + 1)
	bosNodes := lattice.Get(0)
	if len(eosNodes) == 0 || len(bosNodes) == 0 {
		return nil, fmt.Errorf("graph: lattice missing BOS/EOS sentinels")
	}
	eos, bos := eosNodes[0], bosNodes[0]

	var result [][]Candidate
	node := eos
	for node != bos {
		if node.Surface != eosSurface {
			endPos := node.StartPos + len(node.Yomi)
			var siblings []Candidate
			for _, alt := range lattice.NodeList(endPos) {
				if alt.StartPos == node.StartPos && len(alt.Yomi) == len(node.Yomi) && alt != node {
					siblings = append(siblings, Candidate{Surface: alt.Surface, Yomi: alt.Yomi, Cost: costmap[alt]})
				}
			}
			sort.SliceStable(siblings, func(i, j int) bool { return siblings[i].Cost < siblings[j].Cost })

			clause := make([]Candidate, 0, len(siblings)+1)
			clause = append(clause, Candidate{Surface: node.Surface, Yomi: node.Yomi, Cost: costmap[node]})
			clause = append(clause, siblings...)
			result = append(result, clause)
		}

		prev, ok := prevmap[node]
		if !ok {
			return nil, fmt.Errorf("graph: cannot get previous node for %q", node.Surface)
		}
		node = prev
	}

	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result, nil
}
