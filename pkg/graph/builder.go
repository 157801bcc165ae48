package graph

import "github.com/akaza-im/akaza-go/pkg/lm"

// GraphBuilder assembles a LatticeGraph from a segmentation result,
// consulting the kana-kanji and single-term dictionaries plus both
// language models for each fragment's candidate surfaces.
type GraphBuilder struct {
	systemKanaKanjiDict  map[string][]string
	systemSingleTermDict map[string][]string
	userData             UserCoster
	unigramLM            *lm.SystemUnigramLM
	bigramLM             *lm.SystemBigramLM
}

// NewGraphBuilder builds a GraphBuilder over the given dictionaries and
// language models. userData may be nil when there is no online-learned
// cost source (e.g. evaluating system dictionaries standalone).
func NewGraphBuilder(
	systemKanaKanjiDict, systemSingleTermDict map[string][]string,
	userData UserCoster,
	unigramLM *lm.SystemUnigramLM,
	bigramLM *lm.SystemBigramLM,
) *GraphBuilder {
	return &GraphBuilder{
		systemKanaKanjiDict:  systemKanaKanjiDict,
		systemSingleTermDict: systemSingleTermDict,
		userData:             userData,
		unigramLM:            unigramLM,
		bigramLM:             bigramLM,
	}
}

// Construct builds the full lattice for yomi from a segmentation result:
// BOS/EOS sentinels, then for every fragment its kana-kanji dictionary
// surfaces, its hiragana/katakana forms, and - when the fragment spans the
// whole reading - its single-term dictionary surfaces.
func (b *GraphBuilder) Construct(yomi string, segmented *SegmentationResult) *LatticeGraph {
	g := map[int][]*WordNode{}
	g[0] = []*WordNode{CreateBOS()}
	g[len(yomi)+1] = []*WordNode{CreateEOS(len(yomi))}

	for _, entry := range segmented.Iter() {
		endPos := entry.EndPos
		for _, segYomi := range entry.Yomis {
			startPos := endPos - len(segYomi)
			seen := map[string]bool{}

			if kanjis, ok := b.systemKanaKanjiDict[segYomi]; ok {
				for _, kanji := range kanjis {
					node := NewWordNode(startPos, kanji, segYomi, b.find(kanji, segYomi))
					g[endPos] = append(g[endPos], node)
					seen[kanji] = true
				}
			}

			for _, surface := range [2]string{segYomi, hiraToKata(segYomi)} {
				if seen[surface] {
					continue
				}
				node := NewWordNode(startPos, surface, segYomi, nil)
				node.AutoGenerated = true
				g[endPos] = append(g[endPos], node)
			}

			if segYomi == yomi {
				if surfaces, ok := b.systemSingleTermDict[yomi]; ok {
					for _, surface := range surfaces {
						node := NewWordNode(startPos, surface, segYomi, b.find(surface, segYomi))
						g[endPos] = append(g[endPos], node)
					}
				}
			}
		}
	}

	return &LatticeGraph{
		Yomi:                        yomi,
		graph:                       g,
		userData:                    b.userData,
		unigramLM:                   b.unigramLM,
		bigramLM:                    b.bigramLM,
		defaultUnigramScoreForShort: b.unigramLM.GetDefaultCostForShort(),
		defaultUnigramScoreForLong:  b.unigramLM.GetDefaultCost(),
	}
}

func (b *GraphBuilder) find(surface, yomi string) *WordIDScore {
	id, score, ok := b.unigramLM.Find(surface + "/" + yomi)
	if !ok {
		return nil
	}
	return &WordIDScore{ID: id, Score: score}
}
